package catalog

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"folio-hq/folio/pkg/audit"
	"folio-hq/folio/pkg/autosave"
	"folio-hq/folio/pkg/snapshot"
	"folio-hq/folio/pkg/store"

	"folio-hq/folio/pkg/record"
)

// Options configures a Library.
type Options struct {
	// Sink receives catalog snapshots. Required.
	Sink snapshot.Sink

	// Interval is the autosave tick interval. Default: autosave.DefaultInterval.
	Interval time.Duration

	// Schedule is an optional cron expression overriding Interval.
	Schedule string

	// SaveOnStop performs one terminal flush during Close.
	SaveOnStop bool

	// Audit is an optional mutation journal; nil disables auditing.
	Audit *audit.Recorder

	// StoreMetrics and AutosaveMetrics attach Prometheus metrics when set.
	StoreMetrics    *store.Metrics
	AutosaveMetrics *autosave.Metrics

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Library is the catalog service: a book store with managed persistence and
// identity issuance.
type Library struct {
	books  *store.Store[Book]
	ctl    *autosave.Controller
	sink   snapshot.Sink
	audit  *audit.Recorder
	logger *slog.Logger
}

// Open builds a Library, loads persisted state, and starts the autosave
// controller.
func Open(opts Options) (*Library, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("open library: snapshot sink is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog")

	books := store.New(ParseBook,
		store.WithLogger[Book](logger),
		store.WithMetrics[Book](opts.StoreMetrics),
	)

	ctlOpts := []autosave.Option{
		autosave.WithLogger(logger),
		autosave.WithMetrics(opts.AutosaveMetrics),
	}
	if opts.Interval > 0 {
		ctlOpts = append(ctlOpts, autosave.WithInterval(opts.Interval))
	}
	if opts.Schedule != "" {
		ctlOpts = append(ctlOpts, autosave.WithSchedule(opts.Schedule))
	}
	if opts.SaveOnStop {
		ctlOpts = append(ctlOpts, autosave.WithSaveOnStop())
	}

	ctl := autosave.New(books, opts.Sink, ctlOpts...)
	if err := ctl.Start(); err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	logger.Info("library opened", "books", books.Len())

	return &Library{
		books:  books,
		ctl:    ctl,
		sink:   opts.Sink,
		audit:  opts.Audit,
		logger: logger,
	}, nil
}

// AddBook assigns the next free identity to a new book and stores it.
func (l *Library) AddBook(title, author string, year int) (Book, error) {
	book := Book{
		ID:     l.ctl.NextID(),
		Title:  title,
		Author: author,
		Year:   year,
	}
	l.books.Add(book)
	l.audit.Record("add", book.ID, book.Title)
	return book, nil
}

// Book returns the book with the given identity.
func (l *Library) Book(id record.ID) (Book, bool) {
	return l.books.FindByID(id)
}

// Books returns every book in insertion order.
func (l *Library) Books() []Book {
	return l.books.All()
}

// Checkout marks the book as checked out.
func (l *Library) Checkout(id record.ID) error {
	err := l.books.Update(id, func(b *Book) error { return b.Checkout() })
	if err != nil {
		return err
	}
	l.audit.Record("checkout", id, "")
	return nil
}

// Return marks the book as available again.
func (l *Library) Return(id record.ID) error {
	err := l.books.Update(id, func(b *Book) error { return b.Return() })
	if err != nil {
		return err
	}
	l.audit.Record("return", id, "")
	return nil
}

// RemoveBook deletes the book and reports whether it existed.
func (l *Library) RemoveBook(id record.ID) bool {
	removed := l.books.RemoveIf(func(b Book) bool { return b.ID == id })
	if removed > 0 {
		l.audit.Record("remove", id, "")
	}
	return removed > 0
}

// FindByAuthor returns books whose author contains the query,
// case-insensitively.
func (l *Library) FindByAuthor(query string) []Book {
	q := strings.ToLower(query)
	return l.books.FindAll(func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Author), q)
	})
}

// FindByTitle returns books whose title contains the query,
// case-insensitively.
func (l *Library) FindByTitle(query string) []Book {
	q := strings.ToLower(query)
	return l.books.FindAll(func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q)
	})
}

// SaveNow writes one consistent snapshot immediately.
func (l *Library) SaveNow() error {
	return l.ctl.SaveNow()
}

// Len returns the number of books.
func (l *Library) Len() int {
	return l.books.Len()
}

// Close stops the autosave controller, then closes the sink and the audit
// journal. Safe to call more than once.
func (l *Library) Close() error {
	err := l.ctl.Stop()

	if cerr := l.sink.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := l.audit.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
