package catalog

import (
	"errors"
	"fmt"

	"folio-hq/folio/pkg/record"
)

// ErrAlreadyCheckedOut is returned when checking out a book that is already
// checked out.
var ErrAlreadyCheckedOut = errors.New("book already checked out")

// ErrNotCheckedOut is returned when returning a book that is not checked
// out.
var ErrNotCheckedOut = errors.New("book is not checked out")

// bookFields is the number of delimited fields in a serialized book line.
const bookFields = 5

// Book is the catalog's record type.
//
// Line format: id|title|author|year|checked, where checked is 0 or 1 and
// any '|' in title or author is replaced with '/' on write.
type Book struct {
	ID         record.ID
	Title      string
	Author     string
	Year       int
	CheckedOut bool
}

// RecordID returns the book's identity.
func (b Book) RecordID() record.ID { return b.ID }

// MarshalLine serializes the book to one line of delimited text.
func (b Book) MarshalLine() string {
	return record.JoinFields(
		fmt.Sprintf("%d", b.ID),
		record.EscapeField(b.Title),
		record.EscapeField(b.Author),
		fmt.Sprintf("%d", b.Year),
		record.FormatBool(b.CheckedOut),
	)
}

// ParseBook parses one serialized book line. It is the record.ParseFunc for
// Book.
func ParseBook(line string) (Book, error) {
	fields := record.SplitFields(line)
	if len(fields) < bookFields {
		return Book{}, &record.ParseError{Line: line, Reason: record.ErrTooFewFields}
	}

	id, err := record.ParseID(line, fields[0])
	if err != nil {
		return Book{}, err
	}
	year, err := record.ParseInt(line, "year", fields[3])
	if err != nil {
		return Book{}, err
	}
	checked, err := record.ParseBool(line, "checked", fields[4])
	if err != nil {
		return Book{}, err
	}

	return Book{
		ID:         id,
		Title:      fields[1],
		Author:     fields[2],
		Year:       year,
		CheckedOut: checked,
	}, nil
}

// Checkout marks the book as checked out.
func (b *Book) Checkout() error {
	if b.CheckedOut {
		return fmt.Errorf("book %d: %w", b.ID, ErrAlreadyCheckedOut)
	}
	b.CheckedOut = true
	return nil
}

// Return marks the book as available again.
func (b *Book) Return() error {
	if !b.CheckedOut {
		return fmt.Errorf("book %d: %w", b.ID, ErrNotCheckedOut)
	}
	b.CheckedOut = false
	return nil
}

// String renders the book for display.
func (b Book) String() string {
	status := "available"
	if b.CheckedOut {
		status = "checked out"
	}
	return fmt.Sprintf("[%d] %q by %s (%d) [%s]", b.ID, b.Title, b.Author, b.Year, status)
}
