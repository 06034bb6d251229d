package catalog

import (
	"errors"
	"testing"

	"folio-hq/folio/pkg/record"
)

func TestBook_MarshalLine(t *testing.T) {
	b := Book{ID: 12, Title: "Dune", Author: "Frank Herbert", Year: 1965}

	if got := b.MarshalLine(); got != "12|Dune|Frank Herbert|1965|0" {
		t.Errorf("MarshalLine = %q", got)
	}

	b.CheckedOut = true
	if got := b.MarshalLine(); got != "12|Dune|Frank Herbert|1965|1" {
		t.Errorf("MarshalLine checked out = %q", got)
	}
}

func TestBook_MarshalLineEscapesDelimiter(t *testing.T) {
	b := Book{ID: 1, Title: "Either|Or", Author: "Kierkegaard", Year: 1843}

	got := b.MarshalLine()
	if got != "1|Either/Or|Kierkegaard|1843|0" {
		t.Errorf("MarshalLine = %q", got)
	}

	// The substitution is lossy and accepted: the parsed title keeps '/'.
	parsed, err := ParseBook(got)
	if err != nil {
		t.Fatalf("ParseBook failed: %v", err)
	}
	if parsed.Title != "Either/Or" {
		t.Errorf("expected lossy title Either/Or, got %q", parsed.Title)
	}
}

func TestParseBook(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Book
		wantErr bool
	}{
		{
			name: "well formed",
			line: "3|Dune|Frank Herbert|1965|0",
			want: Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		},
		{
			name: "checked out with surrounding whitespace",
			line: "  7|Ficciones|Borges|1944|1\r",
			want: Book{ID: 7, Title: "Ficciones", Author: "Borges", Year: 1944, CheckedOut: true},
		},
		{name: "too few fields", line: "1|OnlyTitle", wantErr: true},
		{name: "bad id", line: "x|T|A|2000|0", wantErr: true},
		{name: "bad year", line: "1|T|A|soon|0", wantErr: true},
		{name: "bad checked flag", line: "1|T|A|2000|maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBook(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				var perr *record.ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected *record.ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBook failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseBook = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBook_CheckoutAndReturn(t *testing.T) {
	b := Book{ID: 1, Title: "T", Author: "A", Year: 2000}

	if err := b.Checkout(); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if !b.CheckedOut {
		t.Error("book not marked checked out")
	}

	if err := b.Checkout(); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}

	if err := b.Return(); err != nil {
		t.Fatalf("Return failed: %v", err)
	}
	if b.CheckedOut {
		t.Error("book still marked checked out")
	}

	if err := b.Return(); !errors.Is(err, ErrNotCheckedOut) {
		t.Errorf("expected ErrNotCheckedOut, got %v", err)
	}
}
