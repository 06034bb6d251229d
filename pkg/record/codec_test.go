package record

import (
	"errors"
	"testing"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no delimiter", "plain text", "plain text"},
		{"single delimiter", "a|b", "a/b"},
		{"multiple delimiters", "|a||b|", "/a//b/"},
		{"substitute preserved", "a/b", "a/b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeField(tt.input); got != tt.want {
				t.Errorf("EscapeField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	line := JoinFields("42", EscapeField("a|b"), "c")
	if line != "42|a/b|c" {
		t.Fatalf("JoinFields produced %q", line)
	}

	fields := SplitFields("  " + line + "\r\n")
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %v", len(fields), fields)
	}
	if fields[1] != "a/b" {
		t.Errorf("expected escaped field a/b, got %q", fields[1])
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("7|x", "7")
	if err != nil {
		t.Fatalf("ParseID failed: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}

	_, err = ParseID("abc|x", "abc")
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Field != "id" {
		t.Errorf("expected field id, got %q", perr.Field)
	}
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt("1|1999", "year", "1999")
	if err != nil {
		t.Fatalf("ParseInt failed: %v", err)
	}
	if v != 1999 {
		t.Errorf("expected 1999, got %d", v)
	}

	_, err = ParseInt("1|nope", "year", "nope")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Field != "year" {
		t.Errorf("expected field year, got %q", perr.Field)
	}
}

func TestParseBool(t *testing.T) {
	for field, want := range map[string]bool{"0": false, "1": true} {
		got, err := ParseBool("l", "checked", field)
		if err != nil {
			t.Fatalf("ParseBool(%q) failed: %v", field, err)
		}
		if got != want {
			t.Errorf("ParseBool(%q) = %v, want %v", field, got, want)
		}
	}

	if _, err := ParseBool("l", "checked", "yes"); err == nil {
		t.Error("expected error for non-flag value")
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ParseError{Line: "l", Reason: cause}
	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its reason")
	}
}
