package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Delimiter separates fields within a serialized line.
	Delimiter = "|"

	// Substitute replaces Delimiter occurrences inside free-text fields.
	// The replacement is lossy for the substitute character itself.
	Substitute = "/"
)

// ErrTooFewFields indicates a line with fewer delimited fields than the
// record type requires.
var ErrTooFewFields = errors.New("too few fields")

// ParseError describes a line that could not be parsed into a record.
// It wraps the underlying cause so callers can match with errors.Is.
type ParseError struct {
	// Line is the offending input line, already trimmed.
	Line string

	// Field names the field that failed, empty when the whole line is bad.
	Field string

	// Reason is the underlying cause.
	Reason error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse record line %q: field %s: %v", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("parse record line %q: %v", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Reason }

// EscapeField makes a free-text field safe for the line format by replacing
// every delimiter character with the substitute character.
func EscapeField(s string) string {
	return strings.ReplaceAll(s, Delimiter, Substitute)
}

// JoinFields assembles a serialized line from already-escaped fields.
func JoinFields(fields ...string) string {
	return strings.Join(fields, Delimiter)
}

// SplitFields trims leading and trailing whitespace from a line and splits
// it into its delimited fields.
func SplitFields(line string) []string {
	return strings.Split(strings.TrimSpace(line), Delimiter)
}

// ParseID parses an identity field.
func ParseID(line, field string) (ID, error) {
	v, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, &ParseError{Line: line, Field: "id", Reason: err}
	}
	return ID(v), nil
}

// ParseInt parses an integer field, naming it in the error on failure.
func ParseInt(line, name, field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, &ParseError{Line: line, Field: name, Reason: err}
	}
	return v, nil
}

// ParseBool parses a 0/1 flag field.
func ParseBool(line, name, field string) (bool, error) {
	switch field {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, &ParseError{Line: line, Field: name, Reason: fmt.Errorf("want 0 or 1, got %q", field)}
	}
}

// FormatBool renders a flag field as 0/1.
func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
