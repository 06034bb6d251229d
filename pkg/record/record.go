package record

// ID is the identity of a record, unique within one store.
// Identities are assigned by the caller (normally the autosave controller's
// counter) before insertion; the store itself never generates them.
type ID uint64

// Record is the contract a type must satisfy to live in a store.
// Implementations are plain data: no business behavior is part of the
// contract.
type Record interface {
	// RecordID returns the record's identity. It must be stable for the
	// record's lifetime.
	RecordID() ID

	// MarshalLine serializes the record to a single line of delimited text
	// with no embedded newline. Implementations must escape the field
	// delimiter with EscapeField so the line round-trips through SplitFields.
	MarshalLine() string
}

// ParseFunc parses one line of delimited text into a record of type T.
// It is the counterpart of Record.MarshalLine and must fail with a
// *ParseError when the line has too few fields or a numeric field does not
// parse.
type ParseFunc[T Record] func(line string) (T, error)
