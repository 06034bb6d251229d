// Package record defines the contract every item stored in a folio store
// must satisfy, together with the line codec shared by all record types.
//
// # Overview
//
// A record is a data-only value with a stable integer identity that can be
// serialized to a single line of delimited text and parsed back:
//
//   - Record: the marshal side (RecordID, MarshalLine)
//   - ParseFunc[T]: the parse side, supplied to the store at construction
//     (Go interfaces cannot express static constructors)
//
// # Line format
//
// One record per line, fields separated by '|':
//
//	<id>|<field1>|<field2>|...|<fieldN>
//
// A literal '|' inside a free-text field is replaced with '/' before writing.
// The substitution is lossy for '/' itself; this is a known, accepted
// property of the format, not something record types should work around.
//
// # Errors
//
// Malformed lines produce a *ParseError describing the line and the offending
// field. Loaders are expected to treat parse errors as per-line warnings, not
// fatal failures.
package record
