// Package audit provides an optional JSON-lines journal of catalog
// mutations.
//
// Events are enqueued without blocking the caller and drained to the journal
// file by a single background worker; Close flushes the queue before
// returning. A nil *Recorder is valid and records nothing, so audit can be
// disabled without sprinkling conditionals through calling code.
package audit
