// Package store provides a generic, mutex-protected collection of records
// with predicate queries and whole-collection save/load against a byte
// stream.
//
// # Overview
//
// Store[T] owns every record it holds. A single sync.RWMutex serializes all
// operations; no operation is ever partially visible to another caller, and
// a background save racing a foreground mutation observes a consistent
// snapshot.
//
// Queries return owned copies rather than references into store-owned
// storage. Mutating a stored record goes through Update, which re-resolves
// the record by identity under the lock.
//
// # Usage
//
//	s := store.New(catalog.ParseBook)
//
//	id := s.Add(book)
//	matches := s.FindAll(func(b catalog.Book) bool { return b.Year < 1990 })
//	err := s.Update(id, func(b *catalog.Book) error { return b.Checkout() })
//
//	// Persistence
//	err = s.SaveTo(w)
//	skipped, err := s.LoadFrom(r)
//
// # Thread safety
//
// All exported methods are safe for concurrent use. SaveTo holds the read
// lock for the full write, so its output is always a consistent snapshot;
// readers proceed during a save, writers wait for it.
package store
