// Package catalog implements the lending-library domain on top of the
// generic store: the Book record type with its checkout/return rules, and
// the Library service that wires a store, an autosave controller, and an
// optional audit journal into one component.
//
// # Usage
//
//	lib, err := catalog.Open(catalog.Options{
//	    Sink:     snapshot.NewFileSink("data/catalog.txt"),
//	    Interval: 10 * time.Second,
//	})
//	if err != nil { ... }
//	defer lib.Close()
//
//	book, _ := lib.AddBook("The Go Programming Language", "Donovan/Kernighan", 2015)
//	err = lib.Checkout(book.ID)
package catalog
