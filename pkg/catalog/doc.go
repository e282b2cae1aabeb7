// Package catalog implements the static identity tables a classifier
// canonicalizes its matches against: canonical name to short code, families
// of related identities and the set of mobile-only identities.
//
// A Catalog is built once, validated as a whole, and never mutated; it can be
// shared by any number of goroutines. Structural problems in the data (two
// entries with one short code, a family referring to a code that does not
// exist, a code that reads like another entry's name) are load-time errors.
//
// Name lookups are case-insensitive and use full Unicode case folding. Short
// code lookups are exact: codes are fixed-case identifiers.
//
// # Usage
//
//	cat, err := catalog.Load(f) // YAML document
//	if err != nil {
//	    // reject the data set before serving
//	}
//	e, ok := cat.Lookup("chrome") // {Code: "CH", Name: "Chrome"}
//	fam, _ := cat.Family(e.Code)  // "Chrome"
//	cat.IsMobileOnly("MF")        // true
package catalog
