// Package version compares client and engine version strings the way they
// appear in user-agent strings: dot separated numeric segments of arbitrary
// length ("91.0.4472.124"), underscore separated iOS style versions ("14_4")
// and short pre-release suffixes ("12.0b1").
//
// Comparison is numeric per segment, never lexical, so "10" sorts after "9".
// Missing trailing segments compare as zero, so "28" equals "28.0.0".
//
// Parsing is delegated to github.com/hashicorp/go-version after the input is
// normalized.
//
// # Usage
//
//	if version.AtLeast("91.0.4472.124", "28") {
//	    // engine switched to Blink
//	}
//
//	version.Compare("9.1", "10") // -1
package version
