// Package classifier binds a rule-set, an identity catalog and, optionally,
// an engine resolver into one classifier of user-agent strings.
//
// A Classifier runs its cascade over the input. On a match it expands the
// winning rule's name and version templates, canonicalizes the name through
// the catalog and, when configured, resolves the rendering engine. The
// result is a Record; no match is reported through the found flag, never as
// an error.
//
// A matched name missing from the catalog breaks the contract between the
// rule-set and the catalog. Static names are checked by New; names built
// from capture groups can only be checked per input, and Classify reports
// them as an *InvariantError wrapping ErrInvariantViolation:
//
//	rec, found, err := c.Classify(ua)
//	switch {
//	case errors.Is(err, classifier.ErrInvariantViolation):
//		// broken rule data
//	case !found:
//		// unknown client
//	}
//
// Classifiers are immutable and safe for concurrent use.
package classifier
