// Package cascade evaluates an ordered rule-set against a user-agent string
// and builds display values from the winning rule.
//
// Rules are tried in rule-set order and the first one whose pattern matches
// wins; later rules are never consulted. A Matcher can carry a Guard, a cheap
// coarse filter run before the cascade. When the guard rejects the input the
// cascade is skipped and the input is reported as not matching. A guard is an
// optimization only: for inputs it admits, results are those of the unguarded
// cascade, and it must admit every input some rule would match.
//
// Two guards are provided. KeywordGuard runs a single Aho-Corasick pass over
// the input looking for any of a set of keywords. OverallGuard compiles every
// rule of a set into one alternation and runs it once.
//
// Templates reference capture groups as $1 to $9:
//
//	cascade.BuildName("Chrome", m)     // "Chrome"
//	cascade.BuildVersion("$1.$2", m)   // "12" when $2 did not participate
//
// A placeholder whose group is empty takes one adjacent separator with it, so
// no dangling "." or "/" is left behind.
package cascade
