// Package pattern compiles the regular expressions used by user-agent rule
// sets.
//
// Rule expressions are written without flags or anchors. Compile turns them
// into case-insensitive matchers anchored to a token boundary, so that a rule
// for "Chrome/" does not fire inside "XChrome/". The boundary wrapper adds no
// capturing group: group numbering in the compiled pattern is the numbering
// of the rule expression.
//
// Patterns are backed by github.com/coregx/coregex, an automaton based engine
// with an O(m*n) worst case. Rule data is external and may contain expressions
// that would backtrack catastrophically on a backtracking engine; here they
// cannot.
package pattern
