package cascade

import (
	"github.com/dmitrymomot/devicedetector/pkg/rules"
)

// Outcome describes how an evaluation ended.
type Outcome uint8

const (
	// Absent means no rule matched.
	Absent Outcome = iota
	// Matched means a rule matched.
	Matched
	// Guarded means the guard rejected the input and no rule was evaluated.
	Guarded
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Guarded:
		return "guarded"
	default:
		return "absent"
	}
}

// Match is the winning rule and the values captured by its pattern.
type Match struct {
	Rule *rules.Entry
	// Groups holds the whole match at index 0 followed by the capture groups.
	Groups []string
}

// Group returns capture group n (1-indexed). A group that did not
// participate or does not exist yields "".
func (m Match) Group(n int) string {
	if n < 1 || n >= len(m.Groups) {
		return ""
	}
	return m.Groups[n]
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithGuard installs a pre-match guard. Nil removes any guard.
func WithGuard(g Guard) Option {
	return func(m *Matcher) { m.guard = g }
}

// Matcher is a first-match-wins evaluator over one rule-set. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct {
	set   *rules.Set
	guard Guard
}

// New returns a matcher over set.
func New(set *rules.Set, opts ...Option) *Matcher {
	m := &Matcher{set: set}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set returns the rule-set the matcher evaluates.
func (m *Matcher) Set() *rules.Set { return m.set }

// Guarded reports whether the matcher has a guard.
func (m *Matcher) Guarded() bool { return m.guard != nil }

// Match returns the first matching rule, if any.
func (m *Matcher) Match(ua string) (Match, bool) {
	match, outcome := m.Evaluate(ua)
	return match, outcome == Matched
}

// Evaluate is Match with the reason for a miss.
func (m *Matcher) Evaluate(ua string) (Match, Outcome) {
	if m.guard != nil && !m.guard.Allow(ua) {
		return Match{}, Guarded
	}
	for i := 0; i < m.set.Len(); i++ {
		rule := m.set.At(i)
		if groups := rule.Pattern.FindStringSubmatch(ua); groups != nil {
			return Match{Rule: rule, Groups: groups}, Matched
		}
	}
	return Match{}, Absent
}
