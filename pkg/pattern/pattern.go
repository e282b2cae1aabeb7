package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/coregx/coregex"
)

// Pattern is a compiled expression. Implementations must be safe for
// concurrent use.
type Pattern interface {
	MatchString(s string) bool
	// FindStringSubmatch returns the leftmost match followed by its capture
	// groups, or nil. Groups that did not participate are empty strings.
	FindStringSubmatch(s string) []string
	String() string
}

// Compiler turns a rule expression into a Pattern.
type Compiler func(expr string) (Pattern, error)

// boundary keeps rules from matching in the middle of a product token.
const boundary = `(?:^|[^A-Z0-9\-_]|[^A-Z0-9\-]_|sprd-|MZ-)`

// Compile compiles a rule expression as a case-insensitive pattern anchored
// to a token boundary.
func Compile(expr string) (Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}
	return compile(expr, Wrap(expr))
}

// MustCompile is like Compile but panics on error. Intended for expressions
// defined in code.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileRaw compiles expr exactly as written.
func CompileRaw(expr string) (Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}
	return compile(expr, expr)
}

// Wrap returns the full expression Compile uses for a rule expression.
func Wrap(expr string) string {
	return "(?i)" + boundary + "(?:" + expr + ")"
}

// QuoteMeta escapes every metacharacter in s.
func QuoteMeta(s string) string { return coregex.QuoteMeta(s) }

func compile(source, full string) (Pattern, error) {
	re, err := coregex.Compile(full)
	if err != nil {
		return nil, errors.Join(ErrInvalidExpression, fmt.Errorf("%q: %w", source, err))
	}
	groups, err := regexp.Compile(full)
	if err != nil {
		return nil, errors.Join(ErrInvalidExpression, fmt.Errorf("%q: %w", source, err))
	}
	return &regex{re: re, groups: groups, source: source}, nil
}

// regex searches with coregex. Group boundaries are read with regexp, and
// only for inputs coregex matched.
type regex struct {
	re     *coregex.Regex
	groups *regexp.Regexp
	source string
}

// MatchString goes through the capture search: coregex's IsMatch path misses
// matches of case-insensitive boundary-wrapped expressions.
func (r *regex) MatchString(s string) bool { return r.re.FindStringSubmatchIndex(s) != nil }

// FindStringSubmatch returns the groups regexp reports for the match;
// coregex can extend a group past a literal that follows it.
func (r *regex) FindStringSubmatch(s string) []string {
	if r.re.FindStringSubmatchIndex(s) == nil {
		return nil
	}
	return r.groups.FindStringSubmatch(s)
}

// String returns the rule expression the pattern was compiled from.
func (r *regex) String() string { return r.source }
