package cascade

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/dmitrymomot/devicedetector/pkg/pattern"
	"github.com/dmitrymomot/devicedetector/pkg/rules"
)

// Guard is a coarse pre-filter run before a cascade.
type Guard interface {
	Allow(ua string) bool
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(ua string) bool

func (f GuardFunc) Allow(ua string) bool { return f(ua) }

// KeywordGuard admits inputs that contain at least one keyword, ignoring
// ASCII case.
type KeywordGuard struct {
	automaton *ahocorasick.Automaton
	keywords  []string
}

// NewKeywordGuard builds a guard over keywords. Empty keywords are skipped.
func NewKeywordGuard(keywords ...string) (*KeywordGuard, error) {
	builder := ahocorasick.NewBuilder()
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		builder.AddPattern([]byte(k))
		kept = append(kept, k)
	}
	if len(kept) == 0 {
		return nil, ErrNoKeywords
	}

	automaton, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}
	return &KeywordGuard{automaton: automaton, keywords: kept}, nil
}

// Keywords returns the lower-cased keywords the guard looks for.
func (g *KeywordGuard) Keywords() []string {
	return append([]string(nil), g.keywords...)
}

func (g *KeywordGuard) Allow(ua string) bool {
	return g.automaton.IsMatch([]byte(strings.ToLower(ua)))
}

// OverallGuard admits inputs matched by any rule of a rule-set, using one
// combined pattern.
type OverallGuard struct {
	pattern pattern.Pattern
}

// NewOverallGuard compiles the alternation of every expression in set with
// compile, which must be the compiler the set was loaded with. Nil selects
// pattern.Compile.
func NewOverallGuard(set *rules.Set, compile pattern.Compiler) (*OverallGuard, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}
	if compile == nil {
		compile = pattern.Compile
	}

	var b strings.Builder
	for i := 0; i < set.Len(); i++ {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString("(?:")
		b.WriteString(set.At(i).Expr)
		b.WriteByte(')')
	}

	p, err := compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile overall guard for %s: %w", set.Name(), err)
	}
	return &OverallGuard{pattern: p}, nil
}

func (g *OverallGuard) Allow(ua string) bool {
	return g.pattern.MatchString(ua)
}
