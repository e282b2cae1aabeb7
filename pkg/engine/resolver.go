package engine

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/catalog"
	"github.com/dmitrymomot/devicedetector/pkg/pattern"
	"github.com/dmitrymomot/devicedetector/pkg/rules"
	"github.com/dmitrymomot/devicedetector/pkg/version"
)

// Gecko reports its version through the rv: token, tied to a Gecko build date.
const geckoVersionExpr = `[ ](?:rv[: ]([0-9\.]+)).*gecko/[0-9]{8,10}`

// defaultTokens maps engines that do not name themselves in the user agent
// to the product tokens carrying their version.
var defaultTokens = map[string]string{
	"Blink": `Chr[o0]me|Chromium|Cronet`,
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	tokens map[string]string
}

// WithVersionToken sets the expression matched in front of the version
// number of engine. It replaces the built-in token for that engine.
func WithVersionToken(engine, token string) Option {
	return func(o *options) {
		if engine != "" && token != "" {
			o.tokens[engine] = token
		}
	}
}

// Resolver resolves engines for one classifier. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	engines  *catalog.Catalog
	fallback *cascade.Matcher
	versions map[string]pattern.Pattern
}

// NewResolver builds a resolver over the engine catalog and the engine
// rule-set used as the last tier. Every rule of set must name an engine of
// the catalog.
func NewResolver(engines *catalog.Catalog, set *rules.Set, opts ...Option) (*Resolver, error) {
	if engines == nil {
		return nil, ErrNilCatalog
	}
	if set == nil || set.Len() == 0 {
		return nil, ErrNilRuleSet
	}

	o := options{tokens: make(map[string]string, len(defaultTokens))}
	for name, token := range defaultTokens {
		o.tokens[name] = token
	}
	for _, opt := range opts {
		opt(&o)
	}

	for i := 0; i < set.Len(); i++ {
		name := set.At(i).Name
		if _, ok := engines.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q (%s entry %d)", ErrUnknownEngine, name, set.Name(), i)
		}
	}

	r := &Resolver{
		engines:  engines,
		fallback: cascade.New(set),
		versions: make(map[string]pattern.Pattern, engines.Len()),
	}
	for _, e := range engines.Entries() {
		p, err := versionPattern(e.Name, o.tokens[e.Name])
		if err != nil {
			return nil, fmt.Errorf("engine %q: %w", e.Name, err)
		}
		r.versions[e.Name] = p
	}
	return r, nil
}

// Catalog returns the engine catalog.
func (r *Resolver) Catalog() *catalog.Catalog { return r.engines }

// Known reports whether name is an engine of the catalog.
func (r *Resolver) Known(name string) bool {
	_, ok := r.engines.Lookup(name)
	return ok
}

// Resolve returns the engine and engine version for a client matched with
// spec at clientVersion.
func (r *Resolver) Resolve(spec rules.EngineSpec, clientVersion, ua string) (string, string) {
	name := r.Engine(spec, clientVersion, ua)
	if name == "" {
		return "", ""
	}
	return name, r.Version(name, ua)
}

// Engine resolves the engine name. See the package documentation for the
// order of the tiers.
func (r *Resolver) Engine(spec rules.EngineSpec, clientVersion, ua string) string {
	name := spec.Default

	for _, o := range spec.Overrides {
		if version.AtLeast(clientVersion, o.Threshold) {
			name = o.Engine
		}
	}

	if name == "" {
		if m, ok := r.fallback.Match(ua); ok {
			name = cascade.BuildName(m.Rule.Name, m)
		}
	}

	if name == "" {
		return ""
	}
	if e, ok := r.engines.Lookup(name); ok {
		return e.Name
	}
	return name
}

// Version reads the version of engine from ua.
func (r *Resolver) Version(engine, ua string) string {
	if engine == "" {
		return ""
	}
	p, ok := r.versions[engine]
	if !ok {
		e, found := r.engines.Lookup(engine)
		if !found {
			return ""
		}
		p = r.versions[e.Name]
	}
	m := p.FindStringSubmatch(ua)
	if len(m) < 2 {
		return ""
	}
	return strings.Trim(m[1], ".")
}

func versionPattern(engine, token string) (pattern.Pattern, error) {
	if engine == "Gecko" && token == "" {
		return pattern.CompileRaw("(?i)" + geckoVersionExpr)
	}
	if token == "" {
		token = pattern.QuoteMeta(engine)
	}
	return pattern.CompileRaw(`(?i)(?:` + token + `)\s*[/_]?\s*(\d+[\.\d]*)`)
}
