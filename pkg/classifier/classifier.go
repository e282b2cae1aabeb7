package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/catalog"
	"github.com/dmitrymomot/devicedetector/pkg/engine"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/rules"
)

// Record is the result of a successful classification.
type Record struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	ShortCode     string `json:"short_code"`
	Version       string `json:"version"`
	Engine        string `json:"engine"`
	EngineVersion string `json:"engine_version"`
}

// Hook post-processes a record built from match. It runs after the catalog
// and engine steps and must not change Name or ShortCode.
type Hook func(rec Record, match cascade.Match) Record

// Config describes one classifier.
type Config struct {
	// Type labels records, logs and metrics, e.g. "browser".
	Type    string
	Rules   *rules.Set
	Catalog *catalog.Catalog
	// Guard is an optional pre-match filter.
	Guard cascade.Guard
	// Engines enables engine resolution. Nil leaves Engine fields empty.
	Engines     *engine.Resolver
	PostProcess Hook
	// VersionTruncation is one of the cascade.Truncate* levels. The zero
	// value keeps full versions.
	VersionTruncation int
	Observer          Observer
	Logger            *slog.Logger
}

// Classifier is a configured, immutable classifier.
type Classifier struct {
	typ        string
	matcher    *cascade.Matcher
	catalog    *catalog.Catalog
	engines    *engine.Resolver
	post       Hook
	truncation int
	observer   Observer
	log        *slog.Logger
}

// New validates cfg against its catalogs and builds a classifier.
func New(cfg Config) (*Classifier, error) {
	if strings.TrimSpace(cfg.Type) == "" {
		return nil, ErrEmptyType
	}
	if cfg.Rules == nil || cfg.Rules.Len() == 0 {
		return nil, ErrNilRuleSet
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	var errs []error
	for i := 0; i < cfg.Rules.Len(); i++ {
		rule := cfg.Rules.At(i)
		if !strings.Contains(rule.Name, "$") {
			if _, ok := cfg.Catalog.Lookup(rule.Name); !ok {
				errs = append(errs, fmt.Errorf("%w: %s entry %d: %q", ErrUnknownName, cfg.Rules.Name(), i, rule.Name))
			}
		}
		if cfg.Engines == nil {
			continue
		}
		for _, name := range rule.Engine.Names() {
			if !cfg.Engines.Known(name) {
				errs = append(errs, fmt.Errorf("%w: %s entry %d: %q", ErrUnknownEngine, cfg.Rules.Name(), i, name))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var opts []cascade.Option
	if cfg.Guard != nil {
		opts = append(opts, cascade.WithGuard(cfg.Guard))
	}

	c := &Classifier{
		typ:        cfg.Type,
		matcher:    cascade.New(cfg.Rules, opts...),
		catalog:    cfg.Catalog,
		engines:    cfg.Engines,
		post:       cfg.PostProcess,
		truncation: cfg.VersionTruncation,
		observer:   cfg.Observer,
		log:        cfg.Logger,
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With(logger.Classifier(c.typ))
	return c, nil
}

// Type returns the classifier type.
func (c *Classifier) Type() string { return c.typ }

// RuleCount returns the number of rules in the cascade.
func (c *Classifier) RuleCount() int { return c.matcher.Set().Len() }

// Catalog returns the identity catalog.
func (c *Classifier) Catalog() *catalog.Catalog { return c.catalog }

// Classify classifies ua. found is false when no rule matches.
func (c *Classifier) Classify(ua string) (Record, bool, error) {
	m, outcome := c.matcher.Evaluate(ua)
	switch outcome {
	case cascade.Guarded:
		c.observer.ObserveClassification(c.typ, OutcomeGuarded)
		return Record{}, false, nil
	case cascade.Absent:
		c.observer.ObserveClassification(c.typ, OutcomeAbsent)
		return Record{}, false, nil
	}

	name := cascade.BuildName(m.Rule.Name, m)
	id, ok := c.catalog.Lookup(name)
	if !ok {
		err := &InvariantError{Type: c.typ, Rule: m.Rule.Index, Name: name, UserAgent: ua}
		c.log.Error("matched name is not in the catalog",
			logger.Rule(m.Rule.Index, m.Rule.Expr),
			logger.UserAgent(ua),
			logger.Error(err),
		)
		c.observer.ObserveClassification(c.typ, OutcomeInvariant)
		return Record{}, false, err
	}

	ver := cascade.BuildVersion(m.Rule.Version, m)
	rec := Record{
		Type:      c.typ,
		Name:      id.Name,
		ShortCode: id.Code,
		Version:   cascade.TruncateVersion(ver, c.truncation),
	}
	if c.engines != nil {
		// Overrides compare against the full version.
		eng, engVer := c.engines.Resolve(m.Rule.Engine, ver, ua)
		rec.Engine = eng
		rec.EngineVersion = cascade.TruncateVersion(engVer, c.truncation)
	}
	if c.post != nil {
		rec = c.post(rec, m)
		rec.Name, rec.ShortCode = id.Name, id.Code
	}

	c.observer.ObserveClassification(c.typ, OutcomeMatched)
	return rec, true, nil
}

// Family returns the family of rec's short code.
func (c *Classifier) Family(rec Record) (string, bool) {
	return c.catalog.Family(rec.ShortCode)
}

// IsMobileOnly reports whether rec's short code is in the mobile-only set.
func (c *Classifier) IsMobileOnly(rec Record) bool {
	return c.catalog.IsMobileOnly(rec.ShortCode)
}
