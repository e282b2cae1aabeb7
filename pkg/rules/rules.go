package rules

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/devicedetector/pkg/pattern"
)

// Entry is one rule of a rule-set.
type Entry struct {
	// Index is the position of the entry in its rule-set.
	Index   int
	Expr    string
	Pattern pattern.Pattern
	// Name and Version are templates; $1..$9 refer to capture groups.
	Name    string
	Version string
	Engine  EngineSpec
}

// NewEntry compiles expr and returns an entry with the given templates.
func NewEntry(expr, name, version string, engine EngineSpec) (Entry, error) {
	p, err := pattern.Compile(expr)
	if err != nil {
		return Entry{}, errors.Join(ErrInvalidPattern, err)
	}
	return Entry{Expr: expr, Pattern: p, Name: name, Version: version, Engine: engine}, nil
}

// MustEntry is like NewEntry but panics on error.
func MustEntry(expr, name, version string, engine EngineSpec) Entry {
	e, err := NewEntry(expr, name, version, engine)
	if err != nil {
		panic(err)
	}
	return e
}

// Set is an immutable, ordered rule-set.
type Set struct {
	name    string
	entries []Entry
}

// NewSet builds a rule-set from entries in precedence order.
func NewSet(name string, entries ...Entry) *Set {
	s := &Set{name: name, entries: make([]Entry, len(entries))}
	copy(s.entries, entries)
	for i := range s.entries {
		s.entries[i].Index = i
	}
	return s
}

// Name identifies the rule-set in logs and errors.
func (s *Set) Name() string { return s.name }

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.entries) }

// At returns the entry at position i. The entry must not be modified.
func (s *Set) At(i int) *Entry { return &s.entries[i] }

// Entries returns a copy of the entries in precedence order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

type options struct {
	requireVersion bool
	compiler       pattern.Compiler
}

// Option configures Load.
type Option func(*options)

// RequireVersion makes the version key mandatory on every entry. Client
// rule-sets use it; an explicitly empty version is still allowed.
func RequireVersion() Option {
	return func(o *options) { o.requireVersion = true }
}

// WithCompiler replaces the pattern compiler. Nil is ignored.
func WithCompiler(c pattern.Compiler) Option {
	return func(o *options) {
		if c != nil {
			o.compiler = c
		}
	}
}

type rawEntry struct {
	Regex   string  `yaml:"regex"`
	Name    *string `yaml:"name"`
	Version *string `yaml:"version"`
	// Model is accepted in place of version by device rule-sets.
	Model  *string     `yaml:"model"`
	Engine *EngineSpec `yaml:"engine"`
}

// Load decodes a YAML rule-set and compiles every expression.
func Load(name string, r io.Reader, opts ...Option) (*Set, error) {
	o := options{compiler: pattern.Compile}
	for _, opt := range opts {
		opt(&o)
	}

	var raw []rawEntry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyRuleSet)
		}
		return nil, errors.Join(ErrDecodeRuleSet, fmt.Errorf("%s: %w", name, err))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyRuleSet)
	}

	entries := make([]Entry, 0, len(raw))
	for i, re := range raw {
		e, err := o.entry(re)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", name, i, err)
		}
		entries = append(entries, e)
	}
	return NewSet(name, entries...), nil
}

// LoadFile loads the rule-set stored at p in fsys. The set is named after the
// file.
func LoadFile(fsys fs.FS, p string, opts ...Option) (*Set, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open rule-set %s: %w", p, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	return Load(name, f, opts...)
}

func (o options) entry(re rawEntry) (Entry, error) {
	expr := strings.TrimSpace(re.Regex)
	if expr == "" {
		return Entry{}, ErrMissingPattern
	}
	if re.Name == nil || strings.TrimSpace(*re.Name) == "" {
		return Entry{}, ErrMissingName
	}
	if re.Version == nil {
		re.Version = re.Model
	}
	if re.Version == nil && o.requireVersion {
		return Entry{}, ErrMissingVersion
	}

	var spec EngineSpec
	if re.Engine != nil {
		spec = *re.Engine
		if err := spec.Validate(); err != nil {
			return Entry{}, err
		}
	}

	p, err := o.compiler(expr)
	if err != nil {
		return Entry{}, errors.Join(ErrInvalidPattern, err)
	}

	e := Entry{Expr: expr, Pattern: p, Name: *re.Name, Engine: spec}
	if re.Version != nil {
		e.Version = *re.Version
	}
	return e, nil
}
