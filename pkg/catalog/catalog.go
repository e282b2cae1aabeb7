package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Entry is one identity: a short code and its canonical name.
type Entry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Family groups identities by short code.
type Family struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// Spec is the declarative form of a catalog, as stored on disk.
type Spec struct {
	Domain     string   `yaml:"domain"`
	Entries    []Entry  `yaml:"entries"`
	Families   []Family `yaml:"families"`
	MobileOnly []string `yaml:"mobile_only"`
}

type family struct {
	name    string
	members map[string]struct{}
}

// Catalog is an immutable identity table.
type Catalog struct {
	domain     string
	entries    []Entry
	byCode     map[string]int
	byName     map[string]int
	families   []family
	spec       []Family
	mobileOnly map[string]struct{}
}

// New validates spec and builds a catalog from it.
func New(spec Spec) (*Catalog, error) {
	c := &Catalog{
		domain:     spec.Domain,
		entries:    make([]Entry, 0, len(spec.Entries)),
		byCode:     make(map[string]int, len(spec.Entries)),
		byName:     make(map[string]int, len(spec.Entries)),
		mobileOnly: make(map[string]struct{}, len(spec.MobileOnly)),
	}

	for i, e := range spec.Entries {
		e.Code = strings.TrimSpace(e.Code)
		e.Name = strings.TrimSpace(e.Name)
		if e.Code == "" || e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidEntry, i)
		}
		if _, ok := c.byCode[e.Code]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCode, e.Code)
		}
		key := fold(e.Name)
		if j, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateName, c.entries[j].Name, e.Name)
		}
		c.byCode[e.Code] = len(c.entries)
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	// A code that reads like another identity's name makes Resolve depend
	// on lookup order.
	for i, e := range c.entries {
		if j, ok := c.byName[fold(e.Code)]; ok && j != i {
			return nil, fmt.Errorf("%w: code %q of %q equals name %q", ErrAmbiguousIdentifier, e.Code, e.Name, c.entries[j].Name)
		}
	}

	for i, f := range spec.Families {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: family %d", ErrInvalidFamily, i)
		}
		members := make(map[string]struct{}, len(f.Members))
		for _, code := range f.Members {
			if _, ok := c.byCode[code]; !ok {
				return nil, fmt.Errorf("%w: %q in family %q", ErrUnknownCode, code, name)
			}
			members[code] = struct{}{}
		}
		c.families = append(c.families, family{name: name, members: members})
		c.spec = append(c.spec, Family{Name: name, Members: append([]string(nil), f.Members...)})
	}

	for _, code := range spec.MobileOnly {
		if _, ok := c.byCode[code]; !ok {
			return nil, fmt.Errorf("%w: %q in mobile-only set", ErrUnknownCode, code)
		}
		c.mobileOnly[code] = struct{}{}
	}

	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(spec Spec) *Catalog {
	c, err := New(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Load decodes a YAML catalog and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var spec Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDecodeCatalog, err)
	}
	return New(spec)
}

// LoadFile loads the catalog stored at path in fsys.
func LoadFile(fsys fs.FS, path string) (*Catalog, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Domain names what the catalog identifies ("browser", "engine", ...).
func (c *Catalog) Domain() string { return c.domain }

// Len returns the number of identities.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of the identities in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Families returns a copy of the families in declaration order.
func (c *Catalog) Families() []Family {
	out := make([]Family, len(c.spec))
	for i, f := range c.spec {
		out[i] = Family{Name: f.Name, Members: append([]string(nil), f.Members...)}
	}
	return out
}

// Lookup finds an identity by canonical name, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[fold(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Code returns the short code of a canonical name, ignoring case.
func (c *Catalog) Code(name string) (string, bool) {
	e, ok := c.Lookup(name)
	return e.Code, ok
}

// Name returns the canonical name for an exact short code.
func (c *Catalog) Name(code string) (string, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return "", false
	}
	return c.entries[i].Name, true
}

// Resolve accepts either a short code or a canonical name. Codes are tried
// first; construction guarantees the two forms cannot collide.
func (c *Catalog) Resolve(nameOrCode string) (Entry, bool) {
	if i, ok := c.byCode[nameOrCode]; ok {
		return c.entries[i], true
	}
	return c.Lookup(nameOrCode)
}

// Family returns the first family, in declaration order, that lists code.
func (c *Catalog) Family(code string) (string, bool) {
	for _, f := range c.families {
		if _, ok := f.members[code]; ok {
			return f.name, true
		}
	}
	return "", false
}

// IsMobileOnly reports whether code is in the mobile-only set.
func (c *Catalog) IsMobileOnly(code string) bool {
	_, ok := c.mobileOnly[code]
	return ok
}

// fold builds a fresh Caser per call: a cases.Caser holds state and cannot
// be shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}
