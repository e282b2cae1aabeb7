package useragent

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/dmitrymomot/devicedetector/pkg/catalog"
	"github.com/dmitrymomot/devicedetector/pkg/rules"
)

//go:embed fixtures/*.yml
var embedded embed.FS

// Fixtures returns the rule-sets and catalogs built into the package.
func Fixtures() fs.FS {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// ValidateFixtures loads every fixture of fsys and builds both classifiers,
// reporting all failures at once.
func ValidateFixtures(fsys fs.FS) error {
	var errs []error
	for _, name := range FixtureFiles {
		if _, err := fs.Stat(fsys, name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrLoadFixtures}, errs...)...)
	}

	if _, err := NewBrowserClassifier(fsys); err != nil {
		errs = append(errs, err)
	}
	if _, err := NewPortableMediaPlayerClassifier(fsys); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func loadCatalog(fsys fs.FS, name string) (*catalog.Catalog, error) {
	c, err := catalog.LoadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrLoadFixtures, err)
	}
	return c, nil
}

func loadRules(fsys fs.FS, name string, opts ...rules.Option) (*rules.Set, error) {
	set, err := rules.LoadFile(fsys, name, opts...)
	if err != nil {
		return nil, errors.Join(ErrLoadFixtures, err)
	}
	return set, nil
}

// fingerprint digests the fixture files of fsys together with the version
// truncation level. Parsers that could answer differently get different
// fingerprints.
func fingerprint(fsys fs.FS, truncation int) (string, error) {
	d := xxhash.New()
	for _, name := range FixtureFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", errors.Join(ErrLoadFixtures, fmt.Errorf("%s: %w", name, err))
		}
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		_, _ = d.Write(data)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16) + "." + strconv.Itoa(truncation), nil
}
