package catalog_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicedetector/pkg/catalog"
)

func browserSpec() catalog.Spec {
	return catalog.Spec{
		Domain: "browser",
		Entries: []catalog.Entry{
			{Code: "CH", Name: "Chrome"},
			{Code: "CM", Name: "Chrome Mobile"},
			{Code: "FF", Name: "Firefox"},
			{Code: "MF", Name: "Mobile Safari"},
			{Code: "SF", Name: "Safari"},
			{Code: "PS", Name: "Microsoft Edge"},
		},
		Families: []catalog.Family{
			{Name: "Chrome", Members: []string{"CH", "CM"}},
			{Name: "Safari", Members: []string{"SF", "MF"}},
			{Name: "Internet Explorer", Members: []string{"PS"}},
		},
		MobileOnly: []string{"MF"},
	}
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()
	c := catalog.MustNew(browserSpec())

	tests := []struct {
		name     string
		input    string
		expected catalog.Entry
		found    bool
	}{
		{name: "exact", input: "Chrome", expected: catalog.Entry{Code: "CH", Name: "Chrome"}, found: true},
		{name: "lower case", input: "chrome mobile", expected: catalog.Entry{Code: "CM", Name: "Chrome Mobile"}, found: true},
		{name: "upper case", input: "MICROSOFT EDGE", expected: catalog.Entry{Code: "PS", Name: "Microsoft Edge"}, found: true},
		{name: "surrounding spaces", input: " Firefox ", expected: catalog.Entry{Code: "FF", Name: "Firefox"}, found: true},
		{name: "prefix is not a match", input: "Chrom", found: false},
		{name: "code is not a name", input: "CH", found: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e, ok := c.Lookup(tc.input)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, e)
		})
	}

	code, ok := c.Code("safari")
	assert.True(t, ok)
	assert.Equal(t, "SF", code)

	name, ok := c.Name("FF")
	assert.True(t, ok)
	assert.Equal(t, "Firefox", name)

	_, ok = c.Name("ff")
	assert.False(t, ok, "codes are case-sensitive")
}

func TestCatalog_Family(t *testing.T) {
	t.Parallel()
	c := catalog.MustNew(browserSpec())

	fam, ok := c.Family("CM")
	assert.True(t, ok)
	assert.Equal(t, "Chrome", fam)

	fam, ok = c.Family("PS")
	assert.True(t, ok)
	assert.Equal(t, "Internet Explorer", fam)

	_, ok = c.Family("FF")
	assert.False(t, ok)

	_, ok = c.Family("cm")
	assert.False(t, ok)
}

func TestCatalog_MembershipIndependentOfOrder(t *testing.T) {
	t.Parallel()

	reversed := browserSpec()
	for i, j := 0, len(reversed.Entries)-1; i < j; i, j = i+1, j-1 {
		reversed.Entries[i], reversed.Entries[j] = reversed.Entries[j], reversed.Entries[i]
	}
	for i, j := 0, len(reversed.Families)-1; i < j; i, j = i+1, j-1 {
		reversed.Families[i], reversed.Families[j] = reversed.Families[j], reversed.Families[i]
	}

	a := catalog.MustNew(browserSpec())
	b := catalog.MustNew(reversed)

	for _, e := range a.Entries() {
		famA, okA := a.Family(e.Code)
		famB, okB := b.Family(e.Code)
		assert.Equal(t, okA, okB, e.Code)
		assert.Equal(t, famA, famB, e.Code)
		assert.Equal(t, a.IsMobileOnly(e.Code), b.IsMobileOnly(e.Code), e.Code)
	}
}

func TestCatalog_FirstFamilyWins(t *testing.T) {
	t.Parallel()

	c := catalog.MustNew(catalog.Spec{
		Entries: []catalog.Entry{{Code: "AN", Name: "Android Browser"}},
		Families: []catalog.Family{
			{Name: "Android Browser", Members: []string{"AN"}},
			{Name: "Other", Members: []string{"AN"}},
		},
	})

	fam, ok := c.Family("AN")
	assert.True(t, ok)
	assert.Equal(t, "Android Browser", fam)
}

func TestCatalog_IsMobileOnly(t *testing.T) {
	t.Parallel()
	c := catalog.MustNew(browserSpec())

	assert.True(t, c.IsMobileOnly("MF"))
	assert.False(t, c.IsMobileOnly("mf"))
	assert.False(t, c.IsMobileOnly("SF"))
	assert.False(t, c.IsMobileOnly("Mobile Safari"))
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()
	c := catalog.MustNew(browserSpec())

	e, ok := c.Resolve("MF")
	require.True(t, ok)
	assert.Equal(t, "Mobile Safari", e.Name)

	e, ok = c.Resolve("mobile safari")
	require.True(t, ok)
	assert.Equal(t, "MF", e.Code)

	_, ok = c.Resolve("Opera")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     catalog.Spec
		expected error
	}{
		{
			name:     "empty code",
			spec:     catalog.Spec{Entries: []catalog.Entry{{Name: "Chrome"}}},
			expected: catalog.ErrInvalidEntry,
		},
		{
			name:     "duplicate code",
			spec:     catalog.Spec{Entries: []catalog.Entry{{Code: "CH", Name: "Chrome"}, {Code: "CH", Name: "Chromium"}}},
			expected: catalog.ErrDuplicateCode,
		},
		{
			name:     "duplicate name ignoring case",
			spec:     catalog.Spec{Entries: []catalog.Entry{{Code: "CH", Name: "Chrome"}, {Code: "C2", Name: "CHROME"}}},
			expected: catalog.ErrDuplicateName,
		},
		{
			name: "dangling family member",
			spec: catalog.Spec{
				Entries:  []catalog.Entry{{Code: "CH", Name: "Chrome"}},
				Families: []catalog.Family{{Name: "Chrome", Members: []string{"CH", "CM"}}},
			},
			expected: catalog.ErrUnknownCode,
		},
		{
			name: "family without name",
			spec: catalog.Spec{
				Entries:  []catalog.Entry{{Code: "CH", Name: "Chrome"}},
				Families: []catalog.Family{{Members: []string{"CH"}}},
			},
			expected: catalog.ErrInvalidFamily,
		},
		{
			name: "dangling mobile-only code",
			spec: catalog.Spec{
				Entries:    []catalog.Entry{{Code: "CH", Name: "Chrome"}},
				MobileOnly: []string{"MF"},
			},
			expected: catalog.ErrUnknownCode,
		},
		{
			name: "code collides with another name",
			spec: catalog.Spec{Entries: []catalog.Entry{
				{Code: "QQ", Name: "QQ Browser"},
				{Code: "Q1", Name: "qq"},
			}},
			expected: catalog.ErrAmbiguousIdentifier,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := catalog.New(tc.spec)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	assert.Panics(t, func() {
		catalog.MustNew(catalog.Spec{Entries: []catalog.Entry{{Code: "X"}}})
	})
}

func TestNew_CodeEqualToOwnName(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Spec{Entries: []catalog.Entry{{Code: "Iron", Name: "Iron"}}})
	require.NoError(t, err)

	e, ok := c.Resolve("iron")
	require.True(t, ok)
	assert.Equal(t, "Iron", e.Code)
}

const catalogYAML = `
domain: engine
entries:
  - {code: WK, name: WebKit}
  - {code: BL, name: Blink}
families:
  - name: WebKit
    members: [WK, BL]
mobile_only: []
`

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, "engine", c.Domain())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []catalog.Family{{Name: "WebKit", Members: []string{"WK", "BL"}}}, c.Families())

	_, err = catalog.Load(strings.NewReader("entries: [{code: WK, label: WebKit}]"))
	assert.ErrorIs(t, err, catalog.ErrDecodeCatalog)

	fsys := fstest.MapFS{"engines.yml": {Data: []byte(catalogYAML)}}
	c, err = catalog.LoadFile(fsys, "engines.yml")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = catalog.LoadFile(fsys, "missing.yml")
	assert.Error(t, err)
}
