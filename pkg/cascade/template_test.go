package cascade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tmpl     string
		groups   []string
		expected string
	}{
		{name: "static", tmpl: "Chrome", groups: []string{"x"}, expected: "Chrome"},
		{name: "single group", tmpl: "$1", groups: []string{"Chrome/91", "91"}, expected: "91"},
		{name: "two groups", tmpl: "$1.$2", groups: []string{"", "12", "4"}, expected: "12.4"},
		{name: "empty trailing group", tmpl: "$1.$2", groups: []string{"", "12", ""}, expected: "12"},
		{name: "empty leading group", tmpl: "$1.$2", groups: []string{"", "", "4"}, expected: "4"},
		{name: "empty middle group", tmpl: "$1.$2.$3", groups: []string{"", "1", "", "3"}, expected: "1.3"},
		{name: "missing group", tmpl: "$1/$2", groups: []string{"", "7"}, expected: "7"},
		{name: "name with group", tmpl: "Walkman $1", groups: []string{"", "NWZ"}, expected: "Walkman NWZ"},
		{name: "name with empty group", tmpl: "Walkman $1", groups: []string{""}, expected: "Walkman"},
		{name: "dollar without digit", tmpl: "$x$", groups: nil, expected: "$x$"},
		{name: "no groups at all", tmpl: "$1", groups: nil, expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, cascade.Expand(tc.tmpl, tc.groups))
		})
	}
}

func TestBuildVersion(t *testing.T) {
	t.Parallel()

	m := cascade.Match{Groups: []string{"", "12", ""}}
	assert.Equal(t, "12", cascade.BuildVersion("$1.$2", m))

	m = cascade.Match{Groups: []string{"", "14_4"}}
	assert.Equal(t, "14.4", cascade.BuildVersion("$1", m))

	m = cascade.Match{Groups: []string{"", "11."}}
	assert.Equal(t, "11", cascade.BuildVersion("$1", m))

	m = cascade.Match{Groups: []string{""}}
	assert.Equal(t, "", cascade.BuildVersion("$1", m), "unmatched version means unknown")
	assert.Equal(t, "", cascade.BuildVersion("", m))
	assert.Equal(t, "11.0", cascade.BuildVersion("11.0", m))
}

func TestBuildName(t *testing.T) {
	t.Parallel()

	m := cascade.Match{Groups: []string{"", ""}}
	assert.Equal(t, "Chrome", cascade.BuildName(" Chrome ", m))
	assert.Equal(t, "Opera", cascade.BuildName("Opera $1", m))
}

func TestTruncateVersion(t *testing.T) {
	t.Parallel()

	v := "91.0.4472.124"
	assert.Equal(t, v, cascade.TruncateVersion(v, cascade.TruncateNone))
	assert.Equal(t, "91", cascade.TruncateVersion(v, cascade.TruncateMajor))
	assert.Equal(t, "91.0", cascade.TruncateVersion(v, cascade.TruncateMinor))
	assert.Equal(t, "91.0.4472", cascade.TruncateVersion(v, cascade.TruncatePatch))
	assert.Equal(t, v, cascade.TruncateVersion(v, cascade.TruncateBuild))
	assert.Equal(t, "", cascade.TruncateVersion("", cascade.TruncateMajor))
	assert.Equal(t, "12", cascade.TruncateVersion("12", cascade.TruncateMinor))
	assert.Equal(t, v, cascade.TruncateVersion(v, -1))
}
