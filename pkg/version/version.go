package version

import (
	"errors"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Parse normalizes a raw version string and parses it.
func Parse(raw string) (*goversion.Version, error) {
	s := normalize(raw)
	if s == "" {
		return nil, ErrEmptyVersion
	}
	v, err := goversion.NewVersion(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidVersion, err)
	}
	return v, nil
}

// Valid reports whether raw parses as a version.
func Valid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Compare returns -1, 0 or +1 depending on whether a is lower than, equal to
// or greater than b. A string that does not parse sorts below every valid
// version; two invalid strings are equal.
func Compare(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}

// AtLeast reports whether v is a valid version greater than or equal to
// threshold.
func AtLeast(v, threshold string) bool {
	if !Valid(v) {
		return false
	}
	return Compare(v, threshold) >= 0
}

// normalize maps user-agent separators onto dots and strips the leading
// and trailing noise left by template expansion.
func normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "_", ".")
	s = strings.Trim(s, ".")
	return s
}
