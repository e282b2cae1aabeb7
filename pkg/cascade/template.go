package cascade

import (
	"strings"
)

// Version truncation levels: the number of dot-separated parts kept.
const (
	TruncateNone  = 0
	TruncateMajor = 1
	TruncateMinor = 2
	TruncatePatch = 3
	TruncateBuild = 4
)

// Expand substitutes $1..$9 in tmpl with the matching entries of groups
// (index 0 being the whole match). An empty substitution removes one
// separator directly before it or, failing that, directly after it.
func Expand(tmpl string, groups []string) string {
	if strings.IndexByte(tmpl, '$') < 0 {
		return tmpl
	}

	out := make([]byte, 0, len(tmpl)+16)
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) || tmpl[i+1] < '1' || tmpl[i+1] > '9' {
			out = append(out, c)
			continue
		}

		n := int(tmpl[i+1] - '0')
		i++

		var value string
		if n < len(groups) {
			value = groups[n]
		}
		if value == "" {
			if len(out) > 0 && isSeparator(out[len(out)-1]) {
				out = out[:len(out)-1]
			} else if i+1 < len(tmpl) && isSeparator(tmpl[i+1]) {
				i++
			}
			continue
		}
		out = append(out, value...)
	}
	return string(out)
}

// BuildName expands a name template.
func BuildName(tmpl string, m Match) string {
	return strings.TrimSpace(Expand(tmpl, m.Groups))
}

// BuildVersion expands a version template, turns underscores into dots and
// trims separators left at either end. An unmatched template yields "".
func BuildVersion(tmpl string, m Match) string {
	v := Expand(tmpl, m.Groups)
	v = strings.ReplaceAll(v, "_", ".")
	return strings.Trim(v, " ./")
}

// TruncateVersion keeps at most parts dot-separated parts of v. Zero or
// negative parts leaves v untouched.
func TruncateVersion(v string, parts int) string {
	if parts <= 0 || strings.Count(v, ".") < parts {
		return v
	}
	segments := strings.SplitN(v, ".", parts+1)
	return strings.Join(segments[:parts], ".")
}

func isSeparator(c byte) bool {
	switch c {
	case '.', '/', '_', '-', ' ':
		return true
	}
	return false
}
