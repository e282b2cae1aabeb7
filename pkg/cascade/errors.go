package cascade

import "errors"

var (
	ErrNoKeywords = errors.New("keyword guard needs at least one keyword")
	ErrEmptySet   = errors.New("guard needs a non-empty rule-set")
)
