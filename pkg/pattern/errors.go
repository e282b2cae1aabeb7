package pattern

import "errors"

var (
	ErrEmptyExpression   = errors.New("empty pattern expression")
	ErrInvalidExpression = errors.New("invalid pattern expression")
)
