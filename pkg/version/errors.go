package version

import "errors"

var (
	ErrEmptyVersion   = errors.New("empty version string")
	ErrInvalidVersion = errors.New("invalid version string")
)
