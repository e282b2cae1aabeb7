package useragent

import "errors"

var (
	ErrEmptyUserAgent   = errors.New("empty user agent string")
	ErrUserAgentTooLong = errors.New("user agent string too long")
	ErrLoadFixtures     = errors.New("failed to load user agent fixtures")
	ErrParsingFailed    = errors.New("failed to parse user agent")
)
