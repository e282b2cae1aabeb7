package resultcache

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrEncodeEntry                  = errors.New("failed to encode cache entry")
	ErrDecodeEntry                  = errors.New("failed to decode cache entry")
)
