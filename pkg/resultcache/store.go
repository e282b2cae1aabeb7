package resultcache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/dmitrymomot/devicedetector/pkg/classifier"
)

// Entry is one cached classification.
type Entry struct {
	Record classifier.Record `json:"record"`
	Found  bool              `json:"found"`
}

// Store persists entries by key.
type Store interface {
	// Get returns the entry stored under key. A miss is (Entry{}, false, nil).
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// Key derives the cache key of ua for a classifier type.
func Key(classifierType, ua string) string {
	return classifierType + ":" + strconv.FormatUint(xxhash.Sum64String(ua), 16)
}
