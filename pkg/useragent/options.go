package useragent

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
)

// Option configures a Parser and the classifiers it builds.
type Option func(*options)

type options struct {
	fsys          fs.FS
	maxLength     int
	truncation    int
	log           *slog.Logger
	observer      classifier.Observer
	cache         resultcache.Store
	cacheObserver resultcache.Observer
}

func newOptions(opts []Option) options {
	o := options{
		maxLength: DefaultMaxLength,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fsys == nil {
		o.fsys = Fixtures()
	}
	return o
}

// WithFS loads rule-sets and catalogs from fsys instead of the embedded
// fixtures. Nil is ignored.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithMaxLength sets the longest accepted user agent. Non-positive values
// are ignored.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// WithVersionTruncation truncates client and engine versions to one of the
// cascade.Truncate* levels.
func WithVersionTruncation(level int) Option {
	return func(o *options) { o.truncation = level }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver reports every classification outcome to obs.
func WithObserver(obs classifier.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithCache memoizes classifications in store.
func WithCache(store resultcache.Store) Option {
	return func(o *options) { o.cache = store }
}

// WithCacheObserver reports cache lookups to obs. It has no effect without
// WithCache.
func WithCacheObserver(obs resultcache.Observer) Option {
	return func(o *options) { o.cacheObserver = obs }
}
