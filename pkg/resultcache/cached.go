package resultcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
)

// Classifier is what Cached wraps; *classifier.Classifier implements it.
type Classifier interface {
	Type() string
	Classify(ua string) (classifier.Record, bool, error)
}

// Result labels one cache lookup.
type Result string

const (
	Hit   Result = "hit"
	Miss  Result = "miss"
	Error Result = "error"
)

// Observer is notified of every lookup.
type Observer interface {
	ObserveCacheLookup(classifier string, result Result)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(classifier string, result Result)

func (f ObserverFunc) ObserveCacheLookup(classifier string, result Result) { f(classifier, result) }

// DefaultTimeout bounds each store call made by Cached.
const DefaultTimeout = 100 * time.Millisecond

// Option configures Cached.
type Option func(*Cached)

func WithLogger(l *slog.Logger) Option {
	return func(c *Cached) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Cached) { c.observer = o }
}

// WithTimeout bounds each store call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Cached) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNamespace prefixes every key, so classifiers built from different
// rules or settings never read each other's entries from a shared store.
func WithNamespace(ns string) Option {
	return func(c *Cached) { c.namespace = ns }
}

// Cached is a Classifier backed by a Store.
type Cached struct {
	next      Classifier
	store     Store
	namespace string
	timeout   time.Duration
	observer  Observer
	log       *slog.Logger
}

// New wraps next with store.
func New(next Classifier, store Store, opts ...Option) *Cached {
	c := &Cached{
		next:    next,
		store:   store,
		timeout: DefaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("resultcache"), logger.Classifier(next.Type()))
	return c
}

func (c *Cached) Type() string { return c.next.Type() }

// Classify returns the stored result for ua or classifies it and stores the
// result.
func (c *Cached) Classify(ua string) (classifier.Record, bool, error) {
	key := Key(c.next.Type(), ua)
	if c.namespace != "" {
		key = c.namespace + ":" + key
	}

	e, ok, err := c.get(key)
	switch {
	case err != nil:
		c.observe(Error)
		c.log.Warn("cache read failed", logger.Error(err))
	case ok:
		c.observe(Hit)
		return e.Record, e.Found, nil
	default:
		c.observe(Miss)
	}

	rec, found, err := c.next.Classify(ua)
	if err != nil {
		return rec, found, err
	}

	if err := c.set(key, Entry{Record: rec, Found: found}); err != nil {
		c.log.Warn("cache write failed", logger.Error(err))
	}
	return rec, found, nil
}

func (c *Cached) get(key string) (Entry, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.store.Get(ctx, key)
}

func (c *Cached) set(key string, e Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.store.Set(ctx, key, e)
}

func (c *Cached) observe(r Result) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup(c.next.Type(), r)
	}
}
