package rulewatch

import (
	"sync/atomic"
)

// Holder keeps the current value built from the rule files and replaces it
// on Reload. Readers never observe a partially built value.
type Holder[T any] struct {
	build   func() (*T, error)
	current atomic.Pointer[T]
}

// NewHolder builds the initial value.
func NewHolder[T any](build func() (*T, error)) (*Holder[T], error) {
	if build == nil {
		return nil, ErrNilBuild
	}
	v, err := build()
	if err != nil {
		return nil, err
	}
	h := &Holder[T]{build: build}
	h.current.Store(v)
	return h, nil
}

// Load returns the current value.
func (h *Holder[T]) Load() *T { return h.current.Load() }

// Reload builds a new value and swaps it in. On error the current value is
// kept.
func (h *Holder[T]) Reload() error {
	v, err := h.build()
	if err != nil {
		return err
	}
	h.current.Store(v)
	return nil
}
