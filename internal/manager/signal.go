package manager

import (
	"slices"

	"github.com/dshills/propbrowser/internal/property"
)

// Subscription is a registered change callback.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the callback. It is safe to call more than once and
// from within the callback itself.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type handler[T any] struct {
	id uint64
	fn func(p *property.Property, v T)
}

// signal is a list of typed change callbacks.
type signal[T any] struct {
	nextID   uint64
	handlers []handler[T]
}

func (s *signal[T]) connect(fn func(p *property.Property, v T)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return &Subscription{cancel: func() { s.disconnect(id) }}
}

func (s *signal[T]) disconnect(id uint64) {
	s.handlers = slices.DeleteFunc(s.handlers, func(h handler[T]) bool { return h.id == id })
}

func (s *signal[T]) connected(id uint64) bool {
	return slices.ContainsFunc(s.handlers, func(h handler[T]) bool { return h.id == id })
}

// emit calls every handler connected when emission starts, skipping those
// disconnected by an earlier handler.
func (s *signal[T]) emit(p *property.Property, v T) {
	for _, h := range slices.Clone(s.handlers) {
		if s.connected(h.id) {
			h.fn(p, v)
		}
	}
}
