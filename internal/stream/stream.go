// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package stream

import "sync"

// Handler receives the full batch of a delivery, not one item at a
// time. Handlers run synchronously on the caller's goroutine and must
// not call back into Receive on the same stream.
type Handler[T any] func(batch []T)

// subscriber pairs a handler with its registration ID.
// DETERMINISM: subscribers are kept in a slice so fan-out always runs
// in subscription order, not map iteration order.
type subscriber[T any] struct {
	id      uint64
	handler Handler[T]
}

// Stream is a typed event source. The zero value is not usable; use New.
type Stream[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber[T]
}

// New creates an empty stream with no subscribers.
func New[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Unsubscribing twice is a no-op.
func (s *Stream[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, handler: h})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Receive accepts one raw item or several and delivers them as a
// single batch. A call with no items is dropped without notifying.
func (s *Stream[T]) Receive(items ...T) {
	s.ReceiveBatch(items)
}

// ReceiveBatch delivers an already-assembled batch to all subscribers,
// synchronously and in subscription order. With no subscribers the
// batch is silently dropped; there is no buffering.
func (s *Stream[T]) ReceiveBatch(batch []T) {
	if len(batch) == 0 {
		return
	}

	s.mu.RLock()
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	// Fan out outside the lock so a handler may unsubscribe itself.
	for _, sub := range subs {
		sub.handler(batch)
	}
}

// SubscriberCount returns the number of registered handlers.
func (s *Stream[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
