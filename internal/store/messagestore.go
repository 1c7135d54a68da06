// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"sort"
	"sync"

	"github.com/livetrack-io/livetrack/internal/metrics"
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/stream"
)

// MessageStore maintains the inversely time-sorted message sequence:
// newest first, sorted at all times, one record per message ID.
//
// Ingesting an ID already present replaces the prior record and moves
// it to the position its (possibly changed) timestamp sorts to. The
// historical always-insert behavior is deliberately not implemented;
// upsert is the correct semantics for a live-editable feed.
type MessageStore struct {
	mu       sync.RWMutex
	messages []models.Message

	enricher *Enricher
	events   *stream.Stream[models.Message]
}

// NewMessageStore creates an empty message store. The enricher may be
// nil, in which case messages are never enriched.
func NewMessageStore(enricher *Enricher) *MessageStore {
	return &MessageStore{
		enricher: enricher,
		events:   stream.New[models.Message](),
	}
}

// OnNew registers a handler for the "new messages" event and returns
// its unsubscribe function. The handler receives exactly the batch of
// newly processed records in arrival order; that sub-batch is NOT
// necessarily sorted among itself, only the backing store is.
func (s *MessageStore) OnNew(h stream.Handler[models.Message]) (unsubscribe func()) {
	return s.events.Subscribe(h)
}

// Ingest normalizes and merges a batch of raw messages, returning the
// newly processed records in arrival order.
//
// Malformed records are tolerated: a missing field yields a partially
// populated message and never blocks the rest of the batch. Ingest
// does not fail.
func (s *MessageStore) Ingest(batch ...models.RawMessage) []models.Message {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	processed := make([]models.Message, 0, len(batch))
	for i := range batch {
		msg := Normalize(batch[i])

		// Enrichment runs only when the feed supplied no location;
		// a feed-supplied coordinate is always authoritative.
		if !msg.HasCoordinates() && s.enricher != nil {
			s.enricher.Enrich(&msg)
		}

		s.upsertLocked(msg)
		processed = append(processed, msg)
	}
	size := len(s.messages)
	s.mu.Unlock()

	metrics.BatchesIngested.WithLabelValues("messages").Inc()
	metrics.RecordsIngested.WithLabelValues("messages").Add(float64(len(batch)))
	metrics.MessageStoreSize.Set(float64(size))

	// Emit after the mutation completes and outside the lock, so the
	// store is consistent when handlers read it. Handlers must still
	// not call back into Ingest from the callback.
	s.events.ReceiveBatch(processed)
	return processed
}

// upsertLocked removes any prior record with the same ID, then splices
// the message in at its sorted position. Must be called with mu held.
func (s *MessageStore) upsertLocked(msg models.Message) {
	if msg.ID != "" {
		if i := s.indexOfLocked(msg.ID); i >= 0 {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
		}
	}

	at := s.insertionPointLocked(msg)
	s.messages = append(s.messages, models.Message{})
	copy(s.messages[at+1:], s.messages[at:])
	s.messages[at] = msg
}

// insertionPointLocked binary-searches the descending sequence for
// where msg sorts to. Ties on timestamp land after existing equals;
// order among equal timestamps is not part of the contract.
func (s *MessageStore) insertionPointLocked(msg models.Message) int {
	return sort.Search(len(s.messages), func(i int) bool {
		return s.messages[i].Timestamp.Before(msg.Timestamp)
	})
}

// indexOfLocked returns the position of the record with the given ID,
// or -1. Must be called with mu held.
func (s *MessageStore) indexOfLocked(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Messages returns a copy of the full sorted sequence, newest first.
func (s *MessageStore) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages held.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Get returns the message with the given ID.
func (s *MessageStore) Get(id string) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfLocked(id); i >= 0 {
		return s.messages[i], true
	}
	return models.Message{}, false
}
