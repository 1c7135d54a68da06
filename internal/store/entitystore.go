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

// EntityStore maintains the latest-known profile per subject ID.
//
// Semantics are last-write-wins: every sighting of an ID overwrites
// the stored profile wholesale. No field-level merge, no history.
type EntityStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.EntityProfile

	events *stream.Stream[models.EntityProfile]
}

// NewEntityStore creates an empty entity store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		profiles: make(map[string]*models.EntityProfile),
		events:   stream.New[models.EntityProfile](),
	}
}

// OnNew registers a handler for the "new entities" event and returns
// its unsubscribe function. The handler receives the raw batch.
func (s *EntityStore) OnNew(h stream.Handler[models.EntityProfile]) (unsubscribe func()) {
	return s.events.Subscribe(h)
}

// Ingest stores a batch of profiles, overwriting any prior profile
// with the same ID.
func (s *EntityStore) Ingest(batch ...models.EntityProfile) {
	if len(batch) == 0 {
		return
	}

	s.mu.Lock()
	for i := range batch {
		p := batch[i]
		s.profiles[p.ID] = &p
	}
	s.mu.Unlock()

	metrics.BatchesIngested.WithLabelValues("entities").Inc()
	metrics.RecordsIngested.WithLabelValues("entities").Add(float64(len(batch)))

	s.events.ReceiveBatch(batch)
}

// Get returns the stored profile for the subject.
//
// The returned pointer is shared with messages enriched from it and
// must be treated as read-only. A later overwrite of the ID replaces
// the stored pointer; holders of the old one keep the stale profile.
func (s *EntityStore) Get(id string) (*models.EntityProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// Profiles returns a copy of all stored profiles, sorted by ID.
func (s *EntityStore) Profiles() []models.EntityProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EntityProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of stored profiles.
func (s *EntityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
