// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"sort"
	"sync"
	"time"

	"github.com/livetrack-io/livetrack/internal/metrics"
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/stream"
)

// TrackStore maintains, per subject, an ever-growing ordered sequence
// of GPS samples.
//
// The store only appends. Batches are trusted to be time-ordered and
// duplicate-free within themselves; that is the transport layer's
// guarantee, not something the store validates. The tradeoff buys
// append speed for the periodic-ping feed this store is built for -
// it is not suitable for arbitrary out-of-order track edits.
type TrackStore struct {
	mu     sync.RWMutex
	tracks map[string]*models.Track

	events *stream.Stream[models.TrackUpdate]
}

// NewTrackStore creates an empty track store.
func NewTrackStore() *TrackStore {
	return &TrackStore{
		tracks: make(map[string]*models.Track),
		events: stream.New[models.TrackUpdate](),
	}
}

// OnNew registers a handler for the "new tracks" event and returns
// its unsubscribe function. The handler receives the raw batch,
// pass-through and enrichment-free.
func (s *TrackStore) OnNew(h stream.Handler[models.TrackUpdate]) (unsubscribe func()) {
	return s.events.Subscribe(h)
}

// Ingest appends a batch of track updates in the order given.
func (s *TrackStore) Ingest(batch ...models.TrackUpdate) {
	if len(batch) == 0 {
		return
	}

	s.mu.Lock()
	appended := 0
	for i := range batch {
		appended += s.appendLocked(&batch[i])
	}
	subjects := len(s.tracks)
	s.mu.Unlock()

	metrics.BatchesIngested.WithLabelValues("tracks").Inc()
	metrics.RecordsIngested.WithLabelValues("tracks").Add(float64(len(batch)))
	metrics.TrackPointsAppended.Add(float64(appended))
	metrics.SubjectsTracked.Set(float64(subjects))

	s.events.ReceiveBatch(batch)
}

// appendLocked appends one update verbatim: no re-sort, no de-dup.
// A timestamp that fails to parse appends as the zero time so the
// parallel sequences stay aligned with the coordinates delivered.
// Must be called with mu held.
func (s *TrackStore) appendLocked(u *models.TrackUpdate) int {
	track, ok := s.tracks[u.SubjectID]
	if !ok {
		track = &models.Track{SubjectID: u.SubjectID}
		s.tracks[u.SubjectID] = track
	}

	for _, raw := range u.Timestamps {
		ts, _ := ParseTimestamp(raw)
		track.Timestamps = append(track.Timestamps, ts)
	}
	for _, c := range u.Coordinates {
		track.Coordinates = append(track.Coordinates, c.Clone())
	}
	return len(u.Timestamps)
}

// Track returns a deep copy of the subject's track.
func (s *TrackStore) Track(subjectID string) (*models.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	track, ok := s.tracks[subjectID]
	if !ok {
		return nil, false
	}
	return track.Clone(), true
}

// Subjects returns the IDs of all subjects with a track, sorted.
func (s *TrackStore) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tracks))
	for id := range s.tracks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LocationAt returns the coordinate of the subject's latest sample
// strictly before t.
//
// The miss cases are explicit: an unknown subject, a zero t, or a t
// at or before every sample all return false. Never an out-of-range
// access - a message predating the whole track simply has no
// inferable location.
func (s *TrackStore) LocationAt(subjectID string, t time.Time) (models.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	track, ok := s.tracks[subjectID]
	if !ok || track.Len() == 0 || t.IsZero() {
		return nil, false
	}

	// First sample not before t; the one before it is the latest
	// sample strictly earlier than t.
	idx := sort.Search(len(track.Timestamps), func(i int) bool {
		return !track.Timestamps[i].Before(t)
	})
	if idx == 0 {
		return nil, false
	}
	if idx-1 >= len(track.Coordinates) {
		// Feed delivered more timestamps than coordinates; treat the
		// uncovered tail as having no location.
		return nil, false
	}
	return track.Coordinates[idx-1].Clone(), true
}
