// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"github.com/livetrack-io/livetrack/internal/metrics"
	"github.com/livetrack-io/livetrack/internal/models"
)

// Enricher cross-references a normalized message against the entity
// and track stores when the feed supplied no location of its own.
//
// Enrichment is best-effort and depends on profile and track data
// having already arrived; nothing synchronizes the feeds. A miss
// leaves the field unset - messages are never revisited when the
// missing data shows up later.
type Enricher struct {
	entities *EntityStore
	tracks   *TrackStore
}

// NewEnricher creates an enricher reading from the given stores.
func NewEnricher(entities *EntityStore, tracks *TrackStore) *Enricher {
	return &Enricher{entities: entities, tracks: tracks}
}

// Enrich attaches the subject's profile and infers the message's
// location from the subject's track (latest sample strictly before
// the message time). Both lookups degrade gracefully: a miss leaves
// the field unset, and downstream renderers skip what is absent.
func (e *Enricher) Enrich(msg *models.Message) {
	if profile, ok := e.entities.Get(msg.SubjectID); ok {
		msg.Subject = profile
		metrics.RecordEnrichment("profile", true)
	} else {
		metrics.RecordEnrichment("profile", false)
	}

	if coord, ok := e.tracks.LocationAt(msg.SubjectID, msg.Timestamp); ok {
		msg.Coordinates = coord
		metrics.RecordEnrichment("location", true)
	} else {
		metrics.RecordEnrichment("location", false)
	}
}
