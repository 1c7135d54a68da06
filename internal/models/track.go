// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package models

import "time"

// TrackUpdate is one increment of a subject's track as delivered by
// the transport collaborator, typically a handful of GPS pings.
//
// Timestamps and Coordinates are parallel sequences and are trusted
// to be time-ordered and duplicate-free within the update. The track
// store appends them verbatim; it never re-sorts or de-duplicates.
// That trust boundary belongs to the transport layer.
type TrackUpdate struct {
	SubjectID   string       `json:"user_id"`
	Timestamps  []string     `json:"timestamps"`
	Coordinates []Coordinate `json:"coordinates"`
}

// Track is the materialized, ever-growing track of one subject:
// parallel timestamp and coordinate sequences in arrival order.
type Track struct {
	SubjectID   string       `json:"user_id"`
	Timestamps  []time.Time  `json:"timestamps"`
	Coordinates []Coordinate `json:"coordinates"`
}

// Len returns the number of samples in the track.
func (t *Track) Len() int {
	return len(t.Timestamps)
}

// Clone returns a deep copy safe to hand to view collaborators.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	out := &Track{
		SubjectID:   t.SubjectID,
		Timestamps:  make([]time.Time, len(t.Timestamps)),
		Coordinates: make([]Coordinate, len(t.Coordinates)),
	}
	copy(out.Timestamps, t.Timestamps)
	for i, c := range t.Coordinates {
		out.Coordinates[i] = c.Clone()
	}
	return out
}
