// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"time"

	"github.com/livetrack-io/livetrack/internal/models"
)

// timestampFormats are tried in order when parsing feed timestamps.
// The live feeds have historically delivered full RFC 3339 instants,
// naive date-times, bare dates and bare years.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006",
}

// ParseTimestamp parses a feed timestamp. The zero time and false are
// returned for an empty or unparseable value; callers treat that as
// "no timestamp" rather than an error.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ClassifyContent derives the content kind from the media markers.
// Precedence is fixed: video over audio over image, defaulting to
// text. A record carrying several markers classifies as the highest.
func ClassifyContent(raw *models.RawMessage) models.ContentKind {
	switch {
	case len(raw.VideoURLs) > 0:
		return models.ContentVideo
	case len(raw.AudioURLs) > 0:
		return models.ContentAudio
	case len(raw.ImageURLs) > 0:
		return models.ContentImage
	default:
		return models.ContentText
	}
}

// Normalize turns a raw message into its display-ready form.
//
// It is a pure function: the input is copied, never mutated, and no
// shared state is touched. Missing fields produce a partially
// populated message, not a failure - the live feed is best-effort.
func Normalize(raw models.RawMessage) models.Message {
	msg := models.Message{
		ID:          raw.ID,
		SubjectID:   raw.SubjectID,
		Text:        raw.Text,
		Coordinates: raw.Coordinates.Clone(),
		ImageURLs:   raw.ImageURLs,
		AudioURLs:   raw.AudioURLs,
		VideoURLs:   raw.VideoURLs,
	}

	if ts, ok := ParseTimestamp(raw.Timestamp); ok {
		// Canonical sort key, mirrored to the display-start alias
		// expected by timeline-rendering consumers.
		msg.Timestamp = ts
		msg.Start = ts
	}

	msg.Kind = ClassifyContent(&raw)
	msg.ClassName = "msgtype-" + string(msg.Kind)

	// Pre-rendered content from the feed is never trusted; views
	// recompute rendering from the structured fields.
	msg.Content = ""

	return msg
}
