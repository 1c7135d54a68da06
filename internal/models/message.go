// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package models

import "time"

// ContentKind classifies what a message carries for icon styling and
// overlay rendering in the views.
type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
	ContentAudio ContentKind = "audio"
	ContentVideo ContentKind = "video"
)

// RawMessage is the external shape of a message as delivered by the
// transport collaborator. Fields are best-effort: the feed may omit
// any of them and the normalizer tolerates that silently.
//
// The *_versions maps carry media URLs keyed by resolution ("360",
// "720", "1080"); their presence, not their content, drives content
// kind classification.
type RawMessage struct {
	ID          string            `json:"id"`
	SubjectID   string            `json:"user_id"`
	Timestamp   string            `json:"timestamp,omitempty"`
	Text        string            `json:"text,omitempty"`
	Coordinates Coordinate        `json:"coordinates,omitempty"`
	ImageURLs   map[string]string `json:"image_versions,omitempty"`
	AudioURLs   map[string]string `json:"audio_versions,omitempty"`
	VideoURLs   map[string]string `json:"video_versions,omitempty"`

	// Content is a pre-rendered fragment some feeds attach. It is
	// always blanked during normalization; views recompute rendering.
	Content string `json:"content,omitempty"`
}

// Message is the normalized, store-owned form of a message.
//
// Timestamp is the primary sort key of the message store (newest
// first). Start mirrors it for timeline-rendering consumers that
// expect a display-start field.
type Message struct {
	ID        string      `json:"id"`
	SubjectID string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Start     time.Time   `json:"start"`
	Kind      ContentKind `json:"msgtype"`
	ClassName string      `json:"className"`
	Text      string      `json:"text,omitempty"`

	// Coordinates is either feed-supplied or back-filled from the
	// subject's track during enrichment. Nil when both are missing;
	// renderers then skip map-marker placement.
	Coordinates Coordinate `json:"coordinates,omitempty"`

	ImageURLs map[string]string `json:"image_versions,omitempty"`
	AudioURLs map[string]string `json:"audio_versions,omitempty"`
	VideoURLs map[string]string `json:"video_versions,omitempty"`

	Content string `json:"content"`

	// Subject is the profile attached at enrichment time. It is a
	// reference, not a copy: a later profile overwrite is not
	// propagated to messages already enriched.
	Subject *EntityProfile `json:"subject,omitempty"`
}

// HasCoordinates reports whether the message can be placed on the map.
func (m *Message) HasCoordinates() bool {
	return m.Coordinates.Valid()
}
