// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package models

// EntityProfile is the latest-known profile of a subject (the athlete
// a message, track or profile belongs to).
//
// Lifecycle is last-write-wins: a profile is created on first sighting
// and overwritten wholesale on every later sighting of the same ID.
// No field-level merge, no history.
type EntityProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	AvatarURL   string `json:"avatar,omitempty"`

	// Attributes carries feed-specific profile fields the core does
	// not interpret (team, bib number, sponsor links).
	Attributes map[string]any `json:"attributes,omitempty"`
}
