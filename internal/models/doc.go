// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package models defines the core data types shared across Livetrack.
//
// Three entity kinds flow through the system, one per live feed:
//
//   - Message: a chat-like post from a subject, time-sorted for the
//     timeline view. Arrives as RawMessage and is normalized by the
//     message store before anything else sees it.
//   - Track: an append-only sequence of GPS samples per subject,
//     rendered as a line on the map view. Arrives as TrackUpdate.
//   - EntityProfile: the latest-known profile of a subject,
//     last-write-wins.
//
// All types here are plain data. Mutation rules (sorting, appending,
// overwriting) live in internal/store; view collaborators receive
// copies and never mutate store-owned collections.
package models
