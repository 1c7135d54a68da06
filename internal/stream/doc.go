// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package stream provides the minimal typed event source that sits
// between the transport collaborator and the stores.
//
// One Stream instance exists per entity kind (messages, tracks,
// profiles). A stream accepts a single raw item or a batch, always
// normalizes to a slice, and synchronously fans the whole batch out
// to every subscriber. There is no buffering and no backpressure:
// a batch received while no subscriber is attached is dropped.
//
// Streams never validate item shape. Malformed items propagate to
// subscribers as-is; tolerating them is the normalizer's job.
package stream
