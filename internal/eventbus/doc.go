// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package eventbus carries the sync core's "new data" events to view
// delivery over an in-process Watermill Go-channel pub/sub.
//
// The stores' own emission stays a synchronous fan-out; the Bridge is
// just one of those subscribers. It wraps each emitted batch in a
// JSON envelope and publishes it on a topic per entity kind, so the
// websocket hub (and any future consumer) processes view updates on
// its own task instead of inside the ingestion call path.
package eventbus
