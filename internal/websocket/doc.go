// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package websocket delivers the sync core's "new data" events to
// connected view clients (map and timeline) in real time.
//
// The Hub owns the client set and broadcasts one JSON message per
// event envelope. Clients are write-mostly: the only inbound frames
// handled are pings. A client that cannot keep up with the broadcast
// rate is dropped rather than allowed to backpressure the hub.
//
// The BusSubscriber consumes event-bus topics and feeds the hub, so
// broadcasting runs on its own task, decoupled from store ingestion.
package websocket
