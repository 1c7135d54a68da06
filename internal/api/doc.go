// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package api exposes the HTTP surface of Livetrack:
//
//   - ingest endpoints, the transport collaborator's way into the
//     sync core (POST /api/v1/ingest/{messages,tracks,subjects})
//   - read endpoints over the materialized collections
//     (GET /api/v1/messages, /api/v1/tracks/{subjectID}, ...)
//   - the websocket upgrade for live view clients (GET /api/v1/ws)
//   - /metrics and /api/v1/health
//
// Ingest accepts either a single record or an array per request; both
// normalize to a batch before entering the core, which is where the
// transport polymorphism of the feeds ends.
//
// Routing uses Chi with go-chi/cors and go-chi/httprate middleware.
package api
