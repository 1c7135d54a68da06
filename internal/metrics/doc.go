// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

/*
Package metrics provides Prometheus metrics collection and export.

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8172/metrics

# Available Metrics

Ingestion:
  - livetrack_batches_ingested_total: Raw batches ingested (counter)
    Labels: kind (messages, tracks, entities)
  - livetrack_records_ingested_total: Raw records ingested (counter)
    Labels: kind
  - livetrack_message_store_size: Messages currently held (gauge)
  - livetrack_track_points_total: Track samples appended (counter)
  - livetrack_subjects_tracked: Subjects with at least one sample (gauge)

Enrichment:
  - livetrack_enrichment_total: Enrichment outcomes (counter)
    Labels: field (profile, location), outcome (hit, miss)

HTTP and delivery:
  - livetrack_http_requests_total: HTTP requests (counter)
    Labels: method, endpoint, status
  - livetrack_http_request_duration_seconds: Request latency (histogram)
  - livetrack_websocket_clients: Connected view clients (gauge)
  - livetrack_events_published_total: Event-bus envelopes published (counter)
    Labels: topic
*/
package metrics
