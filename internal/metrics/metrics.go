// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics

	BatchesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livetrack_batches_ingested_total",
			Help: "Total number of raw batches ingested per entity kind",
		},
		[]string{"kind"},
	)

	RecordsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livetrack_records_ingested_total",
			Help: "Total number of raw records ingested per entity kind",
		},
		[]string{"kind"},
	)

	MessageStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livetrack_message_store_size",
			Help: "Number of messages currently held by the message store",
		},
	)

	TrackPointsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "livetrack_track_points_total",
			Help: "Total number of track samples appended",
		},
	)

	SubjectsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livetrack_subjects_tracked",
			Help: "Number of subjects with at least one track sample",
		},
	)

	// Enrichment metrics

	Enrichment = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livetrack_enrichment_total",
			Help: "Enrichment outcomes per derived field",
		},
		[]string{"field", "outcome"}, // field: profile|location, outcome: hit|miss
	)

	// HTTP metrics

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livetrack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "livetrack_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Delivery metrics

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "livetrack_websocket_clients",
			Help: "Number of currently connected view clients",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livetrack_events_published_total",
			Help: "Total number of event envelopes published on the bus",
		},
		[]string{"topic"},
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEnrichment records one enrichment attempt outcome.
func RecordEnrichment(field string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	Enrichment.WithLabelValues(field, outcome).Inc()
}
