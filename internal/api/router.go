// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/livetrack-io/livetrack/internal/config"
	"github.com/livetrack-io/livetrack/internal/metrics"
)

// NewRouter builds the full route tree.
func NewRouter(handler *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	// CORS must be global so OPTIONS preflight is handled everywhere.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(prometheusMetrics)

		r.Get("/health", handler.Health)
		r.Get("/ws", handler.WebSocket)

		r.Get("/messages", handler.Messages)
		r.Get("/tracks", handler.TrackSubjects)
		r.Get("/tracks/{subjectID}", handler.Track)
		r.Get("/subjects", handler.Subjects)

		r.Route("/ingest", func(r chi.Router) {
			if cfg.Ingest.RateLimit > 0 {
				r.Use(httprate.LimitByIP(cfg.Ingest.RateLimit, time.Minute))
			}
			r.Post("/messages", handler.IngestMessages)
			r.Post("/tracks", handler.IngestTracks)
			r.Post("/subjects", handler.IngestSubjects)
		})
	})

	return r
}

// prometheusMetrics records request count and latency per route
// pattern. The pattern, not the raw path, keeps label cardinality
// bounded.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		metrics.RecordHTTPRequest(r.Method, endpoint, ww.Status(), time.Since(start))
	})
}
