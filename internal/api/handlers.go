// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/livetrack-io/livetrack/internal/config"
	"github.com/livetrack-io/livetrack/internal/logging"
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/store"
	ws "github.com/livetrack-io/livetrack/internal/websocket"
)

// Handler holds the dependencies of all HTTP handlers. Everything is
// injected by the composition root; handlers hold read references and
// feed only the core's input streams.
type Handler struct {
	core      *store.Core
	hub       *ws.Hub
	cfg       *config.Config
	validate  *validator.Validate
	startTime time.Time
}

// NewHandler creates a handler. hub may be nil, in which case the
// websocket endpoint responds 503.
func NewHandler(core *store.Core, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		core:      core,
		hub:       hub,
		cfg:       cfg,
		validate:  validator.New(),
		startTime: time.Now(),
	}
}

// decodeBatch reads a request body holding either a single record or
// an array and always returns a batch, mirroring the feeds' historic
// "one or more" delivery shape.
func decodeBatch[T any](r *http.Request, maxBytes int64) ([]T, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBytes))
	if err != nil {
		return nil, err
	}

	var batch []T
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}

	var single T
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}

// IngestMessages accepts a message batch from the transport
// collaborator and feeds it into the core.
//
// Malformed records inside a well-formed body are NOT rejected; the
// normalizer tolerates them. Only an undecodable body or an oversized
// batch fails the request.
func (h *Handler) IngestMessages(w http.ResponseWriter, r *http.Request) {
	batch, err := decodeBatch[models.RawMessage](r, h.cfg.Ingest.MaxBodyBytes)
	if err != nil {
		respondError(w, http.StatusBadRequest, "request body is not a message or message array")
		return
	}
	if len(batch) > h.cfg.Ingest.MaxBatch {
		respondError(w, http.StatusRequestEntityTooLarge, "batch exceeds configured maximum")
		return
	}

	h.core.MessageFeed.ReceiveBatch(batch)
	respondJSON(w, http.StatusAccepted, map[string]int{"received": len(batch)})
}

// IngestTracks accepts a track update batch. Updates without a
// subject ID are skipped - a track sample that belongs to nobody is
// unusable - but never fail the rest of the batch.
func (h *Handler) IngestTracks(w http.ResponseWriter, r *http.Request) {
	batch, err := decodeBatch[models.TrackUpdate](r, h.cfg.Ingest.MaxBodyBytes)
	if err != nil {
		respondError(w, http.StatusBadRequest, "request body is not a track update or track update array")
		return
	}
	if len(batch) > h.cfg.Ingest.MaxBatch {
		respondError(w, http.StatusRequestEntityTooLarge, "batch exceeds configured maximum")
		return
	}

	accepted := batch[:0]
	for _, u := range batch {
		if err := h.validate.Var(u.SubjectID, "required"); err != nil {
			logging.Warn().Msg("skipping track update without subject id")
			continue
		}
		accepted = append(accepted, u)
	}

	h.core.TrackFeed.ReceiveBatch(accepted)
	respondJSON(w, http.StatusAccepted, map[string]int{"received": len(accepted)})
}

// IngestSubjects accepts a profile batch. Profiles without an ID are
// skipped; an ID is the upsert key and cannot be defaulted.
func (h *Handler) IngestSubjects(w http.ResponseWriter, r *http.Request) {
	batch, err := decodeBatch[models.EntityProfile](r, h.cfg.Ingest.MaxBodyBytes)
	if err != nil {
		respondError(w, http.StatusBadRequest, "request body is not a profile or profile array")
		return
	}
	if len(batch) > h.cfg.Ingest.MaxBatch {
		respondError(w, http.StatusRequestEntityTooLarge, "batch exceeds configured maximum")
		return
	}

	accepted := batch[:0]
	for _, p := range batch {
		if err := h.validate.Var(p.ID, "required"); err != nil {
			logging.Warn().Msg("skipping profile without id")
			continue
		}
		accepted = append(accepted, p)
	}

	h.core.EntityFeed.ReceiveBatch(accepted)
	respondJSON(w, http.StatusAccepted, map[string]int{"received": len(accepted)})
}

// Messages returns the sorted message sequence, newest first.
// Optional query parameters: after (RFC 3339 instant) and limit.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	messages := h.core.Messages.Messages()

	if raw := r.URL.Query().Get("after"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "after must be an RFC 3339 timestamp")
			return
		}
		// The sequence is newest first; everything past the first
		// non-qualifying record is older still.
		cut := len(messages)
		for i, m := range messages {
			if !m.Timestamp.After(after) {
				cut = i
				break
			}
		}
		messages = messages[:cut]
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if limit < len(messages) {
			messages = messages[:limit]
		}
	}

	respondJSON(w, http.StatusOK, messages)
}

// Track returns the materialized track of one subject.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	track, ok := h.core.Tracks.Track(subjectID)
	if !ok {
		respondError(w, http.StatusNotFound, "no track for subject")
		return
	}
	respondJSON(w, http.StatusOK, track)
}

// TrackSubjects returns the IDs of all subjects with a track.
func (h *Handler) TrackSubjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.core.Tracks.Subjects())
}

// Subjects returns all known subject profiles.
func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.core.Entities.Profiles())
}

// WebSocket upgrades the connection and registers the client with
// the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket service unavailable")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// checkWebSocketOrigin validates the Origin header against the
// configured CORS origins. Non-browser clients without an Origin
// header are allowed; they are not subject to CORS anyway.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.Server.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", origin).Msg("websocket connection rejected from unauthorized origin")
	return false
}

// Health reports liveness and basic store statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
		"messages":       h.core.Messages.Len(),
		"subjects":       h.core.Entities.Len(),
		"tracked":        len(h.core.Tracks.Subjects()),
		"ws_clients":     h.clientCount(),
	})
}

func (h *Handler) clientCount() int {
	if h.hub == nil {
		return 0
	}
	return h.hub.ClientCount()
}
