// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/livetrack-io/livetrack/internal/logging"
)

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data}); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message}); err != nil {
		logging.Error().Err(err).Msg("failed to encode error response")
	}
}
