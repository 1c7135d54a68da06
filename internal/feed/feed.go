// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

// Package feed provides a synthetic development feed.
//
// With no real transport attached, the generator simulates a handful
// of athletes walking outward from a base coordinate, emitting
// periodic GPS pings and occasional messages of rotating content
// kinds. It exists so the map and timeline views have live data to
// render during development; production deployments leave it
// disabled.
package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/livetrack-io/livetrack/internal/config"
	"github.com/livetrack-io/livetrack/internal/logging"
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/store"
)

// sampleTexts rotate through the synthetic messages.
var sampleTexts = []string{
	"hi there!",
	"made it to the ridge",
	"taking a break",
	"weather turning, moving on",
}

// contentKinds rotate so every media kind shows up in the views.
var contentKinds = []models.ContentKind{
	models.ContentText,
	models.ContentImage,
	models.ContentAudio,
	models.ContentVideo,
}

// Generator feeds synthetic batches into the core at a paced rate.
// It implements suture.Service.
type Generator struct {
	core *store.Core
	cfg  config.FeedConfig
}

// NewGenerator creates a generator for the configured subject count.
func NewGenerator(core *store.Core, cfg config.FeedConfig) *Generator {
	return &Generator{core: core, cfg: cfg}
}

// Serve seeds the subject profiles, then emits one track batch (and
// every few ticks a message) per paced tick until the context is
// canceled.
func (g *Generator) Serve(ctx context.Context) error {
	subjects := g.seedSubjects()
	logging.Info().Int("subjects", len(subjects)).Msg("dummy feed started")

	limiter := rate.NewLimiter(rate.Limit(g.cfg.RatePerSecond), 1)
	tick := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		tick++
		g.emitTracks(subjects, tick)
		if tick%3 == 0 {
			g.emitMessage(subjects, tick)
		}
	}
}

// seedSubjects publishes one profile per synthetic athlete and
// returns their IDs.
func (g *Generator) seedSubjects() []string {
	profiles := make([]models.EntityProfile, g.cfg.Subjects)
	ids := make([]string, g.cfg.Subjects)
	for i := range profiles {
		id := uuid.NewString()
		ids[i] = id
		profiles[i] = models.EntityProfile{
			ID:          id,
			DisplayName: fmt.Sprintf("Athlete %d", i+1),
			FirstName:   fmt.Sprintf("Athlete%d", i+1),
		}
	}
	g.core.EntityFeed.ReceiveBatch(profiles)
	return ids
}

// emitTracks sends two fresh samples per subject, wandering eastward
// with some latitude jitter, the same shape the original dev feed
// produced.
func (g *Generator) emitTracks(subjects []string, tick int) {
	now := time.Now().UTC()
	batch := make([]models.TrackUpdate, len(subjects))
	for i, id := range subjects {
		lon := float64(tick) / 100
		batch[i] = models.TrackUpdate{
			SubjectID: id,
			Timestamps: []string{
				now.Add(-time.Second).Format(time.RFC3339),
				now.Format(time.RFC3339),
			},
			Coordinates: []models.Coordinate{
				{lon, rand.Float64() * 3},
				{lon, rand.Float64() * 4},
			},
		}
	}
	g.core.TrackFeed.ReceiveBatch(batch)
}

// emitMessage sends one message from a random subject, without a
// coordinate so enrichment infers one from the track.
func (g *Generator) emitMessage(subjects []string, tick int) {
	subject := subjects[rand.IntN(len(subjects))]
	raw := models.RawMessage{
		ID:        uuid.NewString(),
		SubjectID: subject,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Text:      sampleTexts[tick/3%len(sampleTexts)],
	}

	switch contentKinds[tick/3%len(contentKinds)] {
	case models.ContentImage:
		raw.ImageURLs = map[string]string{"720": "https://example.invalid/img-720.jpg"}
	case models.ContentAudio:
		raw.AudioURLs = map[string]string{"default": "https://example.invalid/clip.ogg"}
	case models.ContentVideo:
		raw.VideoURLs = map[string]string{"720": "https://example.invalid/clip-720.mp4"}
	case models.ContentText:
	}

	g.core.MessageFeed.Receive(raw)
}

// String implements fmt.Stringer for supervisor logging.
func (g *Generator) String() string {
	return "dummy-feed"
}
