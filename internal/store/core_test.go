// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"testing"

	"github.com/livetrack-io/livetrack/internal/models"
)

func TestCoreFeedsWiredToStores(t *testing.T) {
	c := NewCore()

	c.EntityFeed.Receive(models.EntityProfile{ID: "u1", DisplayName: "Alice"})
	c.TrackFeed.Receive(models.TrackUpdate{
		SubjectID:   "u1",
		Timestamps:  []string{"2020-01-01T10:00:00Z"},
		Coordinates: []models.Coordinate{{7.0, 45.0}},
	})
	c.MessageFeed.Receive(models.RawMessage{
		ID: "m1", SubjectID: "u1", Timestamp: "2020-01-01T12:00:00Z",
	})

	if c.Entities.Len() != 1 {
		t.Errorf("entity feed not wired: %d profiles", c.Entities.Len())
	}
	if _, ok := c.Tracks.Track("u1"); !ok {
		t.Error("track feed not wired")
	}
	if c.Messages.Len() != 1 {
		t.Errorf("message feed not wired: %d messages", c.Messages.Len())
	}
}

func TestCoreCrossFeedEnrichment(t *testing.T) {
	c := NewCore()

	// Profile and track arrive first; the message then enriches off
	// both stores through the shared enricher.
	c.EntityFeed.Receive(models.EntityProfile{ID: "u1", DisplayName: "Alice"})
	c.TrackFeed.Receive(models.TrackUpdate{
		SubjectID: "u1",
		Timestamps: []string{
			"2020-01-01T10:00:00Z",
			"2020-01-01T11:00:00Z",
		},
		Coordinates: []models.Coordinate{{7.0, 45.0}, {7.1, 45.1}},
	})

	var enriched []models.Message
	c.Messages.OnNew(func(batch []models.Message) { enriched = batch })

	c.MessageFeed.Receive(models.RawMessage{
		ID: "m1", SubjectID: "u1", Timestamp: "2020-01-01T10:30:00Z",
	})

	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched message, got %d", len(enriched))
	}
	msg := enriched[0]
	if msg.Subject == nil || msg.Subject.DisplayName != "Alice" {
		t.Errorf("profile not attached through core wiring: %+v", msg.Subject)
	}
	if !msg.HasCoordinates() || msg.Coordinates[0] != 7.0 {
		t.Errorf("location not inferred through core wiring: %v", msg.Coordinates)
	}
}

func TestCoreBatchDelivery(t *testing.T) {
	c := NewCore()

	c.MessageFeed.ReceiveBatch([]models.RawMessage{
		{ID: "1", Timestamp: "2020-01-02"},
		{ID: "2", Timestamp: "2020-01-01"},
	})

	msgs := c.Messages.Messages()
	if len(msgs) != 2 || msgs[0].ID != "1" || msgs[1].ID != "2" {
		t.Errorf("batch not ingested in sorted order: %+v", msgs)
	}
}
