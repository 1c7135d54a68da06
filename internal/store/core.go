// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/stream"
)

// Core owns the three stores and the raw input streams feeding them.
//
// It is constructed once by the composition root and handed to
// collaborators by reference: the transport side pushes raw batches
// into the feeds, view collaborators subscribe to the stores' OnNew
// events and read the materialized collections. Nothing else mutates
// store state.
//
// The stores are mutually independent and each serializes its own
// ingestion, so the three feeds may be driven from different
// goroutines. Enrichment quality is best-effort: it reflects whatever
// profile and track data happened to arrive first.
type Core struct {
	Messages *MessageStore
	Tracks   *TrackStore
	Entities *EntityStore

	// Raw input feeds, one per entity kind. The transport
	// collaborator delivers into these; each is wired to its store.
	MessageFeed *stream.Stream[models.RawMessage]
	TrackFeed   *stream.Stream[models.TrackUpdate]
	EntityFeed  *stream.Stream[models.EntityProfile]
}

// NewCore wires up the stores, the enricher, and the input feeds.
func NewCore() *Core {
	entities := NewEntityStore()
	tracks := NewTrackStore()
	messages := NewMessageStore(NewEnricher(entities, tracks))

	c := &Core{
		Messages:    messages,
		Tracks:      tracks,
		Entities:    entities,
		MessageFeed: stream.New[models.RawMessage](),
		TrackFeed:   stream.New[models.TrackUpdate](),
		EntityFeed:  stream.New[models.EntityProfile](),
	}

	c.MessageFeed.Subscribe(func(batch []models.RawMessage) {
		messages.Ingest(batch...)
	})
	c.TrackFeed.Subscribe(func(batch []models.TrackUpdate) {
		tracks.Ingest(batch...)
	})
	c.EntityFeed.Subscribe(func(batch []models.EntityProfile) {
		entities.Ingest(batch...)
	})

	return c
}
