// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package eventbus

import (
	"github.com/livetrack-io/livetrack/internal/logging"
	"github.com/livetrack-io/livetrack/internal/models"
	"github.com/livetrack-io/livetrack/internal/store"
)

// Bridge subscribes to the core stores' "new data" events and
// republishes each batch on the bus.
//
// A publish failure is logged and dropped, never propagated into the
// store's ingestion path: view delivery is best-effort and must not
// block or fail the sync core.
type Bridge struct {
	core *store.Core
	bus  *Bus

	unsubs []func()
}

// NewBridge creates a bridge between core and bus. Call Start to
// begin forwarding.
func NewBridge(core *store.Core, bus *Bus) *Bridge {
	return &Bridge{core: core, bus: bus}
}

// Start subscribes to all three stores. Safe to call once.
func (b *Bridge) Start() {
	b.unsubs = append(b.unsubs,
		b.core.Messages.OnNew(func(batch []models.Message) {
			b.forward(TopicMessages, batch)
		}),
		b.core.Tracks.OnNew(func(batch []models.TrackUpdate) {
			b.forward(TopicTracks, batch)
		}),
		b.core.Entities.OnNew(func(batch []models.EntityProfile) {
			b.forward(TopicEntities, batch)
		}),
	)
}

// Stop unsubscribes from the stores. The bus itself is owned and
// closed by the composition root.
func (b *Bridge) Stop() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

func (b *Bridge) forward(topic string, batch any) {
	if err := b.bus.Publish(topic, batch); err != nil {
		logging.Err(err).Str("topic", topic).Msg("dropping event batch")
	}
}
