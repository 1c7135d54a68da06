// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package websocket

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/livetrack-io/livetrack/internal/eventbus"
	"github.com/livetrack-io/livetrack/internal/logging"
)

// BusSubscriber consumes the event bus and forwards each envelope to
// the hub for broadcast. It implements suture.Service so the
// supervisor restarts it on failure.
type BusSubscriber struct {
	bus *eventbus.Bus
	hub *Hub
}

// NewBusSubscriber creates a subscriber for all three entity topics.
func NewBusSubscriber(bus *eventbus.Bus, hub *Hub) *BusSubscriber {
	return &BusSubscriber{bus: bus, hub: hub}
}

// Serve subscribes to the topics and forwards until the context is
// canceled.
func (s *BusSubscriber) Serve(ctx context.Context) error {
	topics := []string{
		eventbus.TopicMessages,
		eventbus.TopicTracks,
		eventbus.TopicEntities,
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		ch, err := s.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		wg.Add(1)
		go func(topic string, ch <-chan *message.Message) {
			defer wg.Done()
			s.forward(topic, ch)
		}(topic, ch)
	}

	// Subscriber channels close when the context is canceled.
	wg.Wait()
	return ctx.Err()
}

// forward drains one topic channel into the hub.
func (s *BusSubscriber) forward(topic string, ch <-chan *message.Message) {
	for msg := range ch {
		evt, err := eventbus.DecodeEvent(msg)
		if err != nil {
			// A malformed envelope is unrecoverable; drop it rather
			// than redeliver forever.
			logging.Err(err).Str("topic", topic).Msg("dropping undecodable event")
			msg.Ack()
			continue
		}
		s.hub.Broadcast(evt.Type, evt.Data)
		msg.Ack()
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *BusSubscriber) String() string {
	return "websocket-bus-subscriber"
}
