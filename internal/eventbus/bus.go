// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package eventbus

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/livetrack-io/livetrack/internal/metrics"
)

// Topics, one per entity kind.
const (
	TopicMessages = "messages.new"
	TopicTracks   = "tracks.new"
	TopicEntities = "entities.new"
)

// Event is the envelope published on the bus and forwarded verbatim
// to websocket view clients.
type Event struct {
	// Type is the view-facing event name: newMessages, newTracks or
	// newEntities.
	Type string `json:"type"`

	// Data is the JSON-encoded batch of newly processed records.
	Data json.RawMessage `json:"data"`
}

// eventTypeForTopic maps bus topics to view-facing event names.
var eventTypeForTopic = map[string]string{
	TopicMessages: "newMessages",
	TopicTracks:   "newTracks",
	TopicEntities: "newEntities",
}

// Bus is an in-process pub/sub for event envelopes.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// New creates a bus. The output buffer absorbs short bursts; a slow
// subscriber eventually backpressures its own channel only.
func New(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 256,
		}, logger),
	}
}

// Publish wraps the batch in an Event envelope and publishes it on
// the topic.
func (b *Bus) Publish(topic string, batch any) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch for %s: %w", topic, err)
	}

	evt := Event{Type: eventTypeForTopic[topic], Data: data}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal envelope for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", evt.Type)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()
	return nil
}

// Subscribe returns the topic's message channel. Messages must be
// Acked (or Nacked) by the consumer.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus down; pending subscriber channels are closed.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// DecodeEvent unmarshals an envelope from a bus message payload.
func DecodeEvent(msg *message.Message) (Event, error) {
	var evt Event
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return Event{}, fmt.Errorf("decode event envelope: %w", err)
	}
	return evt, nil
}
