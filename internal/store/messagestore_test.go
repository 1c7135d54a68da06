// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"testing"
	"time"

	"github.com/livetrack-io/livetrack/internal/models"
)

// assertDescending fails unless the sequence is sorted newest first.
func assertDescending(t *testing.T, msgs []models.Message) {
	t.Helper()
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.After(msgs[i-1].Timestamp) {
			t.Fatalf("sort invariant violated at %d: %v after %v",
				i, msgs[i].Timestamp, msgs[i-1].Timestamp)
		}
	}
}

func TestIngestKeepsNewestFirst(t *testing.T) {
	s := NewMessageStore(nil)

	s.Ingest(
		models.RawMessage{ID: "1", Timestamp: "2020-01-02"},
		models.RawMessage{ID: "2", Timestamp: "2020-01-01"},
	)

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "1" || msgs[1].ID != "2" {
		t.Errorf("expected order [1 2], got [%s %s]", msgs[0].ID, msgs[1].ID)
	}
	assertDescending(t, msgs)
}

func TestIngestSortsArbitraryArrivalOrder(t *testing.T) {
	s := NewMessageStore(nil)

	// Oldest first, newest in the middle, batches interleaved.
	s.Ingest(
		models.RawMessage{ID: "a", Timestamp: "2020-03-01"},
		models.RawMessage{ID: "b", Timestamp: "2020-05-01"},
	)
	s.Ingest(models.RawMessage{ID: "c", Timestamp: "2020-04-01"})
	s.Ingest(models.RawMessage{ID: "d", Timestamp: "2020-01-01"})

	msgs := s.Messages()
	assertDescending(t, msgs)
	wantOrder := []string{"b", "c", "a", "d"}
	for i, id := range wantOrder {
		if msgs[i].ID != id {
			t.Fatalf("expected order %v, got position %d = %s", wantOrder, i, msgs[i].ID)
		}
	}
}

func TestIngestUpsertReplacesAndMoves(t *testing.T) {
	s := NewMessageStore(nil)

	s.Ingest(
		models.RawMessage{ID: "1", Timestamp: "2020-01-01", Text: "original"},
		models.RawMessage{ID: "2", Timestamp: "2020-01-15"},
	)

	// Edited message: same ID, newer timestamp. Must move to the head
	// and leave exactly one record for the ID.
	s.Ingest(models.RawMessage{ID: "1", Timestamp: "2020-02-01", Text: "edited"})

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected upsert to keep 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "1" || msgs[0].Text != "edited" {
		t.Errorf("expected edited record at head, got %+v", msgs[0])
	}
	assertDescending(t, msgs)
}

func TestIngestSameRecordTwiceIsIdempotent(t *testing.T) {
	s := NewMessageStore(nil)

	raw := models.RawMessage{ID: "1", Timestamp: "2020-01-01", Text: "hello"}
	s.Ingest(raw)
	first := s.Messages()

	s.Ingest(raw)
	second := s.Messages()

	if len(second) != 1 {
		t.Fatalf("expected 1 message after re-ingest, got %d", len(second))
	}
	if second[0].ID != first[0].ID || second[0].Text != first[0].Text ||
		!second[0].Timestamp.Equal(first[0].Timestamp) {
		t.Errorf("re-ingest changed the record: %+v vs %+v", second[0], first[0])
	}
}

func TestIngestZeroTimestampSortsToTail(t *testing.T) {
	s := NewMessageStore(nil)

	s.Ingest(
		models.RawMessage{ID: "dated", Timestamp: "2020-01-01"},
		models.RawMessage{ID: "undated"},
	)

	msgs := s.Messages()
	if msgs[len(msgs)-1].ID != "undated" {
		t.Errorf("expected undated message at tail, got %s", msgs[len(msgs)-1].ID)
	}
}

func TestIngestEmptyBatch(t *testing.T) {
	s := NewMessageStore(nil)

	fired := false
	s.OnNew(func([]models.Message) { fired = true })

	if got := s.Ingest(); got != nil {
		t.Errorf("expected nil result for empty batch, got %v", got)
	}
	if fired {
		t.Error("empty batch must not emit an event")
	}
}

func TestIngestEmitsProcessedBatchInArrivalOrder(t *testing.T) {
	s := NewMessageStore(nil)

	var got []models.Message
	s.OnNew(func(batch []models.Message) { got = batch })

	s.Ingest(
		models.RawMessage{ID: "old", Timestamp: "2019-01-01"},
		models.RawMessage{ID: "new", Timestamp: "2021-01-01"},
	)

	if len(got) != 2 {
		t.Fatalf("expected event batch of 2, got %d", len(got))
	}
	// Arrival order, not store order.
	if got[0].ID != "old" || got[1].ID != "new" {
		t.Errorf("expected arrival order [old new], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestIngestEventSeesConsistentStore(t *testing.T) {
	s := NewMessageStore(nil)

	var lenDuringEvent int
	s.OnNew(func(batch []models.Message) {
		lenDuringEvent = s.Len()
	})

	s.Ingest(
		models.RawMessage{ID: "1", Timestamp: "2020-01-01"},
		models.RawMessage{ID: "2", Timestamp: "2020-01-02"},
	)

	if lenDuringEvent != 2 {
		t.Errorf("handler saw store length %d, want 2", lenDuringEvent)
	}
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	s := NewMessageStore(nil)
	s.Ingest(models.RawMessage{ID: "1", Timestamp: "2020-01-01", Text: "original"})

	snap := s.Messages()
	snap[0].Text = "mutated"

	if got, _ := s.Get("1"); got.Text != "original" {
		t.Errorf("snapshot mutation leaked into store: %q", got.Text)
	}
}

func TestGet(t *testing.T) {
	s := NewMessageStore(nil)
	s.Ingest(models.RawMessage{ID: "1", Timestamp: "2020-01-01"})

	if _, ok := s.Get("1"); !ok {
		t.Error("expected to find ingested message")
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestIngestEnrichesLocationlessMessages(t *testing.T) {
	entities := NewEntityStore()
	tracks := NewTrackStore()
	s := NewMessageStore(NewEnricher(entities, tracks))

	entities.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Alice"})
	tracks.Ingest(models.TrackUpdate{
		SubjectID:   "u1",
		Timestamps:  []string{"2020-01-01T10:00:00Z", "2020-01-01T11:00:00Z"},
		Coordinates: []models.Coordinate{{7.0, 45.0}, {7.1, 45.1}},
	})

	processed := s.Ingest(models.RawMessage{
		ID: "m1", SubjectID: "u1", Timestamp: "2020-01-01T10:30:00Z",
	})

	msg := processed[0]
	if msg.Subject == nil || msg.Subject.DisplayName != "Alice" {
		t.Errorf("expected profile attached, got %+v", msg.Subject)
	}
	// Nearest sample strictly before 10:30 is the 10:00 one.
	if !msg.HasCoordinates() || msg.Coordinates[0] != 7.0 {
		t.Errorf("expected back-filled coordinate {7.0 45.0}, got %v", msg.Coordinates)
	}
}

func TestIngestKeepsFeedSuppliedCoordinates(t *testing.T) {
	entities := NewEntityStore()
	tracks := NewTrackStore()
	s := NewMessageStore(NewEnricher(entities, tracks))

	tracks.Ingest(models.TrackUpdate{
		SubjectID:   "u1",
		Timestamps:  []string{"2020-01-01T10:00:00Z"},
		Coordinates: []models.Coordinate{{1.0, 1.0}},
	})

	processed := s.Ingest(models.RawMessage{
		ID: "m1", SubjectID: "u1",
		Timestamp:   "2020-01-01T12:00:00Z",
		Coordinates: models.Coordinate{9.0, 9.0},
	})

	if processed[0].Coordinates[0] != 9.0 {
		t.Errorf("feed coordinate overwritten by track inference: %v", processed[0].Coordinates)
	}
}

func TestIngestEnrichedProfileNotRevisited(t *testing.T) {
	entities := NewEntityStore()
	tracks := NewTrackStore()
	s := NewMessageStore(NewEnricher(entities, tracks))

	// Message arrives before any profile: enrichment misses.
	s.Ingest(models.RawMessage{ID: "m1", SubjectID: "u1", Timestamp: "2020-01-01"})

	entities.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Late Alice"})

	if got, _ := s.Get("m1"); got.Subject != nil {
		t.Errorf("expected stored message to keep its miss, got subject %+v", got.Subject)
	}
}

func TestIngestConcurrentBatches(t *testing.T) {
	s := NewMessageStore(nil)

	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 50; i++ {
				ts := base.AddDate(0, 0, g*50+i).Format("2006-01-02")
				s.Ingest(models.RawMessage{
					ID:        ts + "-" + string(rune('a'+g)),
					Timestamp: ts,
				})
			}
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}

	if s.Len() != 200 {
		t.Fatalf("expected 200 messages, got %d", s.Len())
	}
	assertDescending(t, s.Messages())
}
