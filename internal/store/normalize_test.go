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

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "rfc3339",
			input: "2020-01-02T15:04:05Z",
			want:  time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "rfc3339 with offset",
			input: "2020-01-02T15:04:05+02:00",
			want:  time.Date(2020, 1, 2, 15, 4, 5, 0, time.FixedZone("", 2*3600)),
			ok:    true,
		},
		{
			name:  "naive datetime",
			input: "2020-06-15T08:30:00",
			want:  time.Date(2020, 6, 15, 8, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "bare date",
			input: "2020-01-02",
			want:  time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "bare year",
			input: "2020",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "not-a-time", ok: false},
		{name: "partial", input: "2020-13-45", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("expected zero time on failure, got %v", got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyContentPrecedence(t *testing.T) {
	url := map[string]string{"720": "https://cdn.example.com/x"}

	tests := []struct {
		name string
		raw  models.RawMessage
		want models.ContentKind
	}{
		{name: "no markers", raw: models.RawMessage{}, want: models.ContentText},
		{name: "image only", raw: models.RawMessage{ImageURLs: url}, want: models.ContentImage},
		{name: "audio only", raw: models.RawMessage{AudioURLs: url}, want: models.ContentAudio},
		{name: "video only", raw: models.RawMessage{VideoURLs: url}, want: models.ContentVideo},
		{
			name: "video beats image",
			raw:  models.RawMessage{VideoURLs: url, ImageURLs: url},
			want: models.ContentVideo,
		},
		{
			name: "audio beats image",
			raw:  models.RawMessage{AudioURLs: url, ImageURLs: url},
			want: models.ContentAudio,
		},
		{
			name: "video beats everything",
			raw:  models.RawMessage{VideoURLs: url, AudioURLs: url, ImageURLs: url},
			want: models.ContentVideo,
		},
		{
			name: "empty marker map is no marker",
			raw:  models.RawMessage{VideoURLs: map[string]string{}, ImageURLs: url},
			want: models.ContentImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyContent(&tt.raw); got != tt.want {
				t.Errorf("ClassifyContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := models.RawMessage{
		ID:          "m1",
		SubjectID:   "u1",
		Timestamp:   "2020-01-02T10:00:00Z",
		Text:        "summit reached",
		Coordinates: models.Coordinate{7.65, 45.97, 4808},
		ImageURLs:   map[string]string{"720": "https://cdn.example.com/summit.jpg"},
		Content:     "<div>stale markup</div>",
	}

	msg := Normalize(raw)

	if msg.ID != "m1" || msg.SubjectID != "u1" || msg.Text != "summit reached" {
		t.Errorf("identity fields not carried over: %+v", msg)
	}
	want := time.Date(2020, 1, 2, 10, 0, 0, 0, time.UTC)
	if !msg.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, want)
	}
	if !msg.Start.Equal(msg.Timestamp) {
		t.Errorf("Start = %v, want mirror of Timestamp %v", msg.Start, msg.Timestamp)
	}
	if msg.Kind != models.ContentImage {
		t.Errorf("Kind = %v, want image", msg.Kind)
	}
	if msg.ClassName != "msgtype-image" {
		t.Errorf("ClassName = %q, want msgtype-image", msg.ClassName)
	}
	if msg.Content != "" {
		t.Errorf("Content = %q, want blanked", msg.Content)
	}
	if !msg.HasCoordinates() {
		t.Error("expected coordinates to survive normalization")
	}
}

func TestNormalizeUnparseableTimestamp(t *testing.T) {
	msg := Normalize(models.RawMessage{ID: "m1", Timestamp: "whenever"})

	if !msg.Timestamp.IsZero() || !msg.Start.IsZero() {
		t.Errorf("expected zero Timestamp and Start, got %v / %v", msg.Timestamp, msg.Start)
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	msg := Normalize(models.RawMessage{})

	if msg.Kind != models.ContentText {
		t.Errorf("Kind = %v, want text default", msg.Kind)
	}
	if msg.ClassName != "msgtype-text" {
		t.Errorf("ClassName = %q, want msgtype-text", msg.ClassName)
	}
	if msg.HasCoordinates() {
		t.Error("empty record must not report coordinates")
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := models.RawMessage{
		ID:          "m1",
		Timestamp:   "2020-01-02",
		Coordinates: models.Coordinate{7.0, 45.0},
		Content:     "pre-rendered",
	}

	msg := Normalize(raw)

	if raw.Content != "pre-rendered" {
		t.Errorf("input Content mutated to %q", raw.Content)
	}
	// The normalized coordinate is a clone, not an alias.
	msg.Coordinates[0] = 99.0
	if raw.Coordinates[0] != 7.0 {
		t.Errorf("input coordinates aliased by output: %v", raw.Coordinates)
	}
}
