// Livetrack - Live Adventure Tracking and Visualization
// Copyright 2026 Livetrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/livetrack-io/livetrack

package store

import (
	"testing"

	"github.com/livetrack-io/livetrack/internal/models"
)

func TestEntityIngestAndGet(t *testing.T) {
	s := NewEntityStore()

	s.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Alice"})

	p, ok := s.Get("u1")
	if !ok || p.DisplayName != "Alice" {
		t.Errorf("expected Alice, got %+v ok=%v", p, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestEntityIngestLastWriteWins(t *testing.T) {
	s := NewEntityStore()

	s.Ingest(models.EntityProfile{
		ID: "u1", DisplayName: "Alice", AvatarURL: "https://cdn.example.com/a.png",
	})
	// Overwrite is wholesale: the absent AvatarURL is not merged in.
	s.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Alicia"})

	p, _ := s.Get("u1")
	if p.DisplayName != "Alicia" {
		t.Errorf("DisplayName = %q, want Alicia", p.DisplayName)
	}
	if p.AvatarURL != "" {
		t.Errorf("expected wholesale overwrite, AvatarURL survived as %q", p.AvatarURL)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 profile, got %d", s.Len())
	}
}

func TestEntityOverwriteLeavesEarlierHoldersStale(t *testing.T) {
	s := NewEntityStore()

	s.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Alice"})
	held, _ := s.Get("u1")

	s.Ingest(models.EntityProfile{ID: "u1", DisplayName: "Alicia"})

	if held.DisplayName != "Alice" {
		t.Errorf("earlier holder mutated by overwrite: %q", held.DisplayName)
	}
	current, _ := s.Get("u1")
	if current.DisplayName != "Alicia" {
		t.Errorf("store not updated: %q", current.DisplayName)
	}
}

func TestEntityProfilesSortedCopy(t *testing.T) {
	s := NewEntityStore()
	s.Ingest(
		models.EntityProfile{ID: "c"},
		models.EntityProfile{ID: "a"},
		models.EntityProfile{ID: "b"},
	)

	profiles := s.Profiles()
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	for i, want := range []string{"a", "b", "c"} {
		if profiles[i].ID != want {
			t.Fatalf("expected sorted IDs [a b c], got position %d = %s", i, profiles[i].ID)
		}
	}

	profiles[0].DisplayName = "mutated"
	if p, _ := s.Get("a"); p.DisplayName == "mutated" {
		t.Error("Profiles() copy mutation leaked into store")
	}
}

func TestEntityIngestEmitsBatch(t *testing.T) {
	s := NewEntityStore()

	var got []models.EntityProfile
	s.OnNew(func(batch []models.EntityProfile) { got = batch })

	s.Ingest(models.EntityProfile{ID: "u1"}, models.EntityProfile{ID: "u2"})

	if len(got) != 2 || got[0].ID != "u1" || got[1].ID != "u2" {
		t.Errorf("expected event batch [u1 u2], got %+v", got)
	}
}
