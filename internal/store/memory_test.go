package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exp := time.Now().Add(time.Hour)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	e := game.New(nil, nil)
	if err := s.Save(ctx, "a", e, exp); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != e {
		t.Error("get returned a different engine")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for id, ttl := range map[string]time.Duration{"old": time.Minute, "edge": time.Hour, "fresh": 2 * time.Hour} {
		if err := s.Save(ctx, id, game.New(nil, nil), now.Add(ttl)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if got := s.Sweep(ctx, now); len(got) != 0 {
		t.Errorf("sweep before expiry removed %v", got)
	}

	got := s.Sweep(ctx, now.Add(time.Hour))
	slices.Sort(got)
	if !slices.Equal(got, []string{"edge", "old"}) {
		t.Errorf("swept = %v, want [edge old]", got)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}
