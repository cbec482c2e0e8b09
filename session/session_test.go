// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/jigsaw"
	"github.com/danielhkuo/egghunt/models"
)

type fixedSource struct{}

func (fixedSource) Dimensions(ctx context.Context, image string) (jigsaw.Size, error) {
	return jigsaw.Size{Width: 200, Height: 200}, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recorder struct {
	mu      sync.Mutex
	results []models.GameResult
	err     error
}

func (r *recorder) Record(ctx context.Context, res models.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func newTestManager(t *testing.T, timer string) (*Manager, *fakeClock, *recorder) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)}
	rec := &recorder{}
	m := NewManager(Config{
		NewGame: func(id string) (*game.Game, error) {
			return game.New(game.Config{
				Album:      game.DefaultAlbum(1, 2),
				FinalHint:  game.DefaultFinalHint,
				Passcode:   "123CF",
				TimerStart: timer,
				Source:     fixedSource{},
				Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
		},
		TTL:    10 * time.Minute,
		Record: rec.Record,
		Now:    clock.Now,
	})
	return m, clock, rec
}

// start returns a Do action that starts the game
func start(ctx context.Context) func(*game.Game, time.Time) error {
	return func(g *game.Game, now time.Time) error {
		return g.Start(ctx, now)
	}
}

func TestCreateAndOwnership(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, "59:59")

	id, err := m.Create("alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Len())
	}

	if err := m.Do(ctx, id, "alice", start(ctx)); err != nil {
		t.Fatalf("Do(start) failed: %v", err)
	}

	err = m.Do(ctx, id, "mallory", func(g *game.Game, now time.Time) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user, got %v", err)
	}
	err = m.Do(ctx, "missing", "alice", func(g *game.Game, now time.Time) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDoTicksAndPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	m, clock, _ := newTestManager(t, "59:59")
	id, _ := m.Create("alice")
	m.Do(ctx, id, "alice", start(ctx))

	clock.Advance(90 * time.Second)
	var remaining int
	sentinel := errors.New("boom")
	err := m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error {
		remaining = g.Countdown().Remaining()
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected fn error to propagate, got %v", err)
	}
	if remaining != 59*60+59-90 {
		t.Errorf("Expected countdown ticked to %d, got %d", 59*60+59-90, remaining)
	}
}

func TestFinishedGameRecordedOnce(t *testing.T) {
	ctx := context.Background()
	m, _, rec := newTestManager(t, "59:59")
	id, _ := m.Create("alice")
	m.Do(ctx, id, "alice", start(ctx))

	err := m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error {
		for range g.Album() {
			for _, p := range g.Engine().Pieces() {
				g.Drop(p.ID, p.Correct)
			}
			if err := g.Next(ctx); err != nil {
				return err
			}
		}
		_, err := g.Submit(now)
		return err
	})
	if err != nil {
		t.Fatalf("playing through failed: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected 1 recorded result, got %d", rec.count())
	}
	r := rec.results[0]
	if r.ID != id {
		t.Errorf("Expected result id to match game id %s, got %s", id, r.ID)
	}
	if r.Outcome != models.OutcomeLost || r.CodeSubmitted != "000AB" || r.UserID != "alice" {
		t.Errorf("Unexpected result %+v", r)
	}
	if r.PuzzlesCompleted != 5 {
		t.Errorf("Expected 5 puzzles completed, got %d", r.PuzzlesCompleted)
	}

	m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error { return nil })
	if rec.count() != 1 {
		t.Errorf("Expected result to be recorded once, got %d", rec.count())
	}
}

func TestRecordRetriedAfterFailure(t *testing.T) {
	ctx := context.Background()
	m, _, rec := newTestManager(t, "00:00")
	rec.err = errors.New("database down")

	id, _ := m.Create("alice")
	m.Do(ctx, id, "alice", start(ctx))
	if rec.count() != 0 {
		t.Fatalf("Expected no result while recording fails")
	}

	rec.err = nil
	m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error { return nil })
	if rec.count() != 1 {
		t.Errorf("Expected result recorded on retry, got %d", rec.count())
	}
	if rec.results[0].CodeSubmitted != "" {
		t.Errorf("Expected no code for a timed-out game, got %q", rec.results[0].CodeSubmitted)
	}
}

func TestSweepEvictsIdleAndRecordsExpired(t *testing.T) {
	ctx := context.Background()
	m, clock, rec := newTestManager(t, "05:00")

	idle, _ := m.Create("alice")
	m.Do(ctx, idle, "alice", start(ctx))
	fresh, _ := m.Create("bob")

	clock.Advance(9 * time.Minute)
	m.Do(ctx, fresh, "bob", func(g *game.Game, now time.Time) error { return nil })

	clock.Advance(2 * time.Minute)
	if n := m.Sweep(ctx); n != 1 {
		t.Fatalf("Expected 1 eviction, got %d", n)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 live session, got %d", m.Len())
	}
	if err := m.Do(ctx, idle, "alice", start(ctx)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected evicted session to be gone, got %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected the expired game to be recorded, got %d", rec.count())
	}
	r := rec.results[0]
	if r.Outcome != models.OutcomeLost || r.SecondsRemaining != 0 {
		t.Errorf("Unexpected result %+v", r)
	}
	if got := r.FinishedAt.Sub(r.StartedAt); got != 5*time.Minute {
		t.Errorf("Expected game to end at expiry, lasted %s", got)
	}
}

func TestSweepKeepsUnrecordedGames(t *testing.T) {
	ctx := context.Background()
	m, clock, rec := newTestManager(t, "05:00")

	id, _ := m.Create("alice")
	m.Do(ctx, id, "alice", start(ctx))

	rec.err = errors.New("database down")
	clock.Advance(11 * time.Minute)
	if n := m.Sweep(ctx); n != 0 {
		t.Errorf("Expected no eviction while recording fails, got %d", n)
	}
	if m.Len() != 1 || rec.count() != 0 {
		t.Fatalf("Expected the game kept and unrecorded, got %d live, %d recorded", m.Len(), rec.count())
	}

	rec.err = nil
	if n := m.Sweep(ctx); n != 1 {
		t.Errorf("Expected 1 eviction once recording succeeds, got %d", n)
	}
	if m.Len() != 0 {
		t.Errorf("Expected no live sessions, got %d", m.Len())
	}
	if rec.count() != 1 || rec.results[0].ID != id {
		t.Errorf("Expected the game recorded once, got %+v", rec.results)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	m, _, _ := newTestManager(t, "59:59")
	m.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil on shutdown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t, "59:59")
	id, _ := m.Create("alice")
	m.Do(ctx, id, "alice", start(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error {
				for _, p := range g.Engine().Unplaced() {
					g.Drop(p.ID, p.Correct)
				}
				return nil
			})
		}()
	}
	wg.Wait()

	m.Do(ctx, id, "alice", func(g *game.Game, now time.Time) error {
		if !g.Engine().Completed() {
			t.Error("Expected the puzzle to be complete")
		}
		if g.Engine().PlacedCount() != 2 {
			t.Errorf("Expected 2 placed pieces, got %d", g.Engine().PlacedCount())
		}
		return nil
	})
}
