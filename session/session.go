// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/models"
)

const minSweepInterval = time.Second

var ErrNotFound = errors.New("game not found")

// Factory builds the game for a new session id
type Factory func(id string) (*game.Game, error)

// RecordFunc persists the result of a finished game
type RecordFunc func(ctx context.Context, r models.GameResult) error

type Config struct {
	NewGame Factory
	// Idle time after which a session is evicted
	TTL time.Duration

	// Optional
	Record        RecordFunc
	Now           func() time.Time
	SweepInterval time.Duration
}

// Manager owns the live games. Every access to one game runs under that
// game's lock, ticked to the current time first.
type Manager struct {
	newGame  Factory
	record   RecordFunc
	now      func() time.Time
	ttl      time.Duration
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id    string
	owner string

	mu       sync.Mutex
	game     *game.Game
	lastSeen time.Time
	recorded bool
}

func NewManager(cfg Config) *Manager {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = max(cfg.TTL/4, minSweepInterval)
	}
	return &Manager{
		newGame:  cfg.NewGame,
		record:   cfg.Record,
		now:      now,
		ttl:      cfg.TTL,
		interval: interval,
		sessions: make(map[string]*session),
	}
}

// Create starts a session for owner and returns its id
func (m *Manager) Create(owner string) (string, error) {
	id := uuid.NewString()
	g, err := m.newGame(id)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	s := &session{id: id, owner: owner, game: g, lastSeen: m.now()}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	slog.Info("game created", "game_id", id, "user_id", owner)
	return id, nil
}

// Do runs fn against the game id owned by owner. A session owned by someone
// else is reported as ErrNotFound.
func (m *Manager) Do(ctx context.Context, id, owner string, fn func(g *game.Game, now time.Time) error) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok || s.owner != owner {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := m.now()
	s.game.Tick(now)
	err := fn(s.game, now)
	s.lastSeen = now
	m.recordIfFinished(ctx, s)
	return err
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed. Idle games are ticked once more so that a countdown that
// ran out while nobody was watching still gets recorded. A finished game
// whose result could not be stored stays live until a later sweep or
// access stores it.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	var idle []*session
	m.mu.Lock()
	for _, s := range m.sessions {
		idle = append(idle, s)
	}
	m.mu.Unlock()

	evicted := 0
	for _, s := range idle {
		s.mu.Lock()
		if now.Sub(s.lastSeen) <= m.ttl {
			s.mu.Unlock()
			continue
		}
		s.game.Tick(now)
		m.recordIfFinished(ctx, s)
		stage := s.game.Stage()
		if stage.Terminal() && !s.recorded && m.record != nil {
			s.mu.Unlock()
			slog.Warn("keeping idle game until its result is stored", "game_id", s.id, "user_id", s.owner)
			continue
		}
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
		s.mu.Unlock()

		evicted++
		slog.Info("game evicted", "game_id", s.id, "user_id", s.owner, "stage", stage)
	}
	return evicted
}

// Run sweeps idle sessions until ctx is cancelled
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("session janitor started", "interval", m.interval, "ttl", m.ttl)
	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped", "live", m.Len())
			return nil
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				slog.Info("idle games evicted", "count", n, "live", m.Len())
			}
		}
	}
}

// recordIfFinished must be called with s.mu held
func (m *Manager) recordIfFinished(ctx context.Context, s *session) {
	if s.recorded || m.record == nil || !s.game.Stage().Terminal() {
		return
	}

	r := Result(s.game)
	r.ID = s.id
	r.UserID = s.owner
	if err := m.record(ctx, r); err != nil {
		slog.Error("failed to record game result", "game_id", s.id, "error", err)
		return
	}
	s.recorded = true
	slog.Info("game finished", "game_id", s.id, "user_id", s.owner, "outcome", r.Outcome)
}

// Result summarizes a finished game. ID and UserID are left for the caller.
func Result(g *game.Game) models.GameResult {
	r := models.GameResult{
		Outcome:          models.OutcomeLost,
		PuzzlesCompleted: g.Progress().CompletedCount(),
		SecondsRemaining: g.Countdown().Remaining(),
		StartedAt:        g.StartedAt(),
		FinishedAt:       g.FinishedAt(),
	}
	if g.Stage() == game.StageWon {
		r.Outcome = models.OutcomeWon
	}
	if code, ok := g.Submitted(); ok {
		r.CodeSubmitted = code.String()
	}
	return r
}
