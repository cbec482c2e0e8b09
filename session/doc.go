// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session hosts live games for the HTTP server.

Games are single-threaded state machines driven by explicit time. Manager
gives each one a mutex and the wall clock:

	m := session.NewManager(session.Config{
		NewGame: factory,
		TTL:     2 * time.Hour,
		Record:  recordResult,
	})
	id, err := m.Create(userID)
	err = m.Do(ctx, id, userID, func(g *game.Game, now time.Time) error {
		_, err := g.Submit(now)
		return err
	})

Do ticks the game to now before running the callback, so a countdown that
ran out between requests is applied before any action.

# Results

When a game reaches Won or Lost, Record is called once with its summary.
A failed write is retried on the next access.

# Eviction

Run sweeps sessions idle for longer than the TTL until its context is
cancelled. Evicted games are ticked one last time, so a hunt abandoned
mid-countdown is recorded as lost once its timer would have expired.
*/
package session
