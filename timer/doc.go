// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package timer provides the game countdown.

	c := timer.New("59:59")
	c.OnComplete = func() { ... }
	c.Start(now)
	c.Tick(now) // once per frame or second

Clock strings are "MM:SS" or "HH:MM:SS". ParseClock turns anything else into
zero seconds, and a zero countdown completes as soon as it starts; use
ValidateClock to reject bad strings up front.
*/
package timer
