// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game orchestrates one play-through of the egg hunt.

A game moves through a fixed set of stages:

	intro -> countdown -> puzzle (x album size) -> code_entry -> won | lost

The countdown starts when the player presses start. Each puzzle of the album
reveals a hint word once solved; after the last one the player dials a
five-symbol code on five selectors and submits it. A matching code wins, any
other code loses, and the countdown reaching zero loses from any stage.

# Time

Game never reads the wall clock. Hosts pass the current time to Start,
Submit, Step and Tick, and call Tick regularly to drive the countdown, the
tray spring and the selector animations.

# Concurrency

A Game is single-threaded. The session package wraps each game in a mutex
for the HTTP server.
*/
package game
