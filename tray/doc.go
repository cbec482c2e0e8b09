// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tray models the strip of unplaced puzzle pieces.

The tray holds no game state of its own: it reads the unplaced pieces from
its PieceSource (normally a *jigsaw.Engine) every time. It only tracks
scrolling: whether the strip overflows its visible width, where it is
scrolled to, and the spring that eases button-driven scrolls.

Scroll buttons are shown only when ScrollWidth exceeds ClientWidth by more
than a pixel. Overflow is recomputed whenever the unplaced count changes and
after a resize settles.
*/
package tray
