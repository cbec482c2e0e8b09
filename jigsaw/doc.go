// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package jigsaw validates piece placement for a grid puzzle cut from one
// image. A drop is accepted only on the piece's own cell, placed pieces never
// move again, and OnComplete fires the first time every piece is placed.
package jigsaw
