// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package selector implements a single-column value picker driven by drag,
wheel, keyboard, and button input.

# State Machine

A selector is Idle, Dragging, or Animating. Only one of Dragging and
Animating is ever true:

	Idle → Dragging → (Animating) → Idle   pointer gestures
	Idle → Animating → Idle                wheel, keys, buttons

Drag starts, wheel events, and key presses are rejected while animating.

# Clock

The selector never reads the wall clock. Every time-dependent entry point
takes now, and the host calls Tick(now) once per frame:

	s, _ := selector.New([]rune("0123456789"), onSelect)
	s.Key(selector.KeyArrowDown, now)
	for !done {
		s.Tick(frameTime)
	}

Snap animations run for AnimationDuration with ease-out-quad easing. Wheel
input snaps WheelSettleDelay after the last wheel event.

# Notifications

onSelect fires after an animation (or an on-boundary drag release) lands on
an index different from the committed one. Landing on the current index
never notifies.
*/
package selector
