// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selector

import (
	"errors"
	"math"
	"time"
)

const (
	DefaultItemHeight   = 40.0
	DefaultVisibleItems = 5

	// AnimationDuration is the length of every snap animation
	AnimationDuration = 300 * time.Millisecond
	// WheelSettleDelay is how long the wheel must be idle before snapping
	WheelSettleDelay = 150 * time.Millisecond
	// WheelSensitivity scales wheel deltas into offset changes
	WheelSensitivity = 0.5
)

var (
	ErrNoOptions        = errors.New("selector needs at least one option")
	ErrDuplicateOption  = errors.New("selector options must be distinct")
	ErrInvalidItemShape = errors.New("item height and visible count must be positive")
)

// Key identifies a keyboard key the selector reacts to
type Key int

const (
	KeyOther Key = iota
	KeyArrowUp
	KeyArrowDown
)

// KeyFromName maps a DOM key name such as "ArrowUp" to a Key
func KeyFromName(name string) Key {
	switch name {
	case "ArrowUp":
		return KeyArrowUp
	case "ArrowDown":
		return KeyArrowDown
	default:
		return KeyOther
	}
}

// Direction is a one-step move requested by the arrow buttons
type Direction int

const (
	Up Direction = iota
	Down
)

// State reports what the selector is currently doing
type State int

const (
	Idle State = iota
	Dragging
	Animating
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Animating:
		return "animating"
	default:
		return "idle"
	}
}

type layout struct {
	itemHeight   float64
	visibleItems int
}

// Option configures the selector's geometry
type Option func(*layout)

// WithItemHeight sets the height of one row in pixels
func WithItemHeight(h float64) Option {
	return func(l *layout) { l.itemHeight = h }
}

// WithVisibleItems sets how many rows the container shows
func WithVisibleItems(n int) Option {
	return func(l *layout) { l.visibleItems = n }
}

type animation struct {
	from, to float64
	start    time.Time
}

// Selector is a vertical picker over a fixed list of values.
// It is not safe for concurrent use; hosts serialize calls.
type Selector[T comparable] struct {
	options  []T
	onSelect func(T)
	layout   layout

	selected int
	offset   float64

	dragging bool
	lastY    float64

	anim *animation

	wheelPending  bool
	wheelDeadline time.Time
}

// New creates a selector starting at the first option
func New[T comparable](options []T, onSelect func(T), opts ...Option) (*Selector[T], error) {
	return build(options, 0, onSelect, opts)
}

// NewWithInitial creates a selector starting at initial.
// An initial value not present in options falls back to the first option.
func NewWithInitial[T comparable](options []T, initial T, onSelect func(T), opts ...Option) (*Selector[T], error) {
	start := 0
	for i, o := range options {
		if o == initial {
			start = i
			break
		}
	}
	return build(options, start, onSelect, opts)
}

func build[T comparable](options []T, start int, onSelect func(T), opts []Option) (*Selector[T], error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	seen := make(map[T]struct{}, len(options))
	for _, o := range options {
		if _, dup := seen[o]; dup {
			return nil, ErrDuplicateOption
		}
		seen[o] = struct{}{}
	}

	l := layout{itemHeight: DefaultItemHeight, visibleItems: DefaultVisibleItems}
	for _, opt := range opts {
		opt(&l)
	}
	if l.itemHeight <= 0 || l.visibleItems <= 0 {
		return nil, ErrInvalidItemShape
	}

	s := &Selector[T]{
		options:  append([]T(nil), options...),
		onSelect: onSelect,
		layout:   l,
		selected: start,
	}
	s.offset = s.offsetFor(start)
	return s, nil
}

// Options returns a copy of the option list
func (s *Selector[T]) Options() []T {
	return append([]T(nil), s.options...)
}

// Len returns the number of options
func (s *Selector[T]) Len() int { return len(s.options) }

// Index returns the committed selection index
func (s *Selector[T]) Index() int { return s.selected }

// Value returns the committed selection
func (s *Selector[T]) Value() T { return s.options[s.selected] }

// Offset returns the current continuous scroll offset
func (s *Selector[T]) Offset() float64 { return s.offset }

// ItemHeight returns the row height
func (s *Selector[T]) ItemHeight() float64 { return s.layout.itemHeight }

// State reports whether the selector is idle, dragging or animating
func (s *Selector[T]) State() State {
	switch {
	case s.anim != nil:
		return Animating
	case s.dragging:
		return Dragging
	default:
		return Idle
	}
}

// Animating reports whether a snap animation is running
func (s *Selector[T]) Animating() bool { return s.anim != nil }

// Dragging reports whether a pointer drag is in progress
func (s *Selector[T]) Dragging() bool { return s.dragging }

// WheelPending reports whether a debounced wheel snap is scheduled
func (s *Selector[T]) WheelPending() bool { return s.wheelPending }

// PointerDown begins a drag at y. Rejected while animating.
func (s *Selector[T]) PointerDown(y float64) bool {
	if s.anim != nil {
		return false
	}
	s.dragging = true
	s.lastY = y
	s.wheelPending = false
	return true
}

// PointerMove follows the pointer 1:1 while dragging
func (s *Selector[T]) PointerMove(y float64) {
	if !s.dragging {
		return
	}
	s.offset += y - s.lastY
	s.lastY = y
}

// PointerUp ends a drag and snaps to the nearest option
func (s *Selector[T]) PointerUp(now time.Time) {
	if !s.dragging {
		return
	}
	s.dragging = false

	target := s.snap(s.offset)
	if target != s.offset {
		s.animateTo(target, now)
		return
	}
	s.commit(s.indexFor(s.offset))
}

// PointerLeave ends an active drag when the pointer leaves the container
func (s *Selector[T]) PointerLeave(now time.Time) {
	if s.dragging {
		s.PointerUp(now)
	}
}

// Wheel scrolls by a fraction of deltaY and schedules a snap once the wheel
// goes quiet. Rejected while animating.
func (s *Selector[T]) Wheel(deltaY float64, now time.Time) bool {
	if s.anim != nil {
		return false
	}
	s.offset = s.clamp(s.offset - deltaY*WheelSensitivity)
	s.wheelPending = true
	s.wheelDeadline = now.Add(WheelSettleDelay)
	return true
}

// Key moves one option up or down. Rejected while animating, while dragging
// and at the ends.
func (s *Selector[T]) Key(k Key, now time.Time) bool {
	switch k {
	case KeyArrowUp:
		return s.Step(Up, now)
	case KeyArrowDown:
		return s.Step(Down, now)
	default:
		return false
	}
}

// Step is the arrow-button equivalent of Key. Rejected while animating or
// dragging.
func (s *Selector[T]) Step(d Direction, now time.Time) bool {
	if s.anim != nil || s.dragging {
		return false
	}
	next := s.selected
	switch d {
	case Up:
		if s.selected == 0 {
			return false
		}
		next--
	case Down:
		if s.selected == len(s.options)-1 {
			return false
		}
		next++
	default:
		return false
	}
	s.wheelPending = false
	s.animateTo(s.offsetFor(next), now)
	return true
}

// CanStepUp reports whether the up button is enabled
func (s *Selector[T]) CanStepUp() bool {
	return s.anim == nil && !s.dragging && s.selected > 0
}

// CanStepDown reports whether the down button is enabled
func (s *Selector[T]) CanStepDown() bool {
	return s.anim == nil && !s.dragging && s.selected < len(s.options)-1
}

// Tick advances the selector to now: it fires a due wheel snap and steps the
// running animation. Hosts call it once per display refresh.
func (s *Selector[T]) Tick(now time.Time) {
	if s.wheelPending && !now.Before(s.wheelDeadline) {
		s.wheelPending = false
		if !s.dragging {
			s.animateTo(s.snap(s.offset), now)
		}
	}

	if s.anim == nil {
		return
	}
	a := s.anim
	progress := float64(now.Sub(a.start)) / float64(AnimationDuration)
	if progress < 1 {
		s.offset = a.from + (a.to-a.from)*easeOutQuad(math.Max(progress, 0))
		return
	}

	s.offset = a.to
	s.anim = nil
	s.commit(s.indexFor(a.to))
}

func (s *Selector[T]) animateTo(target float64, now time.Time) {
	if s.anim != nil {
		return
	}
	s.anim = &animation{from: s.offset, to: target, start: now}
}

func (s *Selector[T]) commit(index int) {
	index = s.clampIndex(index)
	if index == s.selected {
		return
	}
	s.selected = index
	if s.onSelect != nil {
		s.onSelect(s.options[index])
	}
}

func (s *Selector[T]) offsetFor(index int) float64 {
	if index == 0 {
		return 0
	}
	return -float64(index) * s.layout.itemHeight
}

func (s *Selector[T]) indexFor(offset float64) int {
	return s.clampIndex(int(math.Round(-offset / s.layout.itemHeight)))
}

func (s *Selector[T]) clampIndex(i int) int {
	return max(0, min(len(s.options)-1, i))
}

// snap rounds offset to the nearest option boundary within bounds
func (s *Selector[T]) snap(offset float64) float64 {
	h := s.layout.itemHeight
	snapped := math.Round(offset/h) * h
	snapped = s.clamp(snapped)
	if snapped == 0 {
		return 0 // normalize -0
	}
	return snapped
}

func (s *Selector[T]) clamp(offset float64) float64 {
	lo := -float64(len(s.options)-1) * s.layout.itemHeight
	return math.Max(lo, math.Min(0, offset))
}

func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
