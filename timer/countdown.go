// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultStart is the countdown used when none is configured
const DefaultStart = "59:59"

var ErrMalformedClock = errors.New("clock must be MM:SS or HH:MM:SS")

// ParseClock converts "MM:SS" or "HH:MM:SS" into whole seconds.
// Anything else parses to 0.
func ParseClock(s string) int {
	secs, err := parseClock(s)
	if err != nil {
		return 0
	}
	return secs
}

// ValidateClock reports whether s is a well-formed clock string
func ValidateClock(s string) error {
	_, err := parseClock(s)
	return err
}

func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformedClock)
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%q: %w", s, ErrMalformedClock)
		}
		total = total*60 + n
	}
	return total, nil
}

// FormatClock renders seconds as MM:SS, or HH:MM:SS once hours are involved
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Countdown ticks down once per second after Start.
// It is not safe for concurrent use.
type Countdown struct {
	initial   int
	remaining int
	running   bool
	nextTick  time.Time

	OnStart    func()
	OnComplete func()
}

// New creates a stopped countdown from a clock string
func New(start string) *Countdown {
	secs := ParseClock(start)
	return &Countdown{initial: secs, remaining: secs}
}

// Start begins ticking. A countdown that already reached zero is reset to its
// original duration first. OnStart fires immediately; a zero-length countdown
// completes on the spot.
func (c *Countdown) Start(now time.Time) bool {
	if c.running {
		return false
	}
	if c.remaining == 0 {
		c.remaining = c.initial
	}
	c.running = true
	c.nextTick = now.Add(time.Second)

	if c.OnStart != nil {
		c.OnStart()
	}
	if c.remaining == 0 {
		c.finish()
	}
	return true
}

// Tick applies every whole second elapsed up to now
func (c *Countdown) Tick(now time.Time) {
	for c.running && !now.Before(c.nextTick) {
		c.remaining--
		c.nextTick = c.nextTick.Add(time.Second)
		if c.remaining <= 0 {
			c.remaining = 0
			c.finish()
		}
	}
}

// Stop cancels ticking without completing
func (c *Countdown) Stop() {
	c.running = false
}

func (c *Countdown) finish() {
	c.running = false
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

// Remaining returns the seconds left
func (c *Countdown) Remaining() int { return c.remaining }

// Initial returns the configured duration in seconds
func (c *Countdown) Initial() int { return c.initial }

// Running reports whether the countdown is ticking
func (c *Countdown) Running() bool { return c.running }

// Format renders the remaining time
func (c *Countdown) Format() string { return FormatClock(c.remaining) }
