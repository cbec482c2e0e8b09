// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tray

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/danielhkuo/egghunt/jigsaw"
)

const (
	// SlotGap is the horizontal space between two tray slots
	SlotGap = 10
	// ScrollPieces is how many slots one scroll button press moves
	ScrollPieces = 2.8
	// ResizeSettleDelay debounces resize notifications
	ResizeSettleDelay = 150 * time.Millisecond

	// overflow must exceed the visible width by more than this to count
	overflowSlack = 1.0
	settleEpsilon = 0.5

	frameDuration = time.Second / 60
	maxFrames     = 60
)

// PieceSource is the engine side of the tray
type PieceSource interface {
	Unplaced() []jigsaw.Piece
}

// Tray shows the unplaced pieces of a puzzle in a horizontally scrolling
// strip. It is not safe for concurrent use.
type Tray struct {
	src        PieceSource
	pieceWidth float64

	clientWidth float64
	lastCount   int
	showButtons bool

	scroll   float64
	velocity float64
	target   float64
	spring   harmonica.Spring
	// zero while settled
	lastFrame time.Time

	resizePending  bool
	resizeWidth    float64
	resizeDeadline time.Time
}

// New creates a tray over src with the given piece width and visible width
func New(src PieceSource, pieceWidth, clientWidth float64) *Tray {
	t := &Tray{
		src:         src,
		pieceWidth:  pieceWidth,
		clientWidth: clientWidth,
		lastCount:   -1,
		spring:      harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
	}
	t.Sync()
	return t
}

// Pieces returns the pieces to render, in engine order
func (t *Tray) Pieces() []jigsaw.Piece {
	return t.src.Unplaced()
}

// Empty reports whether every piece has left the tray
func (t *Tray) Empty() bool {
	return len(t.src.Unplaced()) == 0
}

// Sync recomputes overflow when the unplaced count changed since last call
func (t *Tray) Sync() {
	n := len(t.src.Unplaced())
	if n == t.lastCount {
		return
	}
	t.lastCount = n
	t.updateOverflow()
}

func (t *Tray) updateOverflow() {
	t.showButtons = t.ScrollWidth() > t.clientWidth+overflowSlack
	t.target = t.clampScroll(t.target)
	t.scroll = t.clampScroll(t.scroll)
}

// ScrollWidth is the full width of the strip content
func (t *Tray) ScrollWidth() float64 {
	return float64(len(t.src.Unplaced())) * (t.pieceWidth + SlotGap)
}

// ClientWidth is the visible width of the strip
func (t *Tray) ClientWidth() float64 { return t.clientWidth }

// ShowScrollButtons reports whether the content overflows the visible width.
// It never reports a piece count older than the source's.
func (t *Tray) ShowScrollButtons() bool {
	t.Sync()
	return t.showButtons
}

// Resize records a new visible width; overflow is recomputed once resizing
// has been quiet for ResizeSettleDelay.
func (t *Tray) Resize(clientWidth float64, now time.Time) {
	t.resizePending = true
	t.resizeWidth = clientWidth
	t.resizeDeadline = now.Add(ResizeSettleDelay)
}

// ScrollLeft smoothly scrolls back by a few slots
func (t *Tray) ScrollLeft() {
	t.target = t.clampScroll(t.target - t.scrollStep())
}

// ScrollRight smoothly scrolls forward by a few slots
func (t *Tray) ScrollRight() {
	t.target = t.clampScroll(t.target + t.scrollStep())
}

// Wheel maps a mostly-vertical wheel gesture onto horizontal scrolling
func (t *Tray) Wheel(deltaX, deltaY float64) bool {
	if math.Abs(deltaY) <= math.Abs(deltaX) {
		return false
	}
	t.scroll = t.clampScroll(t.scroll + deltaY)
	t.target = t.scroll
	t.velocity = 0
	return true
}

// ResizePending reports whether a resize is waiting to settle
func (t *Tray) ResizePending() bool { return t.resizePending }

// Offset is the current horizontal scroll position
func (t *Tray) Offset() float64 { return t.scroll }

// Target is where a smooth scroll is heading
func (t *Tray) Target() float64 { return t.target }

// Scrolling reports whether a smooth scroll is still moving
func (t *Tray) Scrolling() bool { return t.scroll != t.target }

// Tick applies a settled resize and advances smooth scrolling by the 60Hz
// frames elapsed since the previous Tick. The first Tick of a scroll moves
// one frame; a long gap is capped at one second of frames.
func (t *Tray) Tick(now time.Time) {
	if t.resizePending && !now.Before(t.resizeDeadline) {
		t.resizePending = false
		t.clientWidth = t.resizeWidth
		t.updateOverflow()
	}
	t.Sync()

	if t.scroll == t.target {
		t.lastFrame = time.Time{}
		return
	}
	frames := 1
	if !t.lastFrame.IsZero() {
		frames = min(int(now.Sub(t.lastFrame)/frameDuration), maxFrames)
	}
	if frames < 1 {
		return
	}
	t.lastFrame = now
	for ; frames > 0 && t.scroll != t.target; frames-- {
		t.frame()
	}
	if t.scroll == t.target {
		t.lastFrame = time.Time{}
	}
}

func (t *Tray) frame() {
	t.scroll, t.velocity = t.spring.Update(t.scroll, t.velocity, t.target)
	if math.Abs(t.scroll-t.target) < settleEpsilon && math.Abs(t.velocity) < settleEpsilon {
		t.scroll = t.target
		t.velocity = 0
	}
}

func (t *Tray) scrollStep() float64 {
	return (t.pieceWidth + SlotGap) * ScrollPieces
}

func (t *Tray) clampScroll(x float64) float64 {
	maxScroll := math.Max(0, t.ScrollWidth()-t.clientWidth)
	return math.Max(0, math.Min(maxScroll, x))
}
