// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tray

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/danielhkuo/egghunt/jigsaw"
)

var t0 = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

type fakeSource struct {
	pieces []jigsaw.Piece
}

func (f *fakeSource) Unplaced() []jigsaw.Piece { return f.pieces }

func withPieces(n int) *fakeSource {
	f := &fakeSource{}
	for i := 0; i < n; i++ {
		f.pieces = append(f.pieces, jigsaw.Piece{ID: i})
	}
	return f
}

func settle(tr *Tray, from time.Time) time.Time {
	now := from
	for i := 0; i < 600 && tr.Scrolling(); i++ {
		now = now.Add(time.Second / 60)
		tr.Tick(now)
	}
	return now
}

func TestOverflow(t *testing.T) {
	tests := []struct {
		name        string
		pieces      int
		clientWidth float64
		want        bool
	}{
		{"fits", 3, 400, false},
		{"exact fit", 4, 440, false},
		{"within slack", 4, 439.5, false},
		{"overflows", 12, 440, true},
		{"empty", 0, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(withPieces(tt.pieces), 100, tt.clientWidth)
			if got := tr.ShowScrollButtons(); got != tt.want {
				t.Errorf("ShowScrollButtons() = %v, want %v (scrollWidth %v)", got, tt.want, tr.ScrollWidth())
			}
		})
	}
}

func TestOverflow_RecomputedWhenPiecesLeave(t *testing.T) {
	src := withPieces(6)
	tr := New(src, 100, 440)
	if !tr.ShowScrollButtons() {
		t.Fatal("Expected overflow with 6 pieces")
	}

	src.pieces = src.pieces[:4]
	tr.Tick(t0)
	if tr.ShowScrollButtons() {
		t.Error("Expected buttons hidden once the pieces fit")
	}

	src.pieces = nil
	tr.Tick(t0)
	if !tr.Empty() {
		t.Error("Expected empty tray")
	}
}

func TestOverflow_FreshWithoutTick(t *testing.T) {
	src := withPieces(12)
	tr := New(src, 100, 800)
	if !tr.ShowScrollButtons() {
		t.Fatal("Expected overflow with 12 pieces")
	}

	// 7 pieces need 770px and fit in 800px
	src.pieces = src.pieces[:7]
	if tr.ScrollWidth() != 770 {
		t.Errorf("Expected scroll width 770, got %v", tr.ScrollWidth())
	}
	if tr.ShowScrollButtons() {
		t.Error("Expected buttons hidden as soon as the pieces fit")
	}
}

func TestResize_Debounced(t *testing.T) {
	tr := New(withPieces(5), 100, 1000)
	if tr.ShowScrollButtons() {
		t.Fatal("Expected no overflow at 1000px")
	}

	tr.Resize(300, t0)
	tr.Tick(t0.Add(100 * time.Millisecond))
	tr.Resize(320, t0.Add(100*time.Millisecond))
	tr.Tick(t0.Add(200 * time.Millisecond))
	if tr.ShowScrollButtons() {
		t.Fatal("Resize applied before it settled")
	}

	tr.Tick(t0.Add(250 * time.Millisecond))
	if !tr.ShowScrollButtons() || tr.ClientWidth() != 320 {
		t.Errorf("Expected overflow at 320px, got buttons=%v width=%v", tr.ShowScrollButtons(), tr.ClientWidth())
	}
}

func TestScrollButtons_SmoothAndClamped(t *testing.T) {
	tr := New(withPieces(20), 100, 440)

	tr.ScrollRight()
	if math.Abs(tr.Target()-308) > 1e-9 {
		t.Fatalf("Expected target 308, got %v", tr.Target())
	}
	tr.Tick(t0)
	if tr.Offset() <= 0 || tr.Offset() >= tr.Target() {
		t.Errorf("Expected an intermediate offset after one frame, got %v", tr.Offset())
	}

	settle(tr, t0)
	if tr.Offset() != tr.Target() {
		t.Errorf("Expected to settle at %v, got %v", tr.Target(), tr.Offset())
	}

	for i := 0; i < 20; i++ {
		tr.ScrollRight()
	}
	settle(tr, t0)
	if limit := tr.ScrollWidth() - tr.ClientWidth(); tr.Offset() != limit {
		t.Errorf("Expected clamp at %v, got %v", limit, tr.Offset())
	}

	for i := 0; i < 20; i++ {
		tr.ScrollLeft()
	}
	settle(tr, t0)
	if tr.Offset() != 0 {
		t.Errorf("Expected clamp at 0, got %v", tr.Offset())
	}
}

func TestScroll_AdvancesByElapsedFrames(t *testing.T) {
	slow := New(withPieces(20), 100, 440)
	fast := New(withPieces(20), 100, 440)
	slow.ScrollRight()
	fast.ScrollRight()

	slow.Tick(t0)
	fast.Tick(t0)
	slow.Tick(t0.Add(time.Second / 60))
	fast.Tick(t0.Add(500 * time.Millisecond))

	if fast.Offset() <= slow.Offset() {
		t.Errorf("Expected a 500ms gap to move further than one frame, got %v <= %v", fast.Offset(), slow.Offset())
	}
	if fast.Offset() > fast.Target() {
		t.Errorf("Expected offset within target %v, got %v", fast.Target(), fast.Offset())
	}

	// a Tick earlier than the last frame moves nothing
	before := fast.Offset()
	fast.Tick(t0)
	if fast.Offset() != before {
		t.Errorf("Expected offset %v unchanged, got %v", before, fast.Offset())
	}
}

func TestWheel(t *testing.T) {
	tr := New(withPieces(20), 100, 440)

	if tr.Wheel(50, 10) {
		t.Error("Mostly horizontal gestures should be left to the browser")
	}
	if !tr.Wheel(0, 120) || tr.Offset() != 120 {
		t.Errorf("Expected offset 120, got %v", tr.Offset())
	}
	tr.Wheel(0, -1000)
	if tr.Offset() != 0 {
		t.Errorf("Expected clamp at 0, got %v", tr.Offset())
	}
}

func TestTray_FollowsEngine(t *testing.T) {
	e, err := jigsaw.New(jigsaw.Definition{Image: "a.png", Rows: 2, Cols: 3}, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetImageSize(jigsaw.Size{Width: 300, Height: 200}); err != nil {
		t.Fatal(err)
	}

	tr := New(e, 100, 1000)
	want := e.Unplaced()
	got := tr.Pieces()
	if len(got) != 6 {
		t.Fatalf("Expected 6 pieces, got %d", len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("Tray order differs from engine order at %d", i)
		}
	}

	p := got[0]
	e.Drop(p.ID, p.Correct)
	for _, q := range tr.Pieces() {
		if q.ID == p.ID {
			t.Error("Placed piece still shown in tray")
		}
	}
}
