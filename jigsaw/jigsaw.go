// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package jigsaw

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrInvalidGrid  = errors.New("rows and cols must be positive")
	ErrInvalidImage = errors.New("image dimensions must be positive")
	ErrNotComplete  = errors.New("puzzle is not complete")
)

// Position is a cell on the puzzle board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Piece is one tile of the image
type Piece struct {
	ID      int      `json:"id"`
	Correct Position `json:"correct"`
	Placed  bool     `json:"placed"`
}

// Definition describes one puzzle of the album
type Definition struct {
	Image string
	Hint  string
	Rows  int
	Cols  int
}

// Validate checks the grid shape
func (d Definition) Validate() error {
	if d.Rows < 1 || d.Cols < 1 {
		return fmt.Errorf("%s: %w", d.Image, ErrInvalidGrid)
	}
	return nil
}

// Size is an image's pixel dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageSource resolves the pixel dimensions of an image resource
type ImageSource interface {
	Dimensions(ctx context.Context, image string) (Size, error)
}

// Engine holds the pieces of one puzzle and validates drops.
// It is not safe for concurrent use.
type Engine struct {
	def    Definition
	rng    *rand.Rand
	size   Size
	loaded bool

	pieces   []Piece // tray order
	placed   int
	complete bool

	// OnComplete fires once when the last piece is placed
	OnComplete func()
	// OnAdvance fires when Next is called on a completed puzzle
	OnAdvance func()
}

// New creates an engine for def. Pieces are generated once the image size is
// known (see Load and SetImageSize).
func New(def Definition, rng *rand.Rand) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{def: def, rng: rng}, nil
}

// Load queries the image dimensions and, once known, builds the pieces
func (e *Engine) Load(ctx context.Context, src ImageSource) error {
	size, err := src.Dimensions(ctx, e.def.Image)
	if err != nil {
		return fmt.Errorf("load %s: %w", e.def.Image, err)
	}
	return e.SetImageSize(size)
}

// SetImageSize records the image dimensions and shuffles a fresh set of pieces
func (e *Engine) SetImageSize(size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%s: %w", e.def.Image, ErrInvalidImage)
	}
	e.size = size
	e.loaded = true
	e.reset()
	return nil
}

func (e *Engine) reset() {
	rows, cols := e.def.Rows, e.def.Cols
	pieces := make([]Piece, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pieces = append(pieces, Piece{
				ID:      row*cols + col,
				Correct: Position{Row: row, Col: col},
			})
		}
	}
	e.rng.Shuffle(len(pieces), func(i, j int) {
		pieces[i], pieces[j] = pieces[j], pieces[i]
	})

	e.pieces = pieces
	e.placed = 0
	e.complete = false
}

// Definition returns the puzzle definition
func (e *Engine) Definition() Definition { return e.def }

// Loading reports whether the image dimensions are still unknown
func (e *Engine) Loading() bool { return !e.loaded }

// Pieces returns every piece in tray order
func (e *Engine) Pieces() []Piece {
	return append([]Piece(nil), e.pieces...)
}

// Unplaced returns the pieces still in the tray, in tray order
func (e *Engine) Unplaced() []Piece {
	out := make([]Piece, 0, len(e.pieces)-e.placed)
	for _, p := range e.pieces {
		if !p.Placed {
			out = append(out, p)
		}
	}
	return out
}

// PlacedAt returns the piece pinned at pos, if any
func (e *Engine) PlacedAt(pos Position) (Piece, bool) {
	for _, p := range e.pieces {
		if p.Placed && p.Correct == pos {
			return p, true
		}
	}
	return Piece{}, false
}

// Drop attempts to place piece id at pos. The drop is accepted only when pos
// is the piece's correct cell; rejected pieces stay in the tray.
func (e *Engine) Drop(id int, pos Position) bool {
	if !e.loaded || e.complete {
		return false
	}
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	p := &e.pieces[i]
	if p.Placed || p.Correct != pos {
		return false
	}

	p.Placed = true
	e.placed++
	if e.placed == len(e.pieces) {
		e.complete = true
		if e.OnComplete != nil {
			e.OnComplete()
		}
	}
	return true
}

func (e *Engine) indexOf(id int) int {
	for i, p := range e.pieces {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// PlacedCount returns the number of pieces on the board
func (e *Engine) PlacedCount() int { return e.placed }

// Completed reports whether every piece has been placed
func (e *Engine) Completed() bool { return e.complete }

// Hint returns the hint word, which is only revealed once complete
func (e *Engine) Hint() (string, bool) {
	if !e.complete {
		return "", false
	}
	return e.def.Hint, true
}

// Next resets the puzzle with a new shuffle and notifies OnAdvance.
// Only a completed puzzle can move on.
func (e *Engine) Next() error {
	if !e.complete {
		return ErrNotComplete
	}
	e.reset()
	if e.OnAdvance != nil {
		e.OnAdvance()
	}
	return nil
}
