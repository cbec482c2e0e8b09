// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package jigsaw

// Rect is a pixel rectangle on the board
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Geometry is the pixel layout of a loaded puzzle
type Geometry struct {
	Image       Size `json:"image"`
	PieceWidth  int  `json:"piece_width"`
	PieceHeight int  `json:"piece_height"`
}

// Geometry returns the board layout. It is unavailable while loading.
func (e *Engine) Geometry() (Geometry, bool) {
	if !e.loaded {
		return Geometry{}, false
	}
	return Geometry{
		Image:       e.size,
		PieceWidth:  e.size.Width / e.def.Cols,
		PieceHeight: e.size.Height / e.def.Rows,
	}, true
}

// Slot is the board rectangle of a cell
func (g Geometry) Slot(pos Position) Rect {
	return Rect{
		X:      pos.Col * g.PieceWidth,
		Y:      pos.Row * g.PieceHeight,
		Width:  g.PieceWidth,
		Height: g.PieceHeight,
	}
}

// BackgroundOffset is the image offset that shows p's part of the picture
func (g Geometry) BackgroundOffset(p Piece) (x, y int) {
	return -p.Correct.Col * g.PieceWidth, -p.Correct.Row * g.PieceHeight
}
