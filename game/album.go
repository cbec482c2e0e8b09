// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import "github.com/danielhkuo/egghunt/jigsaw"

// DefaultFinalHint is shown on the code entry screen
const DefaultFinalHint = "Two Clowns Win Three Candies you Will get One if you read backwards but count as is"

// DefaultAlbum is the five-puzzle hunt
func DefaultAlbum(rows, cols int) []jigsaw.Definition {
	return []jigsaw.Definition{
		{Image: "penticton_illustration.png", Hint: "Three Candies", Rows: rows, Cols: cols},
		{Image: "penticton_animals.png", Hint: "One if you", Rows: rows, Cols: cols},
		{Image: "okanagan_ogopogo.png", Hint: "read backwards but count as is", Rows: rows, Cols: cols},
		{Image: "cat_champion.png", Hint: "you Will get", Rows: rows, Cols: cols},
		{Image: "winner_w_cloud.png", Hint: "Two Clowns Win", Rows: rows, Cols: cols},
	}
}

// Progress tracks the walk through the album
type Progress struct {
	Current   int
	Completed []bool
}

func newProgress(n int) Progress {
	return Progress{Completed: make([]bool, n)}
}

func (p Progress) clone() Progress {
	p.Completed = append([]bool(nil), p.Completed...)
	return p
}

// CompletedCount returns how many puzzles have been finished
func (p Progress) CompletedCount() int {
	n := 0
	for _, done := range p.Completed {
		if done {
			n++
		}
	}
	return n
}
