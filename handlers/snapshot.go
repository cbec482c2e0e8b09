// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/jigsaw"
	"github.com/danielhkuo/egghunt/models"
)

// snapshot captures everything a client needs to render g at now.
// Must be called while holding the session lock.
func snapshot(id string, g *game.Game, now time.Time) models.GameSnapshot {
	progress := g.Progress()
	snap := models.GameSnapshot{
		ID:        id,
		Stage:     g.Stage().String(),
		Clock:     g.Countdown().Format(),
		Remaining: g.Countdown().Remaining(),
		Progress: models.ProgressView{
			Current:   progress.Current,
			Total:     len(progress.Completed),
			Completed: progress.Completed,
		},
	}

	if started := g.StartedAt(); !started.IsZero() {
		snap.StartedAt = &started
		snap.Started = humanize.RelTime(started, now, "ago", "from now")
	}
	if finished := g.FinishedAt(); !finished.IsZero() {
		snap.FinishedAt = &finished
	}

	switch g.Stage() {
	case game.StageCountdown, game.StagePuzzle:
		snap.Puzzle = puzzleSnapshot(g)
	case game.StageCode:
		snap.Code = codeSnapshot(g)
	case game.StageWon, game.StageLost:
		if code, ok := g.Submitted(); ok {
			snap.Code = &models.CodeSnapshot{Code: code.String(), FinalHint: g.FinalHint()}
		}
	}
	return snap
}

func pieceView(p jigsaw.Piece) models.PieceView {
	return models.PieceView{ID: p.ID, Row: p.Correct.Row, Col: p.Correct.Col}
}

func puzzleSnapshot(g *game.Game) *models.PuzzleSnapshot {
	e := g.Engine()
	if e == nil {
		return nil
	}
	def := e.Definition()
	ps := &models.PuzzleSnapshot{
		Index:    g.PuzzleIndex(),
		Image:    def.Image,
		Rows:     def.Rows,
		Cols:     def.Cols,
		Loading:  e.Loading(),
		Tray:     []models.PieceView{},
		Placed:   []models.PieceView{},
		Complete: e.Completed(),
	}
	if err := g.LoadErr(); err != nil {
		ps.LoadError = err.Error()
	}
	if geo, ok := e.Geometry(); ok {
		ps.PieceWidth = geo.PieceWidth
		ps.PieceHeight = geo.PieceHeight
	}
	if t := g.Tray(); t != nil {
		for _, p := range t.Pieces() {
			ps.Tray = append(ps.Tray, pieceView(p))
		}
		ps.ScrollTray = t.ShowScrollButtons()
		ps.TrayView = &models.TrayView{
			Offset:        t.Offset(),
			Target:        t.Target(),
			ScrollWidth:   t.ScrollWidth(),
			ClientWidth:   t.ClientWidth(),
			Scrolling:     t.Scrolling(),
			ResizePending: t.ResizePending(),
		}
	}
	for _, p := range e.Pieces() {
		if p.Placed {
			ps.Placed = append(ps.Placed, pieceView(p))
		}
	}
	if hint, ok := e.Hint(); ok {
		ps.Hint = hint
	}
	return ps
}

func codeSnapshot(g *game.Game) *models.CodeSnapshot {
	cs := &models.CodeSnapshot{
		Code:      g.Code().String(),
		FinalHint: g.FinalHint(),
		Selectors: make([]models.SelectorView, 0, game.CodeLength),
	}
	for i := range game.CodeLength {
		s, err := g.Selector(i)
		if err != nil {
			continue
		}
		opts := make([]string, 0, s.Len())
		for _, r := range s.Options() {
			opts = append(opts, string(r))
		}
		items := make([]models.SelectorItemView, 0, s.Len())
		for _, it := range s.Items() {
			items = append(items, models.SelectorItemView{
				Value:    string(it.Value),
				Selected: it.Selected,
				Scale:    it.Scale,
				Opacity:  it.Opacity,
			})
		}
		cs.Selectors = append(cs.Selectors, models.SelectorView{
			Index:       i,
			Value:       string(s.Value()),
			Options:     opts,
			State:       s.State().String(),
			Animating:   s.Animating(),
			CanStepUp:   s.CanStepUp(),
			CanStepDown: s.CanStepDown(),
			TranslateY:  s.TranslateY(),
			Height:      s.ContainerHeight(),
			Items:       items,
		})
	}
	return cs
}
