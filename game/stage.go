// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

// Stage is the phase of a game
type Stage int

const (
	StageIntro Stage = iota
	StageCountdown
	StagePuzzle
	StageCode
	StageWon
	StageLost
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageCountdown:
		return "countdown"
	case StagePuzzle:
		return "puzzle"
	case StageCode:
		return "code_entry"
	case StageWon:
		return "won"
	case StageLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game is over
func (s Stage) Terminal() bool {
	return s == StageWon || s == StageLost
}
