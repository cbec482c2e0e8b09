// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/egghunt/jigsaw"
	"github.com/danielhkuo/egghunt/selector"
	"github.com/danielhkuo/egghunt/timer"
	"github.com/danielhkuo/egghunt/tray"
)

// DefaultTrayWidth is the visible tray width assumed when none is configured
const DefaultTrayWidth = 800

var (
	ErrEmptyAlbum      = errors.New("album needs at least one puzzle")
	ErrPasscodeLength  = errors.New("passcode length does not match code length")
	ErrNoImageSource   = errors.New("image source is required")
	ErrWrongStage      = errors.New("action not allowed in current stage")
	ErrSelectorIndex   = errors.New("selector index out of range")
	ErrNothingToLoad   = errors.New("current puzzle is already loaded")
	ErrInvalidSymbols  = errors.New("selector symbols are invalid")
	ErrInitialNotFound = errors.New("initial code symbol is not a selector option")
	ErrImageLoad       = errors.New("puzzle image failed to load")
)

// Config assembles a game
type Config struct {
	Album      []jigsaw.Definition
	FinalHint  string
	Passcode   string
	TimerStart string
	Source     jigsaw.ImageSource

	// Optional
	Symbols     [CodeLength][]rune
	InitialCode Code
	TrayWidth   float64
	Rand        *rand.Rand
	Logger      *slog.Logger
}

// Game walks one player through countdown, puzzles and code entry.
// It is not safe for concurrent use; hosts serialize calls.
type Game struct {
	album     []jigsaw.Definition
	finalHint string
	passcode  string
	source    jigsaw.ImageSource
	symbols   [CodeLength][]rune
	trayWidth float64
	rng       *rand.Rand
	log       *slog.Logger

	stage     Stage
	progress  Progress
	countdown *timer.Countdown
	engine    *jigsaw.Engine
	tray      *tray.Tray
	loadErr   error

	code      Code
	submitted bool
	selectors [CodeLength]*selector.Selector[rune]

	startedAt  time.Time
	finishedAt time.Time
	now        time.Time
}

// New validates cfg and returns a game in the Intro stage
func New(cfg Config) (*Game, error) {
	if len(cfg.Album) == 0 {
		return nil, ErrEmptyAlbum
	}
	for _, d := range cfg.Album {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	if len([]rune(cfg.Passcode)) != CodeLength {
		return nil, ErrPasscodeLength
	}
	if cfg.Source == nil {
		return nil, ErrNoImageSource
	}

	symbols := cfg.Symbols
	if unsetSymbols(symbols) {
		symbols = DefaultSymbols()
	}
	code := cfg.InitialCode
	if code == (Code{}) {
		code = DefaultCode
	}
	for i, opts := range symbols {
		// same checks enterCodeEntry relies on
		if _, err := selector.New(opts, nil); err != nil {
			return nil, fmt.Errorf("selector %d: %w: %w", i, ErrInvalidSymbols, err)
		}
		if !containsRune(opts, code[i]) {
			return nil, fmt.Errorf("selector %d: %q: %w", i, code[i], ErrInitialNotFound)
		}
	}
	passcode, _ := ParseCode(cfg.Passcode)
	if err := passcode.Reachable(symbols); err != nil {
		return nil, fmt.Errorf("passcode: %w", err)
	}

	trayWidth := cfg.TrayWidth
	if trayWidth <= 0 {
		trayWidth = DefaultTrayWidth
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		album:     append([]jigsaw.Definition(nil), cfg.Album...),
		finalHint: cfg.FinalHint,
		passcode:  cfg.Passcode,
		source:    cfg.Source,
		symbols:   symbols,
		trayWidth: trayWidth,
		rng:       rng,
		log:       logger,
		stage:     StageIntro,
		progress:  newProgress(len(cfg.Album)),
		code:      code,
	}

	g.countdown = timer.New(cfg.TimerStart)
	g.countdown.OnStart = g.onTimerStart
	g.countdown.OnComplete = g.onTimerComplete

	return g, nil
}

func unsetSymbols(symbols [CodeLength][]rune) bool {
	for _, s := range symbols {
		if s != nil {
			return false
		}
	}
	return true
}

func containsRune(opts []rune, r rune) bool {
	for _, o := range opts {
		if o == r {
			return true
		}
	}
	return false
}

// Start begins the countdown and loads the first puzzle. A load failure
// leaves the game in StageCountdown; call Load to retry.
func (g *Game) Start(ctx context.Context, now time.Time) error {
	if g.stage != StageIntro {
		return ErrWrongStage
	}
	g.now = now
	g.countdown.Start(now)
	if g.stage.Terminal() {
		return nil
	}
	return g.Load(ctx)
}

func (g *Game) onTimerStart() {
	g.startedAt = g.now
	g.setStage(StageCountdown)
	g.newEngine()
}

func (g *Game) onTimerComplete() {
	if g.stage.Terminal() {
		return
	}
	// Tick may run late; the game ended when the countdown hit zero
	g.now = g.startedAt.Add(time.Duration(g.countdown.Initial()) * time.Second)
	g.finish(StageLost)
}

// Load resolves the current puzzle's image. It is called by Start and Next
// and may be called again after a failure.
func (g *Game) Load(ctx context.Context) error {
	if g.stage != StageCountdown && g.stage != StagePuzzle {
		return ErrWrongStage
	}
	if !g.engine.Loading() {
		return ErrNothingToLoad
	}

	if err := g.engine.Load(ctx, g.source); err != nil {
		g.loadErr = err
		g.log.Warn("puzzle image failed to load",
			"puzzle", g.progress.Current,
			"image", g.album[g.progress.Current].Image,
			"error", err,
		)
		return fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	g.loadErr = nil

	geo, _ := g.engine.Geometry()
	g.tray = tray.New(g.engine, float64(geo.PieceWidth), g.trayWidth)
	if g.stage == StageCountdown {
		g.setStage(StagePuzzle)
	}
	return nil
}

func (g *Game) newEngine() {
	def := g.album[g.progress.Current]
	// definitions were validated in New
	e, _ := jigsaw.New(def, g.rng)
	e.OnComplete = func() {
		g.log.Info("puzzle completed", "puzzle", g.progress.Current, "hint", def.Hint)
	}
	e.OnAdvance = g.advance
	g.engine = e
	g.tray = nil
	g.loadErr = nil
}

// Drop places a piece on the current puzzle
func (g *Game) Drop(id int, pos jigsaw.Position) (bool, error) {
	if g.stage != StagePuzzle {
		return false, ErrWrongStage
	}
	ok := g.engine.Drop(id, pos)
	if ok && g.tray != nil {
		g.tray.Sync()
	}
	return ok, nil
}

// Next moves past a completed puzzle: to the next image, or to code entry
// after the last one.
func (g *Game) Next(ctx context.Context) error {
	if g.stage != StagePuzzle {
		return ErrWrongStage
	}
	if err := g.engine.Next(); err != nil {
		return err
	}
	if g.stage == StagePuzzle {
		return g.Load(ctx)
	}
	return nil
}

func (g *Game) advance() {
	g.progress.Completed[g.progress.Current] = true
	g.progress.Current++

	if g.progress.Current == len(g.album) {
		g.engine = nil
		g.tray = nil
		g.enterCodeEntry()
		return
	}
	g.newEngine()
	g.log.Info("next puzzle", "puzzle", g.progress.Current)
}

func (g *Game) enterCodeEntry() {
	for i := range g.selectors {
		i := i
		s, err := selector.NewWithInitial(g.symbols[i], g.code[i], func(r rune) {
			g.code[i] = r
		})
		if err != nil {
			// symbols were validated in New
			panic(fmt.Sprintf("selector %d: %v", i, err))
		}
		g.selectors[i] = s
	}
	g.setStage(StageCode)
}

// ActiveTray returns the loaded puzzle's tray for direct input handling
func (g *Game) ActiveTray() (*tray.Tray, error) {
	if g.stage != StagePuzzle || g.tray == nil {
		return nil, ErrWrongStage
	}
	return g.tray, nil
}

// Selector returns the i-th code selector for direct input handling
func (g *Game) Selector(i int) (*selector.Selector[rune], error) {
	if g.stage != StageCode {
		return nil, ErrWrongStage
	}
	if i < 0 || i >= CodeLength {
		return nil, ErrSelectorIndex
	}
	return g.selectors[i], nil
}

// Step moves selector i one symbol up or down
func (g *Game) Step(i int, d selector.Direction, now time.Time) (bool, error) {
	s, err := g.Selector(i)
	if err != nil {
		return false, err
	}
	return s.Step(d, now), nil
}

// Submit compares the entered code against the passcode. The game ends
// either way, so only the first submission counts. A selector still
// animating has not committed its new symbol, so the code submitted is the
// one from before that step.
func (g *Game) Submit(now time.Time) (Stage, error) {
	if g.stage != StageCode {
		return g.stage, ErrWrongStage
	}
	g.now = now
	g.submitted = true

	entered := g.code.String()
	if subtle.ConstantTimeCompare([]byte(entered), []byte(g.passcode)) == 1 {
		g.finish(StageWon)
	} else {
		g.finish(StageLost)
	}
	return g.stage, nil
}

func (g *Game) finish(s Stage) {
	g.countdown.Stop()
	g.finishedAt = g.now
	g.setStage(s)
}

// Tick advances the countdown, the tray and the selectors to now
func (g *Game) Tick(now time.Time) {
	if g.stage.Terminal() {
		return
	}
	g.now = now
	g.countdown.Tick(now)
	if g.stage.Terminal() {
		return
	}
	if g.tray != nil {
		g.tray.Tick(now)
	}
	if g.stage == StageCode {
		for _, s := range g.selectors {
			s.Tick(now)
		}
	}
}

func (g *Game) setStage(s Stage) {
	if g.stage == s {
		return
	}
	g.log.Info("stage changed", "from", g.stage, "to", s, "puzzle", g.progress.Current)
	g.stage = s
}

// Stage returns the active stage
func (g *Game) Stage() Stage { return g.stage }

// PuzzleIndex is the album position of the active puzzle
func (g *Game) PuzzleIndex() int { return g.progress.Current }

// Progress returns a copy of the album progress
func (g *Game) Progress() Progress { return g.progress.clone() }

// Album returns a copy of the puzzle definitions
func (g *Game) Album() []jigsaw.Definition {
	return append([]jigsaw.Definition(nil), g.album...)
}

// Engine returns the active puzzle, or nil outside the puzzle stages
func (g *Game) Engine() *jigsaw.Engine { return g.engine }

// Tray returns the active puzzle's tray, or nil while loading
func (g *Game) Tray() *tray.Tray { return g.tray }

// LoadErr returns the last image load failure of the active puzzle
func (g *Game) LoadErr() error { return g.loadErr }

// Countdown returns the game timer
func (g *Game) Countdown() *timer.Countdown { return g.countdown }

// Code returns the entered code
func (g *Game) Code() Code { return g.code }

// Submitted returns the code the game was decided with. It reports false
// when the game ended any other way or is still running.
func (g *Game) Submitted() (Code, bool) {
	return g.code, g.submitted
}

// FinalHint is the riddle shown during code entry
func (g *Game) FinalHint() string { return g.finalHint }

// StartedAt is when the countdown was started
func (g *Game) StartedAt() time.Time { return g.startedAt }

// FinishedAt is when the game was won or lost
func (g *Game) FinishedAt() time.Time { return g.finishedAt }
