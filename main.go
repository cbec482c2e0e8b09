package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/egghunt/cliparse"
	"github.com/danielhkuo/egghunt/db"
	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/images"
	"github.com/danielhkuo/egghunt/middleware"
	"github.com/danielhkuo/egghunt/router"
	"github.com/danielhkuo/egghunt/session"
)

const shutdownTimeout = 10 * time.Second

// setupLogger prints text to a terminal and JSON everywhere else
func setupLogger() {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func main() {
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	setupLogger()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	gameCfg, err := cliparse.ParseGameConfig()
	if err != nil {
		slog.Error("Error parsing game config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect and verify
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	assets := images.New(os.DirFS(cfg.AssetsDir))
	sessions := session.NewManager(session.Config{
		NewGame: func(id string) (*game.Game, error) {
			return game.New(game.Config{
				Album:      game.DefaultAlbum(gameCfg.PuzzleRows, gameCfg.PuzzleCols),
				FinalHint:  game.DefaultFinalHint,
				Passcode:   gameCfg.Passcode,
				TimerStart: gameCfg.Timer,
				Source:     assets,
				Logger:     slog.Default().With("game_id", id),
			})
		},
		TTL:    gameCfg.SessionTTL,
		Record: db.RecordGameResult(dbConn),
	})

	// Create router
	mux := router.NewRouter(dbConn, cfg, sessions)

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "assets", cfg.AssetsDir)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(ctx)
	})

	g.Go(func() error {
		// Wait for Ctrl-C signal or a failed server
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed", "live_games", sessions.Len())
}
