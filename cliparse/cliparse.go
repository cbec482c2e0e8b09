package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/egghunt/game"
	"github.com/danielhkuo/egghunt/timer"
)

const (
	DefaultPort     = 3001
	DefaultTokenTTL = 24 * time.Hour
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenSecret  string
	TokenTTL     time.Duration
	AssetsDir    string
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are skipped and variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl string

	fs := flag.NewFlagSet("egghunt", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.AssetsDir, "assets", "", "Directory holding the puzzle images")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Token signing secret (prefer env)")
	fs.StringVar(&ttl, "token-ttl", "", "Token lifetime, e.g. 12h or 7d")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.AssetsDir == "" {
		cfg.AssetsDir = os.Getenv("ASSETS_DIR")
		if cfg.AssetsDir == "" {
			cfg.AssetsDir = "assets"
		}
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if ttl == "" {
		ttl = os.Getenv("JWT_EXPIRES_IN")
	}
	cfg.TokenTTL = DefaultTokenTTL
	if ttl != "" {
		d, err := ParseTTL(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid token ttl: %w", err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

// ParseTTL accepts a Go duration ("12h", "90m") or a whole number of days ("7d")
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("ttl must be positive, got %s", s)
	}
	return d, nil
}

// GameConfig tunes the hunt itself
type GameConfig struct {
	Passcode   string        `env:"GAME_PASSCODE,required"`
	Timer      string        `env:"GAME_TIMER" envDefault:"59:59"`
	PuzzleRows int           `env:"GAME_PUZZLE_ROWS" envDefault:"3"`
	PuzzleCols int           `env:"GAME_PUZZLE_COLS" envDefault:"4"`
	SessionTTL time.Duration `env:"GAME_SESSION_TTL" envDefault:"2h"`
}

// ParseGameConfig reads GameConfig from the process environment
func ParseGameConfig() (GameConfig, error) {
	return parseGameConfig(env.Options{})
}

func parseGameConfig(opts env.Options) (GameConfig, error) {
	var cfg GameConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return GameConfig{}, fmt.Errorf("game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate checks the values env parsing cannot
func (c GameConfig) Validate() error {
	code, err := game.ParseCode(c.Passcode)
	if err != nil {
		return fmt.Errorf("GAME_PASSCODE: %w", err)
	}
	if err := code.Reachable(game.DefaultSymbols()); err != nil {
		return fmt.Errorf("GAME_PASSCODE: %w", err)
	}
	if err := timer.ValidateClock(c.Timer); err != nil {
		return fmt.Errorf("GAME_TIMER: %w", err)
	}
	if c.PuzzleRows < 1 || c.PuzzleCols < 1 {
		return errors.New("GAME_PUZZLE_ROWS and GAME_PUZZLE_COLS must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("GAME_SESSION_TTL must be positive")
	}
	return nil
}
