package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultWidth and DefaultHeight define the tournament board.
const (
	DefaultWidth  = 20
	DefaultHeight = 20
)

// DefaultMaxTurns caps a game, which is a draw when it runs out.
const DefaultMaxTurns = 100

// DefaultGamesPerMatchup is the number of games each pair of agents plays.
const DefaultGamesPerMatchup = 3

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Width           int
	Height          int
	MaxTurns        int
	GamesPerMatchup int
	Seed            uint64
	LogLevel        zerolog.Level
	Agents          []AgentSpec
}

func Default() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MaxTurns:        DefaultMaxTurns,
		GamesPerMatchup: DefaultGamesPerMatchup,
		LogLevel:        zerolog.InfoLevel,
		Agents:          DefaultRoster(),
	}
}

// Load starts from the defaults, applies the variables found in envFile and then those set in
// the environment. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	cfg := Default()

	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range []string{"TRON_WIDTH", "TRON_HEIGHT", "TRON_MAX_TURNS", "TRON_GAMES", "TRON_SEED", "TRON_LOG_LEVEL"} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	if err := cfg.apply(vars); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(vars map[string]string) error {
	ints := map[string]*int{
		"TRON_WIDTH":     &c.Width,
		"TRON_HEIGHT":    &c.Height,
		"TRON_MAX_TURNS": &c.MaxTurns,
		"TRON_GAMES":     &c.GamesPerMatchup,
	}
	for key, field := range ints {
		v, ok := vars[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, v, err)
		}
		*field = n
	}

	if v, ok := vars["TRON_SEED"]; ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: TRON_SEED=%q: %w", ErrInvalidConfig, v, err)
		}
		c.Seed = seed
	}

	if v, ok := vars["TRON_LOG_LEVEL"]; ok {
		level, err := zerolog.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: TRON_LOG_LEVEL=%q: %w", ErrInvalidConfig, v, err)
		}
		c.LogLevel = level
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxTurns <= 0:
		return fmt.Errorf("%w: max turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	case c.GamesPerMatchup <= 0:
		return fmt.Errorf("%w: games per matchup must be positive, got %d", ErrInvalidConfig, c.GamesPerMatchup)
	}
	return ValidateRoster(c.Agents)
}
