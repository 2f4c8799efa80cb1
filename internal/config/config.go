// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fortuna/halfcourt/internal/export"
)

// Config holds all runtime settings. Every field has a default so the tool
// runs with no environment at all.
type Config struct {
	// APIBase is the ESPN site API root for men's college basketball.
	APIBase string `env:"HALFCOURT_API_BASE" envDefault:"https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"`

	// GamePageBase is the public game page root, used for date scraping.
	GamePageBase string `env:"HALFCOURT_GAME_PAGE_BASE" envDefault:"https://www.espn.com/mens-college-basketball/game/_/gameId"`

	// GameIDs is the fixed list of ESPN event ids to process.
	GameIDs []string `env:"HALFCOURT_GAME_IDS" envSeparator:"," envDefault:"401082698,401082763,401082803,401082851,401082888"`

	// Player is the player whose per-half scoring is summarized.
	Player string `env:"HALFCOURT_PLAYER" envDefault:"Kyle Guy"`

	// OutputDir receives the exported CSV and rendered charts.
	OutputDir string `env:"HALFCOURT_OUT" envDefault:"out"`

	// RequestInterval spaces consecutive fetches.
	RequestInterval time.Duration `env:"HALFCOURT_REQUEST_INTERVAL" envDefault:"2s"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `env:"HALFCOURT_TIMEOUT" envDefault:"30s"`

	// Headless enables the rendering-browser fallback for game pages.
	Headless bool `env:"HALFCOURT_HEADLESS" envDefault:"false"`

	// Port is the listen port for the serve command.
	Port string `env:"HALFCOURT_PORT" envDefault:"8080"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if len(cfg.GameIDs) == 0 {
		return cfg, fmt.Errorf("no game ids configured")
	}
	for _, id := range cfg.GameIDs {
		if strings.TrimSpace(id) == "" {
			return cfg, fmt.Errorf("blank game id in HALFCOURT_GAME_IDS")
		}
	}
	return cfg, nil
}

// PlaysPath is the fixed location of the exported play table.
func (c Config) PlaysPath() string {
	return filepath.Join(c.OutputDir, export.PlaysFile)
}
