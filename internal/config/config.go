// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvRoot        = "JOBBOARD_ROOT"
	EnvDB          = "JOBBOARD_DB"
	EnvRules       = "JOBBOARD_RULES"
	EnvMetricsAddr = "JOBBOARD_METRICS_ADDR"
	EnvSeed        = "JOBBOARD_SEED"
)

// Config holds everything the server needs to start.
type Config struct {
	// Root is the base directory; notices are written below it.
	Root string
	// DBPath is the SQLite database file.
	DBPath string
	// RulesPath optionally replaces the built-in indicator table.
	RulesPath string
	// MetricsAddr enables a Prometheus listener when non-empty.
	MetricsAddr string
	// Seed fills an empty database with demo data.
	Seed bool
}

// Load reads the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Root:        resolveBaseDir(),
		DBPath:      strings.TrimSpace(os.Getenv(EnvDB)),
		RulesPath:   ExpandHome(strings.TrimSpace(os.Getenv(EnvRules))),
		MetricsAddr: strings.TrimSpace(os.Getenv(EnvMetricsAddr)),
		Seed:        true,
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.Root, "data", "jobboard.db")
	}
	cfg.DBPath = ExpandHome(cfg.DBPath)

	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	if cfg.RulesPath != "" {
		if _, err := os.Stat(cfg.RulesPath); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvRules, err)
		}
	}
	return cfg, nil
}

func resolveBaseDir() string {
	if env := strings.TrimSpace(os.Getenv(EnvRoot)); env != "" {
		return ExpandHome(env)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if hasRepoLayout(cwd) {
		return cwd
	}
	parent := filepath.Dir(cwd)
	if hasRepoLayout(parent) {
		return parent
	}

	return cwd
}

func hasRepoLayout(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "data"))
	return err == nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
