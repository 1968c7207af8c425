package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkoval/tend/internal/config"
	"github.com/mkoval/tend/internal/db"
	"github.com/mkoval/tend/internal/task"
	"github.com/spf13/viper"
)

// resolveDataDir picks the data directory: flag or TEND_DATA_DIR first,
// then the home directory default.
func resolveDataDir() (string, error) {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tend"), nil
}

func openStore() (*task.Store, config.Config, func(), error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, config.Config{}, func() {}, err
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, config.Config{}, func() {}, err
	}
	if cfg.DataDir != "" {
		dir = cfg.DataDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, config.Config{}, func() {}, fmt.Errorf("create data dir: %w", err)
	}
	storeDB, err := db.Open(filepath.Join(dir, "tend.db"))
	if err != nil {
		return nil, config.Config{}, func() {}, err
	}
	return task.NewStore(storeDB), cfg, func() { _ = storeDB.Close() }, nil
}

func templatesPath(cfg config.Config) (string, error) {
	if cfg.Templates != "" {
		return cfg.Templates, nil
	}
	dir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.yaml"), nil
}

func scoringWeights(cfg config.Config) task.Weights {
	return task.Weights{
		Overdue:  cfg.Scoring.Overdue,
		DueToday: cfg.Scoring.DueToday,
		DueSoon:  cfg.Scoring.DueSoon,
		Priority: cfg.Scoring.Priority,
		Next:     cfg.Scoring.Next,
	}
}
