package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mkoval/tend/internal/config"
	"github.com/spf13/viper"
)

func loadConfig(dir string) (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = filepath.Join(dir, "config.json")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := config.ValidateSettings(v.AllSettings()); err != nil {
		return config.Config{}, err
	}
	cfg := config.Default()
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToSliceHookFunc(","))); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DueSoonDays <= 0 {
		cfg.DueSoonDays = config.Default().DueSoonDays
	}
	return cfg, nil
}
