// Package config provides configuration loading and management for tend.
package config

// Config is the root configuration.
type Config struct {
	DataDir     string  `json:"data_dir,omitempty"  mapstructure:"data_dir"`
	DueSoonDays int     `json:"due_soon_days"       mapstructure:"due_soon_days"`
	Templates   string  `json:"templates,omitempty" mapstructure:"templates"`
	Scoring     Scoring `json:"scoring"             mapstructure:"scoring"`
}

// Scoring is the weight table behind next-action selection.
type Scoring struct {
	Overdue  float64 `json:"overdue"   mapstructure:"overdue"`
	DueToday float64 `json:"due_today" mapstructure:"due_today"`
	DueSoon  float64 `json:"due_soon"  mapstructure:"due_soon"`
	Priority float64 `json:"priority"  mapstructure:"priority"`
	Next     float64 `json:"next"      mapstructure:"next"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DueSoonDays: 7,
		Scoring: Scoring{
			Overdue:  10,
			DueToday: 6,
			DueSoon:  3,
			Priority: 4,
			Next:     2,
		},
	}
}
