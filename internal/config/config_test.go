package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 7, cfg.DueSoonDays)
	assert.Equal(t, float64(10), cfg.Scoring.Overdue)
	assert.Equal(t, float64(2), cfg.Scoring.Next)
	assert.Empty(t, cfg.DataDir)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings map[string]any
		wantErr  string
	}{
		{
			name:     "empty settings",
			settings: map[string]any{},
		},
		{
			name: "full settings",
			settings: map[string]any{
				"data_dir":      "/tmp/tend",
				"due_soon_days": 14,
				"templates":     "templates.yaml",
				"scoring": map[string]any{
					"overdue":   20.0,
					"due_today": 6.0,
				},
			},
		},
		{
			name:     "unknown top-level key",
			settings: map[string]any{"horizon": 3},
			wantErr:  "Additional property horizon is not allowed",
		},
		{
			name:     "wrong type",
			settings: map[string]any{"due_soon_days": "seven"},
			wantErr:  "Invalid type",
		},
		{
			name:     "zero horizon",
			settings: map[string]any{"due_soon_days": 0},
			wantErr:  "Must be greater than or equal to 1",
		},
		{
			name: "unknown scoring key",
			settings: map[string]any{
				"scoring": map[string]any{"lucky": 1.0},
			},
			wantErr: "Additional property lucky is not allowed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSettings(tt.settings)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
