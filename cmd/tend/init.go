package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkoval/tend/internal/db"
	"github.com/mkoval/tend/internal/reconcile"
	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the tend data directory",
		Long:  "Initialize the tend data directory: create it, install a default config and sample templates, and run migrations plus a consistency pass over any imported store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir()
			if err != nil {
				return err
			}
			log.Info().Str("dir", dir).Msg("creating data directory")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			configPath := filepath.Join(dir, "config.json")
			if _, err := os.Stat(configPath); err == nil {
				log.Info().Msg("config.json already exists, skipping")
			} else {
				log.Info().Str("path", configPath).Msg("installing default config")
				defaultConfig := map[string]any{
					"due_soon_days": 7,
					"scoring": map[string]any{
						"overdue":   10,
						"due_today": 6,
						"due_soon":  3,
						"priority":  4,
						"next":      2,
					},
				}
				data, err := json.MarshalIndent(defaultConfig, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal default config: %w", err)
				}
				if err := os.WriteFile(configPath, data, 0o644); err != nil {
					return fmt.Errorf("write default config: %w", err)
				}
			}

			templatesFile := filepath.Join(dir, "templates.yaml")
			if _, err := os.Stat(templatesFile); os.IsNotExist(err) {
				log.Info().Str("path", templatesFile).Msg("installing sample templates")
				if err := os.WriteFile(templatesFile, []byte(sampleTemplates), 0o644); err != nil {
					return fmt.Errorf("write templates: %w", err)
				}
			}

			storeDB, err := db.Open(filepath.Join(dir, "tend.db"))
			if err != nil {
				return err
			}
			defer func() { _ = storeDB.Close() }()

			promoted, err := reconcile.Pass(cmd.Context(), task.NewStore(storeDB), time.Now())
			if err != nil {
				return err
			}
			if promoted > 0 {
				log.Info().Int("promoted", promoted).Msg("waiting tasks promoted during startup pass")
			}
			log.Info().Msg("tend initialized")
			return nil
		},
	}
}

const sampleTemplates = `# Named task templates for "tend add --template <name>".
weekly-review:
  title: Weekly review
  contexts: ["@home"]
  energy: medium
  time_minutes: 60
  recurrence: weekly
  subtasks:
    - Empty inbox
    - Review waiting list
    - Review someday list
expense-report:
  title: File expense report
  contexts: ["@work", "@computer"]
  energy: low
  time_minutes: 30
  recurrence: monthly
`
