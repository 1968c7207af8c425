package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkoval/tend/internal/quickadd"
	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var templateName string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task from free text or a template",
		Long: `Add a task. Free text is parsed for metadata: @contexts (or bare words
like "home"), "<level> energy", time estimates ("30 min", "2 hours"),
recurrence ("weekly", "every month"), priority words ("urgent") and due
dates ("tomorrow", "next friday", "in 3 days", "6/15"). What remains
becomes the title.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			now := time.Now()

			if templateName != "" {
				path, err := templatesPath(cfg)
				if err != nil {
					return err
				}
				templates, err := task.LoadTemplates(path)
				if err != nil {
					return err
				}
				tpl, ok := templates[templateName]
				if !ok {
					return fmt.Errorf("template %q not found in %s", templateName, path)
				}
				t := tpl.Instantiate(now)
				if err := store.Create(ctx, &t); err != nil {
					return err
				}
				log.Info().Str("task_id", t.ID).Str("template", templateName).Msg("task added")
				return nil
			}

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("task text is required")
			}
			parsed := quickadd.Parse(text, now)
			if parsed.Title == "" {
				return fmt.Errorf("no title left after extraction")
			}
			t := task.FromQuickAdd(parsed, now)
			if err := store.Create(ctx, &t); err != nil {
				return err
			}
			log.Info().
				Str("task_id", t.ID).
				Strs("contexts", t.Contexts).
				Str("recurrence", t.Recurrence).
				Msg("task added")
			if t.DueDate != nil {
				log.Info().Str("due", t.DueDate.Format("2006-01-02")).Msg("due date extracted")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templateName, "template", "", "create from a named template instead of free text")
	return cmd
}
