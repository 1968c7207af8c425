package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review overdue and upcoming tasks and get a suggested next action",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			all, err := store.All(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			out := os.Stdout

			var overdue, dueSoon, waiting []task.Task
			for _, t := range all {
				switch {
				case t.Overdue(now):
					overdue = append(overdue, t)
				case t.DueWithin(now, cfg.DueSoonDays):
					dueSoon = append(dueSoon, t)
				}
				if t.Status == task.StatusWaiting && !t.Completed {
					waiting = append(waiting, t)
				}
			}

			printSection(out, styleOverdue.Render("Overdue"), overdue, now)
			printSection(out, styleDueSoon.Render(fmt.Sprintf("Due within %d days", cfg.DueSoonDays)), dueSoon, now)
			printSection(out, "Waiting", waiting, now)

			selected, reason, err := task.SelectNext(all, now, cfg.DueSoonDays, scoringWeights(cfg))
			if err != nil {
				log.Info().Msg("no actionable tasks")
				return nil
			}
			fmt.Fprintf(out, "\nSuggested next action:\n%s\n", formatTaskLine(selected, now))
			log.Debug().Str("task_id", selected.ID).Str("reason", reason).Msg("next action selected")
			return nil
		},
	}
	return cmd
}

func printSection(out io.Writer, header string, items []task.Task, now time.Time) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s\n", header)
	for _, t := range items {
		fmt.Fprintf(out, "  %s\n", formatTaskLine(t, now))
	}
	fmt.Fprintln(out)
}
