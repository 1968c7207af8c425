package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mkoval/tend/internal/reconcile"
	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskDoneCmd())
	cmd.AddCommand(taskReopenCmd())
	cmd.AddCommand(taskWaitCmd())
	cmd.AddCommand(taskDeferCmd())
	cmd.AddCommand(taskDeleteCmd())
	return cmd
}

func taskListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			var statusPtr *task.Status
			if status != "" {
				st := task.Status(status)
				if !task.ValidStatus(st) {
					return fmt.Errorf("unknown status %q", status)
				}
				statusPtr = &st
			}
			items, err := store.List(cmd.Context(), statusPtr)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				log.Info().Msg("no tasks")
				return nil
			}
			now := time.Now()
			for _, item := range items {
				_, _ = io.WriteString(os.Stdout, formatTaskLine(item, now)+"\n")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (inbox|next|waiting|someday|completed)")
	return cmd
}

func formatTaskLine(t task.Task, now time.Time) string {
	due := "-"
	switch {
	case t.Overdue(now):
		due = styleOverdue.Render(t.DueDate.Format("2006-01-02"))
	case t.DueToday(now):
		due = styleDueSoon.Render("today")
	case t.DueDate != nil:
		due = t.DueDate.Format("2006-01-02")
	}
	line := fmt.Sprintf("%s\t%s\t%s\t%s", shortID(t.ID), renderStatus(t.Status), due, t.Title)
	if len(t.Contexts) > 0 {
		line += " " + styleContext.Render(strings.Join(t.Contexts, " "))
	}
	if t.Recurrence != "" {
		line += " " + styleDim.Render("("+t.Recurrence+")")
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task and its pending dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			out := os.Stdout
			fmt.Fprintf(out, "%s  %s\n", renderStatus(t.Status), t.Title)
			fmt.Fprintf(out, "id: %s\n", t.ID)
			if t.Description != "" {
				fmt.Fprintf(out, "description: %s\n", t.Description)
			}
			if len(t.Contexts) > 0 {
				fmt.Fprintf(out, "contexts: %s\n", strings.Join(t.Contexts, " "))
			}
			if t.Energy != "" {
				fmt.Fprintf(out, "energy: %s\n", t.Energy)
			}
			if t.TimeMinutes > 0 {
				fmt.Fprintf(out, "estimate: %d min\n", t.TimeMinutes)
			}
			if t.DueDate != nil {
				fmt.Fprintf(out, "due: %s\n", t.DueDate.Format("2006-01-02"))
			}
			if t.DeferDate != nil {
				fmt.Fprintf(out, "deferred until: %s\n", t.DeferDate.Format("2006-01-02"))
			}
			if t.Recurrence != "" {
				fmt.Fprintf(out, "recurrence: %s\n", t.Recurrence)
				if t.RecurrenceEnd != nil {
					fmt.Fprintf(out, "recurrence ends: %s\n", t.RecurrenceEnd.Format("2006-01-02"))
				}
			}
			if t.WaitingForNote != "" {
				fmt.Fprintf(out, "waiting for: %s\n", t.WaitingForNote)
			}
			for _, sub := range t.Subtasks {
				mark := "[ ]"
				if sub.Completed {
					mark = "[x]"
				}
				fmt.Fprintf(out, "  %s %s\n", mark, sub.Title)
			}
			if len(t.WaitingFor) > 0 {
				all, err := store.All(ctx)
				if err != nil {
					return err
				}
				pending := t.PendingDependencies(all)
				if len(pending) == 0 {
					fmt.Fprintln(out, "dependencies: all met")
				} else {
					fmt.Fprintln(out, "blocked on:")
					for _, dep := range pending {
						fmt.Fprintf(out, "  %s %s\n", shortID(dep.ID), dep.Title)
					}
				}
			}
			return nil
		},
	}
}

func taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task, spawning the next occurrence if it recurs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			done, spawned, err := reconcile.CompleteTask(cmd.Context(), store, t.ID, time.Now())
			if err != nil {
				return err
			}
			log.Info().Str("task_id", done.ID).Msg("task completed")
			if spawned != nil {
				log.Info().
					Str("task_id", spawned.ID).
					Str("due", spawned.DueDate.Format("2006-01-02")).
					Msg("next occurrence created")
			}
			return nil
		},
	}
}

func taskReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			if _, err := store.Reopen(cmd.Context(), t.ID, time.Now()); err != nil {
				return err
			}
			log.Info().Str("task_id", t.ID).Msg("task reopened")
			return nil
		},
	}
}

func taskWaitCmd() *cobra.Command {
	var dependsOn []string
	var note string
	cmd := &cobra.Command{
		Use:   "wait <id>",
		Short: "Mark a task as waiting, optionally blocked on other tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("task id is required")
			}
			if len(dependsOn) == 0 && note == "" {
				return fmt.Errorf("at least one --on id or a --note is required")
			}
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := cmd.Context()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			for _, dep := range dependsOn {
				depTask, err := resolveTask(cmd, store, dep)
				if err != nil {
					return err
				}
				if err := store.AddDependency(ctx, t.ID, depTask.ID); err != nil {
					return err
				}
			}
			if note != "" || len(dependsOn) == 0 {
				current, err := store.Get(ctx, t.ID)
				if err != nil {
					return err
				}
				current.Status = task.StatusWaiting
				if note != "" {
					current.WaitingForNote = note
				}
				current.UpdatedAt = time.Now().UTC()
				if err := store.Update(ctx, &current); err != nil {
					return err
				}
			}
			log.Info().Str("task_id", t.ID).Msg("task marked waiting")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&dependsOn, "on", nil, "task id this task waits for (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "free-text reason the task is waiting")
	return cmd
}

func taskDeferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defer <id> <date>",
		Short: "Hide a task from actionable views until a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			until, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("parse defer date: %w", err)
			}
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			t.DeferDate = &until
			t.UpdatedAt = time.Now().UTC()
			if err := store.Update(cmd.Context(), &t); err != nil {
				return err
			}
			log.Info().Str("task_id", t.ID).Str("until", args[1]).Msg("task deferred")
			return nil
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()
			t, err := resolveTask(cmd, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			log.Info().Str("task_id", t.ID).Msg("task deleted")
			return nil
		},
	}
}

// resolveTask accepts a full id or an unambiguous prefix.
func resolveTask(cmd *cobra.Command, store *task.Store, ref string) (task.Task, error) {
	ctx := cmd.Context()
	if t, err := store.Get(ctx, ref); err == nil {
		return t, nil
	}
	all, err := store.All(ctx)
	if err != nil {
		return task.Task{}, err
	}
	var matches []task.Task
	for _, t := range all {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return task.Task{}, fmt.Errorf("task %s not found", ref)
	default:
		return task.Task{}, fmt.Errorf("task id %s is ambiguous (%d matches)", ref, len(matches))
	}
}
