package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskcal/internal/duedate"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

var errEmptyText = errors.New("task text is empty")

func newAddCmd(e *env) *cobra.Command {
	var priority, due string
	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a task",
		Long: `Add a task. The words of TEXT are joined with spaces.

Examples:
  taskcal add Buy milk
  taskcal add -p high -d 2024-06-01 Call dentist
  taskcal add -d "next friday" Submit report`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if priority != "" {
				p, ok := task.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority %q (want low, medium or high)", priority)
				}
				e.session.SetPendingPriority(p)
			}
			if due != "" {
				d, err := duedate.Parse(due, e.session.Now())
				if err != nil {
					return err
				}
				e.session.SetPendingDue(d)
			}

			t, ok, err := e.session.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return errEmptyText
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: low, medium, high (default from config)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date: YYYY-MM-DD or natural language")
	return cmd
}

// queryFlags are the shared --status/--search flags of list and calendar.
type queryFlags struct {
	status string
	search string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.status, "status", "s", "", "Filter: all, pending, completed (default from config)")
	cmd.Flags().StringVarP(&q.search, "search", "q", "", "Case-insensitive text search")
}

func (q *queryFlags) apply(e *env) error {
	if q.status != "" {
		st, ok := view.ParseStatus(q.status)
		if !ok {
			return fmt.Errorf("invalid status %q (want all, pending or completed)", q.status)
		}
		e.session.SetFilter(st)
	}
	e.session.SetSearch(q.search)
	return nil
}

func newListCmd(e *env) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := q.apply(e); err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), e.session.Snapshot())
		},
	}
	q.register(cmd)
	return cmd
}

func newToggleCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle ID",
		Aliases: []string{"done"},
		Short:   "Flip a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.session.Tasks().Resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := e.session.Toggle(t.ID); err != nil {
				return err
			}
			verb := "Completed"
			if t.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.session.Tasks().Resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := e.session.Delete(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStats(cmd.OutOrStdout(), e.session.Snapshot().Stats)
			return nil
		},
	}
}
