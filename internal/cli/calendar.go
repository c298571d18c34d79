package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskcal/internal/calendar"
	"taskcal/internal/view"
)

func newCalendarCmd(e *env) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show this month's tasks by due date",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := q.apply(e); err != nil {
				return err
			}
			snap := e.session.Snapshot()
			month := calendar.Build(snap.Visible, snap.Now, e.session.WeekStart())
			printCalendar(cmd.OutOrStdout(), month, snap.Now)
			return nil
		},
	}
	q.register(cmd)
	return cmd
}

func newModeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [list|calendar]",
		Short:     "Print or set the display mode the interactive view opens in",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(view.ModeList), string(view.ModeCalendar)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				m, ok := view.ParseMode(args[0])
				if !ok {
					return fmt.Errorf("invalid mode %q (want list or calendar)", args[0])
				}
				if err := e.session.SetMode(m); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.session.Mode())
			return nil
		},
	}
}
