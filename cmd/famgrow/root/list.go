package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newListCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's and this week's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			st := svc.Snapshot()
			if st.FindChild(childID) == nil {
				return fmt.Errorf("unknown child %q", childID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconStar, "Today"))
			daily := st.Daily[childID]
			if len(daily) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no daily tasks)"))
			}
			for _, t := range daily {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.CheckIcon(t.Done), t.Title,
					ui.Muted.Render(fmt.Sprintf("+%d⭐", t.Points)),
					ui.Dim.Render("("+t.ID+")"))
			}
			if st.DailyClaimed[childID] {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("Daily bonus claimed: $%d", st.DailyPayout[childID])))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "This Week"))
			weekly := st.Weekly[childID]
			if len(weekly) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no weekly tasks)"))
			}
			for _, t := range weekly {
				done := ""
				if t.Count >= t.Target && t.Target > 0 {
					done = " " + ui.IconDone
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d %s %s %s%s\n",
					t.Count, t.Target, t.Title,
					ui.Muted.Render(fmt.Sprintf("+%d⭐ each", t.Points)),
					ui.Dim.Render("("+t.ID+")"), done)
			}
			if st.WeeklyClaimed[childID] {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("Weekly bonus claimed: $%d", st.WeeklyPayout[childID])))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	return cmd
}
