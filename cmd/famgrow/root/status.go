package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/engine"
	"github.com/ptomo194059/family-growth/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a child's progress overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			st := svc.Snapshot()
			c := st.FindChild(childID)
			if c == nil {
				return fmt.Errorf("unknown child %q", childID)
			}
			m := svc.MetricsFor(childID)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChild, c.Name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("$%d", m.Balance)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stars today", svc.TodayStars(childID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Star wallet", st.StarWallet[childID]))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d days", m.Streak)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Chores all-time", m.TotalCompleted))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Cards", len(st.Inventories[childID])))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Draws", st.DrawCount[childID]))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("🏅 Achievements"))
			earned := map[string]bool{}
			for _, b := range st.Badges[childID] {
				earned[b.ID] = true
			}
			for _, a := range st.Achievements {
				have := m.Value(engine.Metric(a.Metric))
				if earned["achv-"+a.ID] {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", a.Icon, a.Title, ui.Good.Render("unlocked"))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", a.Icon, a.Title,
					ui.Muted.Render(fmt.Sprintf("(%d/%d)", have, a.Target)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	return cmd
}
