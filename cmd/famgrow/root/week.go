package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newWeekCmd() *cobra.Command {
	var child string
	var undo bool
	cmd := &cobra.Command{
		Use:   "week <task-id>",
		Short: "Log one occurrence of a weekly task (or undo one with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			step := svc.IncWeekly
			if undo {
				step = svc.DecWeekly
			}
			res, err := step(ctx, childID, args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" No such task: "+args[0]))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconStar, res.Task.Title,
				ui.Key.Render(fmt.Sprintf("%d/%d", res.Task.Count, res.Task.Target)))
			if res.RewardGranted > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("🎉 Weekly goals met! +$%d", res.RewardGranted)))
			}
			if res.RewardRevoked > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("Weekly bonus returned: -$%d", res.RewardRevoked)))
			}
			for _, b := range res.NewBadges {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.BadgeNew, b.Icon, b.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stars", res.StarWallet))
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	cmd.Flags().BoolVar(&undo, "undo", false, "remove one logged occurrence")
	return cmd
}
