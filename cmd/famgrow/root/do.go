package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newDoCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "do <task-id>",
		Short: "Toggle a daily task done/undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			res, err := svc.ToggleDaily(ctx, childID, args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" No such task: "+args[0]))
				return nil
			}

			if res.Task.Done {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, res.Task.Title, ui.Good.Render(fmt.Sprintf("+%d⭐", res.Task.Points)))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconTodo, res.Task.Title, ui.Warn.Render(fmt.Sprintf("-%d⭐", res.Task.Points)))
			}
			if res.RewardGranted > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("🎉 All done today! +$%d", res.RewardGranted)))
			}
			if res.RewardRevoked > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("Daily bonus returned: -$%d", res.RewardRevoked)))
			}
			for _, b := range res.NewBadges {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.BadgeNew, b.Icon, b.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stars", res.StarWallet))
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	return cmd
}
