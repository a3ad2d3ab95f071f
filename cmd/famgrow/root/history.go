package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var child string
	var days int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent daily snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			st := svc.Snapshot()
			logs := st.History[childID]
			if days > 0 && len(logs) > days {
				logs = logs[len(logs)-days:]
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconHistory, "History"))
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no days recorded yet)"))
				return nil
			}
			for i := len(logs) - 1; i >= 0; i-- {
				h := logs[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					h.DateISO,
					ui.Gold.Render(fmt.Sprintf("%d⭐", h.Stars)),
					ui.Muted.Render(fmt.Sprintf("%d/%d daily done", h.Completed, h.Total)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	cmd.Flags().IntVar(&days, "days", 7, "number of days to show (0 = all)")
	return cmd
}
