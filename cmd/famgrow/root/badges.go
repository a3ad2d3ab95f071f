package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show earned badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			badges := svc.Badges(childID)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Badges"))
			if len(badges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none yet)"))
				return nil
			}
			for _, b := range badges {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s %s\n",
					b.Icon, ui.Key.Render(b.Title),
					ui.Muted.Render(b.Description),
					ui.Dim.Render(b.EarnedAt.Format("2006-01-02")))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	return cmd
}
