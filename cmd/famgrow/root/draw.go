package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newDrawCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Spend pocket money on one gacha draw",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			res, err := svc.Draw(ctx, childID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s You drew: %s %s %s\n",
				ui.IconGift, res.Card.Icon, res.Card.Name, ui.RarityText(res.Card.Rarity))
			for _, b := range res.NewBadges {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.BadgeNew, b.Icon, b.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("$%d", res.Balance)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total draws", res.DrawCount))
			return nil
		},
	}
	cmd.Flags().StringVar(&child, "child", "", "child id (default: active child)")
	return cmd
}
