package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newCardsCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Show a child's card collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			st := svc.Snapshot()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCard, "Collection"))
			inv := st.Inventories[childID]
			if len(inv) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no cards yet, try `famgrow draw`)"))
				return nil
			}
			counts := map[string]int{}
			for _, oc := range inv {
				counts[oc.CardID]++
			}
			for _, c := range st.RewardPool {
				if counts[c.ID] == 0 {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s ×%d %s\n",
					c.Icon, c.Name, ui.RarityText(c.Rarity), counts[c.ID], ui.Dim.Render("("+c.ID+")"))
				delete(counts, c.ID)
			}
			// Cards that were drawn from an older pool configuration.
			for id, n := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s ×%d\n", id, n)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&child, "child", "", "child id (default: active child)")

	cmd.AddCommand(&cobra.Command{
		Use:   "use <card-id>",
		Short: "Redeem one owned card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			if err := svc.UseCard(ctx, childID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Redeemed %s — enjoy!\n", ui.IconGift, args[0])
			return nil
		},
	})
	return cmd
}
