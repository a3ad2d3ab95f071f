package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newShopCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Show the reward shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconShop, "Shop"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("💰 For dollars"))
			for _, it := range st.ShopConfig.MoneyItems {
				fmt.Fprintf(cmd.OutOrStdout(), "- $%d %s %s\n", it.Price, it.Name, ui.Dim.Render("("+it.ID+")"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("⭐ For stars"))
			for _, it := range st.ShopConfig.StarItems {
				fmt.Fprintf(cmd.OutOrStdout(), "- %d⭐ %s %s\n", it.Stars, it.Name, ui.Dim.Render("("+it.ID+")"))
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&child, "child", "", "child id (default: active child)")

	var qty int
	var stars bool
	buy := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			childID := targetChild(svc, child)
			if stars {
				err = svc.BuyWithStars(ctx, childID, args[0], qty)
			} else {
				err = svc.BuyWithMoney(ctx, childID, args[0], qty)
			}
			if err != nil {
				return err
			}
			st := svc.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s balance $%d, stars %d\n", ui.IconDone, st.Balances[childID], st.StarWallet[childID])
			return nil
		},
	}
	buy.Flags().IntVar(&qty, "qty", 1, "quantity")
	buy.Flags().BoolVar(&stars, "stars", false, "pay with stars instead of dollars")
	cmd.AddCommand(buy)

	return cmd
}
