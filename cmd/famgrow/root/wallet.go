package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/engine"
	"github.com/ptomo194059/family-growth/internal/ui"
)

func newWalletCmd() *cobra.Command {
	var child string
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show and adjust a child's wallets",
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

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCash, "Wallet"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", fmt.Sprintf("$%d", st.Balances[childID])))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stars", st.StarWallet[childID]))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Exchange rate", fmt.Sprintf("%d⭐ = $1", st.ExchangeRate)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Spent this month", fmt.Sprintf("$%d", svc.MonthSpent(childID))))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&child, "child", "", "child id (default: active child)")

	cmd.AddCommand(
		newWalletOpCmd("topup <dollars>", "Add pocket money (parent PIN required)", &child, true,
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.AddBalance(ctx, childID, n)
			}),
		newWalletOpCmd("spend <dollars>", "Spend pocket money (counts toward this month)", &child, false,
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.SpendCash(ctx, childID, n)
			}),
		newWalletOpCmd("exchange <stars>", "Exchange stars for dollars at the configured rate", &child, false,
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.ExchangeStars(ctx, childID, n)
			}),
	)
	return cmd
}

func newWalletOpCmd(use, short string, child *string, needPIN bool, op func(ctx context.Context, svc *engine.Service, childID string, n int) error) *cobra.Command {
	var pin string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("amount is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("amount must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if needPIN {
				if err := svc.VerifyPIN(pin); err != nil {
					return err
				}
			}
			childID := targetChild(svc, *child)
			n, _ := strconv.Atoi(args[0])
			if err := op(ctx, svc, childID, n); err != nil {
				return err
			}
			st := svc.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s balance $%d, stars %d\n", ui.IconDone, st.Balances[childID], st.StarWallet[childID])
			return nil
		},
	}
	if needPIN {
		cmd.Flags().StringVar(&pin, "pin", "", "parent PIN")
	}
	return cmd
}
