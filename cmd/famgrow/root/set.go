package root

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/engine"
)

// Parent settings. Every subcommand is PIN-gated.
func newSetCmd() *cobra.Command {
	var pin string
	var child string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change parent settings (PIN required)",
	}
	cmd.PersistentFlags().StringVar(&pin, "pin", "", "parent PIN")
	cmd.PersistentFlags().StringVar(&child, "child", "", "child id (default: active child)")

	perChild := func(use, short string, op func(ctx context.Context, svc *engine.Service, childID string, n int) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args: func(cmd *cobra.Command, args []string) error {
				if len(args) != 1 {
					return errors.New("value is required")
				}
				if _, err := strconv.Atoi(args[0]); err != nil {
					return errors.New("value must be an integer")
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

				if err := svc.VerifyPIN(pin); err != nil {
					return err
				}
				n, _ := strconv.Atoi(args[0])
				return op(ctx, svc, targetChild(svc, child), n)
			},
		}
	}

	cmd.AddCommand(
		perChild("daily-reward <dollars>", "Bonus for finishing all daily tasks",
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.SetDailyReward(ctx, childID, n)
			}),
		perChild("weekly-reward <dollars>", "Bonus for meeting all weekly targets",
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.SetWeeklyReward(ctx, childID, n)
			}),
		perChild("draw-cost <dollars>", "Price of one gacha draw",
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.SetDrawCost(ctx, childID, n)
			}),
		perChild("rate <stars>", "Stars needed per dollar when exchanging",
			func(ctx context.Context, svc *engine.Service, childID string, n int) error {
				return svc.SetExchangeRate(ctx, n)
			}),
	)
	return cmd
}
