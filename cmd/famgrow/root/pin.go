package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the parent PIN",
	}

	var old string
	set := &cobra.Command{
		Use:   "set <new-pin>",
		Short: "Change the parent PIN (current PIN required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.VerifyPIN(old); err != nil {
				return err
			}
			if err := svc.SetPIN(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLock+" PIN updated"))
			return nil
		},
	}
	set.Flags().StringVar(&old, "pin", "", "current parent PIN")

	check := &cobra.Command{
		Use:   "check <pin>",
		Short: "Verify a PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.VerifyPIN(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" PIN ok"))
			return nil
		},
	}

	cmd.AddCommand(set, check)
	return cmd
}
