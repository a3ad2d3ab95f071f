package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

func newChildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "child",
		Short: "Manage children",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listChildren(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List children",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listChildren(cmd)
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a child",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, _, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				c, err := svc.AddChild(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n", ui.IconChild, c.Name, ui.Muted.Render("("+c.ID+")"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <id>",
			Short: "Switch the active child",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, _, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				return svc.SetActiveChild(ctx, args[0])
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a child",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, _, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				return svc.RenameChild(ctx, args[0], args[1])
			},
		},
		newChildRemoveCmd(),
	)

	return cmd
}

func newChildRemoveCmd() *cobra.Command {
	var pin string
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a child and all their data (parent PIN required)",
		Args:  cobra.ExactArgs(1),
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
			if len(svc.Children()) == 1 {
				return errors.New("cannot remove the last child")
			}
			return svc.RemoveChild(ctx, args[0])
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "parent PIN")
	return cmd
}

func listChildren(cmd *cobra.Command) error {
	ctx := context.Background()
	svc, _, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	active := svc.ActiveChildID()
	fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconChild, "Children"))
	for _, c := range svc.Children() {
		mark := "  "
		if c.ID == active {
			mark = ui.Good.Render("* ")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", mark, c.Name, ui.Muted.Render("("+c.ID+")"))
	}
	return nil
}
