package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/storage"
	"github.com/ptomo194059/family-growth/internal/ui"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import the full family state",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file (stdout by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if out == "" {
				return svc.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := svc.Export(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported to %s\n", ui.IconDone, out)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file")

	var overwrite bool
	var pin string
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a backup file, merging into the current state (parent PIN required)",
		Long: `Import a backup file.

The default mode deep-merges the backup into the current state: objects are
merged key by key, lists are replaced wholesale, and scalar values from the
backup win. Use --overwrite to discard the current state entirely.

A safety export of the current state is written next to the database before
anything is changed, so a bad import can always be rolled back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.VerifyPIN(pin); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			bf, err := storage.DecodeBackup(f)
			if err != nil {
				return err
			}

			dir := cfg.BackupDir
			if dir == "" {
				dir = "."
			}
			safety, err := svc.ExportToDir(dir, "pre-import")
			if err != nil {
				return fmt.Errorf("safety backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Safety backup written to %s\n", ui.IconInfo, safety)

			mode := storage.ImportMerge
			if overwrite {
				mode = storage.ImportOverwrite
			}
			if err := svc.Import(ctx, bf, mode); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Import complete"))
			return nil
		},
	}
	importCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the current state instead of merging")
	importCmd.Flags().StringVar(&pin, "pin", "", "parent PIN")

	cmd.AddCommand(export, importCmd)
	return cmd
}
