package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/scheduler"
	"github.com/ptomo194059/family-growth/internal/ui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run in the background, applying day and week rollovers as they happen",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sched := scheduler.New(svc, cfg.PollInterval)
			if err := sched.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Watching for rollovers every %s (ctrl-c to stop)\n", ui.IconInfo, cfg.PollInterval)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			sched.Stop()
			return nil
		},
	}
	return cmd
}
