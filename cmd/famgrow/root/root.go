package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptomo194059/family-growth/internal/ui"
)

const Version = "1.2.0"

var rootCmd = &cobra.Command{
	Use:           "famgrow",
	Short:         "FamGrow — family chore and reward tracker",
	Long:          "FamGrow is a local-first CLI/TUI tracker for kids' daily and weekly chores, with star and pocket-money wallets, gacha reward draws, and achievement badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newChildCmd(),
		newListCmd(),
		newDoCmd(),
		newWeekCmd(),
		newWalletCmd(),
		newShopCmd(),
		newDrawCmd(),
		newCardsCmd(),
		newBadgesCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newSetCmd(),
		newPinCmd(),
		newBackupCmd(),
		newBoardCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
