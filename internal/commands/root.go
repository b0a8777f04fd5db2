package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fleetfin",
		Short:   "Fleet financial ledger and cost accounting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newDepositCommand())
	rootCmd.AddCommand(newWithdrawCommand())
	rootCmd.AddCommand(newInstallmentCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newVehicleCommand())
	rootCmd.AddCommand(newFinancingCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newBilanCommand())
	rootCmd.AddCommand(newTCOCommand())
	rootCmd.AddCommand(newRankCommand())
	rootCmd.AddCommand(newVerifyCommand())

	return rootCmd
}
