package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/ledger"
)

func newVerifyCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Audit the books against the ledger invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			txns := b.ledger.AllTransactions()
			checker := ledger.NewAccountChecker(b.ledger.Accounts())
			errs := ledger.Verify(txns, checker)
			if len(errs) == 0 {
				fmt.Printf("OK: %d transactions verified\n", len(txns))
				return nil
			}

			for _, verr := range errs {
				fmt.Println(verr.Error())
			}
			return fmt.Errorf("%d invariant violations", len(errs))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}
