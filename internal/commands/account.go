package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/period"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Societaire account management",
	}
	accountCmd.AddCommand(newAccountOpenCommand())
	accountCmd.AddCommand(newAccountCloseCommand())
	accountCmd.AddCommand(newAccountListCommand())
	return accountCmd
}

func newAccountOpenCommand() *cobra.Command {
	var dir string
	var owner string

	cmd := &cobra.Command{
		Use:   "open <account-id>",
		Short: "Open an account for a societaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			id := args[0]
			if err := b.ledger.Open(id, owner, time.Now().UTC()); err != nil {
				b.audit("open", id, "", "", err.Error())
				return err
			}
			if err := b.store.SaveAccounts(b.ledger.Accounts()); err != nil {
				return err
			}
			b.audit("open", id, "", "", "ok")
			b.autoCommit("account: open " + id)
			fmt.Printf("Opened account %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().StringVar(&owner, "owner", "", "societaire name (required)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newAccountCloseCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "close <account-id>",
		Short: "Close an empty account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			id := args[0]
			if err := b.ledger.Close(id); err != nil {
				b.audit("close", id, "", "", err.Error())
				return err
			}
			if err := b.store.SaveAccounts(b.ledger.Accounts()); err != nil {
				return err
			}
			b.audit("close", id, "", "", "ok")
			b.autoCommit("account: close " + id)
			fmt.Printf("Closed account %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func newAccountListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			for _, acct := range b.ledger.Accounts() {
				balance, err := b.ledger.Balance(acct.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\t%s\n", acct.ID, acct.Owner, balance)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func newBalanceCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			balance, err := b.ledger.Balance(args[0])
			if err != nil {
				return err
			}
			fmt.Println(balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func newTransactionsCommand() *cobra.Command {
	var dir string
	var periodFlag string

	cmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List an account's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			var window *period.Period
			if periodFlag != "" {
				p, err := period.Parse(periodFlag)
				if err != nil {
					return err
				}
				window = &p
			}

			txns, err := b.ledger.Transactions(args[0], window)
			if err != nil {
				return err
			}
			for _, txn := range txns {
				fmt.Printf("%s\t%s\t%s\t%s\n",
					txn.Time.Format(time.RFC3339), txn.Kind, txn.Amount, txn.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	cmd.Flags().StringVar(&periodFlag, "period", "", `restrict to a period ("2025-01" or "2025-01-01..2025-03-31")`)
	return cmd
}
