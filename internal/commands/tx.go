package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

func newDepositCommand() *cobra.Command {
	return newMutationCommand("deposit", "Deposit into an account", model.KindDeposit)
}

func newWithdrawCommand() *cobra.Command {
	return newMutationCommand("withdraw", "Withdraw from an account", model.KindWithdrawal)
}

func newInstallmentCommand() *cobra.Command {
	return newMutationCommand("installment", "Book a financing installment", model.KindInstallment)
}

// newMutationCommand builds the three mutating commands; they differ only
// by transaction kind.
func newMutationCommand(use, short string, kind model.TransactionKind) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   use + " <account-id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			id := args[0]
			amount, err := money.FromString(args[1])
			if err != nil {
				return err
			}

			txn, err := applyMutation(b, kind, id, amount)
			if err != nil {
				b.audit(use, id, amount.String(), "", err.Error())
				return err
			}

			if err := b.store.Append(txn); err != nil {
				return err
			}
			b.audit(use, id, amount.String(), txn.ID.String(), "ok")
			b.autoCommit(fmt.Sprintf("%s: %s %s", use, id, amount))

			balance, err := b.ledger.Balance(id)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s on %s, balance %s\n", use, amount, id, balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "books directory")
	return cmd
}

func applyMutation(b *books, kind model.TransactionKind, id string, amount money.Money) (model.Transaction, error) {
	switch kind {
	case model.KindDeposit:
		return b.ledger.Deposit(id, amount)
	case model.KindWithdrawal:
		return b.ledger.Withdraw(id, amount)
	default:
		return b.ledger.PayInstallment(id, amount)
	}
}
