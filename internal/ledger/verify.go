package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// ValidationError describes a single invariant violation found in the books.
type ValidationError struct {
	Invariant   int
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.TxnID, e.Description)
}

// AccountChecker tests whether an account ID exists.
type AccountChecker interface {
	Exists(id string) bool
}

// accountSet adapts a list of account records to AccountChecker.
type accountSet map[string]struct{}

func (s accountSet) Exists(id string) bool {
	_, ok := s[id]
	return ok
}

// NewAccountChecker builds an AccountChecker from account records.
func NewAccountChecker(accts []model.Account) AccountChecker {
	set := make(accountSet, len(accts))
	for _, a := range accts {
		set[a.ID] = struct{}{}
	}
	return set
}

// Verify enforces 5 invariants over a transaction log, in append order:
//
//  1. Amounts are strictly positive (the kind carries the sign).
//  2. Amounts have at most 2 decimal places.
//  3. Every transaction references a known account.
//  4. Every transaction has a known kind.
//  5. No account's running balance ever goes negative.
func Verify(txns []model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	hundred := decimal.NewFromInt(100)
	balances := make(map[string]money.Money)

	for _, txn := range txns {
		if !txn.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				TxnID:       txn.ID.String(),
				Description: fmt.Sprintf("amount %s is not positive", txn.Amount),
			})
		}

		scaled := txn.Amount.Decimal().Mul(hundred)
		if !scaled.Equal(scaled.Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				TxnID:       txn.ID.String(),
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", txn.Amount),
			})
		}

		if !accounts.Exists(txn.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				TxnID:       txn.ID.String(),
				Description: fmt.Sprintf("unknown account %q", txn.AccountID),
			})
		}

		if !txn.Kind.Valid() {
			errs = append(errs, ValidationError{
				Invariant:   4,
				TxnID:       txn.ID.String(),
				Description: fmt.Sprintf("unknown kind %q", txn.Kind),
			})
			continue
		}

		next := balances[txn.AccountID].Add(txn.Signed())
		if next.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   5,
				TxnID:       txn.ID.String(),
				Description: fmt.Sprintf("account %s balance goes negative (%s)", txn.AccountID, next),
			})
		}
		balances[txn.AccountID] = next
	}

	return errs
}
