package ledger

import "errors"

var (
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrAccountExists indicates an open with an already-used account ID.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidAmount indicates a non-positive amount on a mutation.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a withdrawal or installment that would
	// drive the balance negative. The account is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotEmpty indicates a close on an account that still has a
	// balance or transaction history.
	ErrAccountNotEmpty = errors.New("account has balance or transactions")
)
