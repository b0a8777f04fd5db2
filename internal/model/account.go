package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// Account is one societaire's financial account. The balance is never set
// directly; it only moves by appending transactions through the ledger.
type Account struct {
	ID       string
	Owner    string // societaire name or entity reference
	OpenedAt time.Time
}

// TransactionKind classifies ledger transactions.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "deposit"
	KindWithdrawal  TransactionKind = "withdrawal"
	KindInstallment TransactionKind = "installment"
)

// Valid reports whether k is a known transaction kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindInstallment:
		return true
	}
	return false
}

// Sign returns +1 for deposits and -1 for withdrawals and installments.
func (k TransactionKind) Sign() int {
	if k == KindDeposit {
		return 1
	}
	return -1
}

// Transaction is one immutable row in an account's log. Amount is always
// stored positive; the kind carries the sign. Corrections are new
// compensating transactions, never edits.
type Transaction struct {
	ID        uuid.UUID
	AccountID string
	Time      time.Time
	Kind      TransactionKind
	Amount    money.Money
	Reference string // external document or mission reference
	Note      string
}

// Signed returns the amount with the kind's sign applied.
func (t Transaction) Signed() money.Money {
	if t.Kind.Sign() < 0 {
		return t.Amount.Neg()
	}
	return t.Amount
}
