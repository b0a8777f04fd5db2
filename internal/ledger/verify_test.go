package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

var verifyAccounts = NewAccountChecker([]model.Account{
	{ID: "A-001", Owner: "Dupont"},
	{ID: "A-002", Owner: "Martin"},
})

func TestVerify_CleanBooks(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		testTxn("A-001", model.KindDeposit, "1000.00", at),
		testTxn("A-001", model.KindInstallment, "193.33", at.Add(time.Hour)),
		testTxn("A-002", model.KindDeposit, "0.01", at),
	}
	assert.Empty(t, Verify(txns, verifyAccounts))
}

func TestVerify_NegativeRunningBalance(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		testTxn("A-001", model.KindDeposit, "100.00", at),
		testTxn("A-001", model.KindWithdrawal, "150.00", at.Add(time.Hour)),
	}
	errs := Verify(txns, verifyAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Invariant)
	assert.Equal(t, txns[1].ID.String(), errs[0].TxnID)
}

func TestVerify_NonPositiveAmount(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txn := model.Transaction{
		ID:        uuid.New(),
		AccountID: "A-001",
		Time:      at,
		Kind:      model.KindDeposit,
		Amount:    money.MustParse("-10.00"),
	}
	errs := Verify([]model.Transaction{txn}, verifyAccounts)
	require.NotEmpty(t, errs)
	assert.Equal(t, 1, errs[0].Invariant)
}

func TestVerify_UnknownAccountAndKind(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	bad := testTxn("ghost", model.KindDeposit, "10.00", at)
	bad.Kind = model.TransactionKind("transfer")

	errs := Verify([]model.Transaction{bad}, verifyAccounts)
	require.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].Invariant)
	assert.Equal(t, 4, errs[1].Invariant)
}

func TestVerify_ReportsAllViolations(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		testTxn("ghost", model.KindDeposit, "10.00", at),
		testTxn("A-001", model.KindWithdrawal, "5.00", at.Add(time.Hour)),
	}
	errs := Verify(txns, verifyAccounts)
	assert.Len(t, errs, 2)
}

func TestValidationError_Message(t *testing.T) {
	err := ValidationError{Invariant: 5, TxnID: "abc", Description: "balance goes negative"}
	assert.Equal(t, "invariant 5 [abc]: balance goes negative", err.Error())
}
