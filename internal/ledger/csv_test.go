package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

func testTxn(accountID string, kind model.TransactionKind, amount string, at time.Time) model.Transaction {
	return model.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Time:      at,
		Kind:      kind,
		Amount:    money.MustParse(amount),
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC)
	txn := testTxn("A-001", model.KindInstallment, "193.33", at)
	txn.Reference = "plan-V42"
	txn.Note = "month 7"

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []model.Transaction{txn}))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, txn.ID, got[0].ID)
	assert.Equal(t, txn.Kind, got[0].Kind)
	assert.True(t, txn.Amount.Equal(got[0].Amount))
	assert.True(t, txn.Time.Equal(got[0].Time))
	assert.Equal(t, "plan-V42", got[0].Reference)
}

func TestReadTransactions_BadKind(t *testing.T) {
	csv := TransactionHeader + "\n" +
		uuid.NewString() + ",A-001,2025-03-07T09:30:00Z,transfer,10.00,,\n"
	_, err := ReadTransactions(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestReadTransactions_BadAmount(t *testing.T) {
	csv := TransactionHeader + "\n" +
		uuid.NewString() + ",A-001,2025-03-07T09:30:00Z,deposit,10.005,,\n"
	_, err := ReadTransactions(strings.NewReader(csv))
	require.Error(t, err)
}

func TestReadTransactions_Empty(t *testing.T) {
	got, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAccountsRoundTrip(t *testing.T) {
	accts := []model.Account{
		{ID: "A-001", Owner: "Dupont", OpenedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "A-002", Owner: "Martin", OpenedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dupont", got[0].Owner)
	assert.True(t, accts[1].OpenedAt.Equal(got[1].OpenedAt))
}
