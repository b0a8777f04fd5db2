package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfin-dev/fleetfin/internal/model"
)

func TestStore_LoadEmptyDir(t *testing.T) {
	s := NewStore(t.TempDir())
	l, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, l.Accounts())
}

func TestStore_AppendAndLoad(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	opened := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAccounts([]model.Account{
		{ID: "A-001", Owner: "Dupont", OpenedAt: opened},
	}))

	jan := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(testTxn("A-001", model.KindDeposit, "1000.00", jan)))
	require.NoError(t, s.Append(testTxn("A-001", model.KindInstallment, "193.33", feb)))
	require.NoError(t, s.Append(testTxn("A-001", model.KindWithdrawal, "50.00", feb.Add(time.Hour))))

	// One file per month, header included.
	assert.FileExists(t, filepath.Join(root, "ledger", "2025", "01", "transactions.csv"))
	assert.FileExists(t, filepath.Join(root, "ledger", "2025", "02", "transactions.csv"))

	l, err := s.Load()
	require.NoError(t, err)

	balance, err := l.Balance("A-001")
	require.NoError(t, err)
	assert.Equal(t, "756.67", balance.String())

	txns, err := l.Transactions("A-001", nil)
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestStore_AppendSameMonthKeepsSingleHeader(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(testTxn("A-001", model.KindDeposit, "1.00", at)))
	require.NoError(t, s.Append(testTxn("A-001", model.KindDeposit, "2.00", at.Add(time.Minute))))

	f, err := os.Open(filepath.Join(root, "ledger", "2025", "03", "transactions.csv"))
	require.NoError(t, err)
	defer f.Close()

	txns, err := ReadTransactions(f)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestStore_LoadReplaysInTimeOrder(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.SaveAccounts([]model.Account{
		{ID: "A-001", Owner: "Dupont", OpenedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}))

	// Written out of order across months; the withdrawal is only covered
	// if the earlier deposit is replayed first.
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(testTxn("A-001", model.KindWithdrawal, "30.00", feb)))
	require.NoError(t, s.Append(testTxn("A-001", model.KindDeposit, "100.00", jan)))

	l, err := s.Load()
	require.NoError(t, err)
	balance, err := l.Balance("A-001")
	require.NoError(t, err)
	assert.Equal(t, "70.00", balance.String())
}

func TestStore_LoadDetectsCorruption(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	require.NoError(t, s.SaveAccounts([]model.Account{
		{ID: "A-001", Owner: "Dupont", OpenedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}))

	// A withdrawal with no covering deposit cannot replay.
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(testTxn("A-001", model.KindWithdrawal, "25.00", at)))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted")
}

func TestStore_LoadRejectsUnknownAccount(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(testTxn("ghost", model.KindDeposit, "25.00", at)))

	_, err := s.Load()
	require.Error(t, err)
}

func TestStore_SaveAccountsRewrites(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	opened := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveAccounts([]model.Account{{ID: "A-001", Owner: "Dupont", OpenedAt: opened}}))
	require.NoError(t, s.SaveAccounts([]model.Account{{ID: "A-002", Owner: "Martin", OpenedAt: opened}}))

	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"A-002"}, accountIDs(l))
}

func accountIDs(l *Ledger) []string {
	var ids []string
	for _, a := range l.Accounts() {
		ids = append(ids, a.ID)
	}
	return ids
}
