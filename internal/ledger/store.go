package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/model"
)

const ledgerDir = "ledger"

// Store persists the ledger as CSV under a books directory:
// accounts.csv at the root and ledger/YYYY/MM/transactions.csv month files.
// Load replays the log into an in-memory Ledger; mutations are appended one
// row at a time.
type Store struct {
	root string
}

// NewStore returns a store rooted at the books directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Load reads accounts.csv and every month file and replays the result into
// a fresh Ledger. A row that violates a ledger invariant (unknown account,
// negative running balance) means the books were edited by hand and is
// reported as corruption.
func (s *Store) Load() (*Ledger, error) {
	l := New()

	accts, err := s.readAccounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accts {
		if err := l.Open(a.ID, a.Owner, a.OpenedAt); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
	}

	txns, err := s.readAllTransactions()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Time.Before(txns[j].Time) })
	for _, txn := range txns {
		if err := l.Append(txn); err != nil {
			return nil, fmt.Errorf("ledger corrupted at transaction %s: %w", txn.ID, err)
		}
	}
	return l, nil
}

func (s *Store) readAccounts() ([]model.Account, error) {
	path := filepath.Join(s.root, "accounts.csv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return accts, nil
}

func (s *Store) readAllTransactions() ([]model.Transaction, error) {
	var txns []model.Transaction
	dir := filepath.Join(s.root, ledgerDir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || d.Name() != "transactions.csv" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		monthTxns, err := ReadTransactions(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		txns = append(txns, monthTxns...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// SaveAccounts rewrites accounts.csv.
func (s *Store) SaveAccounts(accts []model.Account) error {
	path := filepath.Join(s.root, "accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Append adds one transaction row to its month file, creating the directory
// and header when the month is new.
func (s *Store) Append(txn model.Transaction) error {
	path := s.monthPath(txn.Time)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, TransactionHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, []model.Transaction{txn}); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

func (s *Store) monthPath(t time.Time) string {
	t = t.UTC()
	return filepath.Join(s.root, ledgerDir,
		fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", int(t.Month())), "transactions.csv")
}
