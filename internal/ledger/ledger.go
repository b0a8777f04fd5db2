// Package ledger owns per-account balances and their append-only
// transaction logs. Each account's balance/log pair is the unit of mutual
// exclusion: mutations on one account are serialized, accounts do not block
// each other, and reads return point-in-time snapshots.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
	"github.com/fleetfin-dev/fleetfin/internal/period"
)

// account pairs one balance with its log under a single lock, so the two
// can never be observed out of step.
type account struct {
	mu      sync.Mutex
	meta    model.Account
	balance money.Money
	log     []model.Transaction
	closed  bool
}

// Ledger is the in-memory ledger over all accounts.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[string]*account)}
}

// Open creates an account for a societaire. Fails with ErrAccountExists if
// the ID is taken.
func (l *Ledger) Open(id, owner string, openedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[id]; ok {
		return ErrAccountExists
	}
	l.accounts[id] = &account{
		meta: model.Account{ID: id, Owner: owner, OpenedAt: openedAt},
	}
	return nil
}

// Close removes an account. An account with a non-zero balance or any
// transaction history cannot be closed; corrections must be booked as
// compensating transactions first.
func (l *Ledger) Close(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[id]
	if !ok {
		return ErrNotFound
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if !acct.balance.IsZero() || len(acct.log) > 0 {
		return ErrAccountNotEmpty
	}
	// Mark before removal: a mutation that captured the pointer but has not
	// locked it yet must fail instead of landing on the orphaned struct.
	acct.closed = true
	delete(l.accounts, id)
	return nil
}

// Deposit appends a deposit and increases the balance.
func (l *Ledger) Deposit(id string, amount money.Money) (model.Transaction, error) {
	return l.mutate(id, model.KindDeposit, amount, "", "")
}

// Withdraw appends a withdrawal and decreases the balance. Fails with
// ErrInsufficientFunds, leaving the account untouched, if the balance would
// go negative.
func (l *Ledger) Withdraw(id string, amount money.Money) (model.Transaction, error) {
	return l.mutate(id, model.KindWithdrawal, amount, "", "")
}

// PayInstallment books a financing installment. Same rules as Withdraw;
// the distinct kind drives reporting categorization.
func (l *Ledger) PayInstallment(id string, amount money.Money) (model.Transaction, error) {
	return l.mutate(id, model.KindInstallment, amount, "", "")
}

func (l *Ledger) mutate(id string, kind model.TransactionKind, amount money.Money, ref, note string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, ErrInvalidAmount
	}
	acct, err := l.lookup(id)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		ID:        uuid.New(),
		AccountID: id,
		Time:      time.Now().UTC(),
		Kind:      kind,
		Amount:    amount,
		Reference: ref,
		Note:      note,
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	return txn, acct.apply(txn)
}

// apply appends txn to the account. Caller holds acct.mu. Balance and log
// move together or not at all.
func (a *account) apply(txn model.Transaction) error {
	if a.closed {
		return ErrNotFound
	}
	next := a.balance.Add(txn.Signed())
	if next.IsNegative() {
		return ErrInsufficientFunds
	}
	a.balance = next
	a.log = append(a.log, txn)
	return nil
}

// Append records an existing transaction (replay from storage). The same
// invariants apply: a row that would break them is rejected.
func (l *Ledger) Append(txn model.Transaction) error {
	if !txn.Kind.Valid() {
		return fmt.Errorf("unknown transaction kind %q", txn.Kind)
	}
	if !txn.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	acct, err := l.lookup(txn.AccountID)
	if err != nil {
		return err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.apply(txn)
}

func (l *Ledger) lookup(id string) (*account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return acct, nil
}

// Balance returns the account's balance, consistent with the most recently
// completed mutation.
func (l *Ledger) Balance(id string) (money.Money, error) {
	acct, err := l.lookup(id)
	if err != nil {
		return money.Zero, err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if acct.closed {
		return money.Zero, ErrNotFound
	}
	return acct.balance, nil
}

// Transactions returns a copy of the account's log in append order,
// optionally restricted to a period. Re-querying without intervening
// mutations yields the same sequence.
func (l *Ledger) Transactions(id string, p *period.Period) ([]model.Transaction, error) {
	acct, err := l.lookup(id)
	if err != nil {
		return nil, err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if acct.closed {
		return nil, ErrNotFound
	}

	out := make([]model.Transaction, 0, len(acct.log))
	for _, txn := range acct.log {
		if p != nil && !p.Contains(txn.Time) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

// Accounts returns a snapshot of all account records, ordered by ID.
func (l *Ledger) Accounts() []model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Account, 0, len(l.accounts))
	for _, acct := range l.accounts {
		out = append(out, acct.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllTransactions collects every transaction across all accounts, in
// account-ID order then append order.
func (l *Ledger) AllTransactions() []model.Transaction {
	return l.collect(func(model.Transaction) bool { return true })
}

// TransactionsInPeriod collects transactions across all accounts for a
// reporting window. Each account is snapshotted under its own lock; the
// result is consistent per account, best-effort across accounts, which is
// what the report engine needs.
func (l *Ledger) TransactionsInPeriod(p period.Period) []model.Transaction {
	return l.collect(func(txn model.Transaction) bool { return p.Contains(txn.Time) })
}

func (l *Ledger) collect(keep func(model.Transaction) bool) []model.Transaction {
	l.mu.RLock()
	accts := make([]*account, 0, len(l.accounts))
	for _, acct := range l.accounts {
		accts = append(accts, acct)
	}
	l.mu.RUnlock()

	sort.Slice(accts, func(i, j int) bool { return accts[i].meta.ID < accts[j].meta.ID })

	var out []model.Transaction
	for _, acct := range accts {
		acct.mu.Lock()
		for _, txn := range acct.log {
			if keep(txn) {
				out = append(out, txn)
			}
		}
		acct.mu.Unlock()
	}
	return out
}
