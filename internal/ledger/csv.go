package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// TransactionHeader is the CSV header for transactions.csv month files.
const TransactionHeader = "id,account_id,timestamp,kind,amount,reference,note"

// AccountHeader is the CSV header for accounts.csv.
const AccountHeader = "account_id,owner,opened_at"

const (
	txnFields  = 7
	colTxnID   = 0
	colAcctID  = 1
	colTime    = 2
	colKind    = 3
	colAmount  = 4
	colRef     = 5
	colNote    = 6
	acctFields = 3
)

// ReadTransactions reads all rows from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txnFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// AppendTransactions appends rows to an existing transactions.csv writer
// (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// WriteTransactions writes header plus rows.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, txnFields)
	row[colTxnID] = txn.ID.String()
	row[colAcctID] = txn.AccountID
	row[colTime] = txn.Time.UTC().Format(time.RFC3339)
	row[colKind] = string(txn.Kind)
	row[colAmount] = txn.Amount.String()
	row[colRef] = txn.Reference
	row[colNote] = txn.Note
	return row
}

// UnmarshalTransaction converts a CSV row to a transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txnFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txnFields, len(record))
	}

	id, err := uuid.Parse(record[colTxnID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing id %q: %w", record[colTxnID], err)
	}
	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	kind := model.TransactionKind(record[colKind])
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown kind %q", record[colKind])
	}
	amount, err := money.FromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:        id,
		AccountID: record[colAcctID],
		Time:      ts,
		Kind:      kind,
		Amount:    amount,
		Reference: record[colRef],
		Note:      record[colNote],
	}, nil
}

// ReadAccounts reads accounts.csv rows.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accts []model.Account
	for i, rec := range records[1:] {
		opened, err := time.Parse(time.RFC3339, rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing opened_at %q: %w", i+2, rec[2], err)
		}
		accts = append(accts, model.Account{ID: rec[0], Owner: rec[1], OpenedAt: opened})
	}
	return accts, nil
}

// WriteAccounts writes accounts.csv (header included).
func WriteAccounts(w io.Writer, accts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accts {
		row := []string{a.ID, a.Owner, a.OpenedAt.UTC().Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
