package costs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// CostHeader is the CSV header for costs.csv.
const CostHeader = "vehicle_id,category,amount,date,note"

// RevenueHeader is the CSV header for revenues.csv.
const RevenueHeader = "vehicle_id,amount,date,source"

const (
	costFields    = 5
	revenueFields = 4
	dateFormat    = "2006-01-02"
)

// ReadCostRecords reads costs.csv rows.
func ReadCostRecords(r io.Reader) ([]model.CostRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = costFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading costs CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []model.CostRecord
	for i, rec := range records[1:] {
		parsed, err := unmarshalCost(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

func unmarshalCost(rec []string) (model.CostRecord, error) {
	category := model.CostCategory(rec[1])
	if !category.Valid() {
		return model.CostRecord{}, fmt.Errorf("unknown category %q", rec[1])
	}
	amount, err := money.FromString(rec[2])
	if err != nil {
		return model.CostRecord{}, err
	}
	date, err := time.Parse(dateFormat, rec[3])
	if err != nil {
		return model.CostRecord{}, fmt.Errorf("parsing date %q: %w", rec[3], err)
	}
	return model.CostRecord{
		VehicleID: rec[0],
		Category:  category,
		Amount:    amount,
		Date:      date,
		Note:      rec[4],
	}, nil
}

// ReadRevenueRecords reads revenues.csv rows.
func ReadRevenueRecords(r io.Reader) ([]model.RevenueRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = revenueFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading revenues CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []model.RevenueRecord
	for i, rec := range records[1:] {
		amount, err := money.FromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		date, err := time.Parse(dateFormat, rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[2], err)
		}
		out = append(out, model.RevenueRecord{
			VehicleID: rec[0],
			Amount:    amount,
			Date:      date,
			Source:    rec[3],
		})
	}
	return out, nil
}

// AppendCostRecords appends rows to <root>/costs.csv, writing the header
// when the file is new.
func AppendCostRecords(root string, records []model.CostRecord) error {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			rec.VehicleID,
			string(rec.Category),
			rec.Amount.String(),
			rec.Date.Format(dateFormat),
			rec.Note,
		}
	}
	return appendRows(root, "costs.csv", CostHeader, rows)
}

// AppendRevenueRecords appends rows to <root>/revenues.csv.
func AppendRevenueRecords(root string, records []model.RevenueRecord) error {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			rec.VehicleID,
			rec.Amount.String(),
			rec.Date.Format(dateFormat),
			rec.Source,
		}
	}
	return appendRows(root, "revenues.csv", RevenueHeader, rows)
}

// LoadRecords reads costs.csv and revenues.csv from a books directory.
// Missing files mean no records yet, not an error.
func LoadRecords(root string) ([]model.CostRecord, []model.RevenueRecord, error) {
	var costRecords []model.CostRecord
	var revenueRecords []model.RevenueRecord

	if f, err := os.Open(filepath.Join(root, "costs.csv")); err == nil {
		defer f.Close()
		costRecords, err = ReadCostRecords(f)
		if err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("opening costs.csv: %w", err)
	}

	if f, err := os.Open(filepath.Join(root, "revenues.csv")); err == nil {
		defer f.Close()
		revenueRecords, err = ReadRevenueRecords(f)
		if err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("opening revenues.csv: %w", err)
	}

	return costRecords, revenueRecords, nil
}

func appendRows(root, name, header string, rows [][]string) error {
	path := filepath.Join(root, name)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	defer cw.Flush()
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}
