package fleet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// Header is the CSV header for vehicles.csv. The financing columns are
// empty for vehicles bought outright.
const Header = "vehicle_id,name,acquisition_cost,kilometers,commissioned_at,financed_principal,annual_rate_pct"

const (
	numFields     = 7
	dateFormat    = "2006-01-02"
	colID         = 0
	colName       = 1
	colAcqCost    = 2
	colKilometers = 3
	colCommission = 4
	colPrincipal  = 5
	colRatePct    = 6
)

// ReadVehicles reads all rows from a vehicles.csv reader.
func ReadVehicles(r io.Reader) ([]model.Vehicle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading vehicles CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var vehicles []model.Vehicle
	for i, rec := range records[1:] {
		v, err := UnmarshalVehicle(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// WriteVehicles writes vehicles to a vehicles.csv writer (including header).
func WriteVehicles(w io.Writer, vehicles []model.Vehicle) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, v := range vehicles {
		if err := cw.Write(MarshalVehicle(v)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalVehicle converts a Vehicle to a CSV row.
func MarshalVehicle(v model.Vehicle) []string {
	row := make([]string, numFields)
	row[colID] = v.ID
	row[colName] = v.Name
	row[colAcqCost] = v.AcquisitionCost.String()
	row[colKilometers] = strconv.FormatInt(v.Kilometers, 10)
	row[colCommission] = v.CommissionedAt.Format(dateFormat)
	if v.Financing != nil {
		row[colPrincipal] = v.Financing.Principal.String()
		row[colRatePct] = v.Financing.AnnualRatePct.String()
	}
	return row
}

// UnmarshalVehicle converts a CSV row to a Vehicle.
func UnmarshalVehicle(record []string) (model.Vehicle, error) {
	if len(record) != numFields {
		return model.Vehicle{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	acqCost, err := money.FromString(record[colAcqCost])
	if err != nil {
		return model.Vehicle{}, err
	}
	kilometers, err := strconv.ParseInt(record[colKilometers], 10, 64)
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("parsing kilometers %q: %w", record[colKilometers], err)
	}
	commissioned, err := time.Parse(dateFormat, record[colCommission])
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("parsing commissioned_at %q: %w", record[colCommission], err)
	}

	v := model.Vehicle{
		ID:              record[colID],
		Name:            record[colName],
		AcquisitionCost: acqCost,
		Kilometers:      kilometers,
		CommissionedAt:  commissioned,
	}

	if record[colPrincipal] != "" {
		principal, err := money.FromString(record[colPrincipal])
		if err != nil {
			return model.Vehicle{}, err
		}
		rate, err := decimal.NewFromString(record[colRatePct])
		if err != nil {
			return model.Vehicle{}, fmt.Errorf("parsing annual_rate_pct %q: %w", record[colRatePct], err)
		}
		v.Financing = &model.FinancingPlan{
			VehicleID:     v.ID,
			Principal:     principal,
			AnnualRatePct: rate,
		}
	}
	return v, nil
}
