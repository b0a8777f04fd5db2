package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// MissionParser reads the mission-closure export:
// date,vehicle_id,mission_ref,revenue,expenses
// Each closed mission yields a revenue record and, when expenses are
// non-zero, a mission cost record.
type MissionParser struct{}

const missionFields = 5

// Format returns the feed name used on the command line.
func (p *MissionParser) Format() string { return "missions" }

// Parse converts a mission export into revenue and cost records.
func (p *MissionParser) Parse(r io.Reader) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = missionFields

	records, err := cr.ReadAll()
	if err != nil {
		return Batch{}, fmt.Errorf("reading missions CSV: %w", err)
	}
	if len(records) == 0 {
		return Batch{}, nil
	}

	var batch Batch
	for i, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return Batch{}, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		revenue, err := money.FromString(rec[3])
		if err != nil {
			return Batch{}, fmt.Errorf("row %d: revenue: %w", i+2, err)
		}
		expenses, err := money.FromString(rec[4])
		if err != nil {
			return Batch{}, fmt.Errorf("row %d: expenses: %w", i+2, err)
		}

		if revenue.IsPositive() {
			batch.Revenues = append(batch.Revenues, model.RevenueRecord{
				VehicleID: rec[1],
				Amount:    revenue,
				Date:      date,
				Source:    rec[2],
			})
		}
		if expenses.IsPositive() {
			batch.Costs = append(batch.Costs, model.CostRecord{
				VehicleID: rec[1],
				Category:  model.CategoryMission,
				Amount:    expenses,
				Date:      date,
				Note:      rec[2],
			})
		}
	}
	return batch, nil
}
