package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// GarageParser reads the maintenance workshop export:
// date,vehicle_id,work_type,amount,description
// Every row becomes a maintenance cost record (insurance renewals appear in
// the same feed with work_type "insurance").
type GarageParser struct{}

const garageFields = 5

// Format returns the feed name used on the command line.
func (p *GarageParser) Format() string { return "garage" }

// Parse converts a garage export into cost records.
func (p *GarageParser) Parse(r io.Reader) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = garageFields

	records, err := cr.ReadAll()
	if err != nil {
		return Batch{}, fmt.Errorf("reading garage CSV: %w", err)
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
		amount, err := money.FromString(rec[3])
		if err != nil {
			return Batch{}, fmt.Errorf("row %d: %w", i+2, err)
		}

		category := model.CategoryMaintenance
		switch strings.ToLower(rec[2]) {
		case "insurance":
			category = model.CategoryInsurance
		case "other":
			category = model.CategoryOther
		}

		batch.Costs = append(batch.Costs, model.CostRecord{
			VehicleID: rec[1],
			Category:  category,
			Amount:    amount,
			Date:      date,
			Note:      rec[4],
		})
	}
	return batch, nil
}
