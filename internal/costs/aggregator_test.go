package costs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
	"github.com/fleetfin-dev/fleetfin/internal/period"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cost(vehicle string, cat model.CostCategory, amount string, date time.Time) model.CostRecord {
	return model.CostRecord{
		VehicleID: vehicle,
		Category:  cat,
		Amount:    money.MustParse(amount),
		Date:      date,
	}
}

func testRecords() ([]model.CostRecord, []model.RevenueRecord) {
	costRecords := []model.CostRecord{
		cost("V-001", model.CategoryMaintenance, "120.00", day(2025, 1, 5)),
		cost("V-001", model.CategoryMaintenance, "80.00", day(2025, 1, 20)),
		cost("V-001", model.CategoryInsurance, "55.50", day(2025, 1, 31)),
		cost("V-001", model.CategoryMission, "30.00", day(2025, 2, 2)), // outside january
		cost("V-002", model.CategoryMission, "200.00", day(2025, 1, 10)),
	}
	revenueRecords := []model.RevenueRecord{
		{VehicleID: "V-001", Amount: money.MustParse("1000.00"), Date: day(2025, 1, 12), Source: "M-77"},
		{VehicleID: "V-002", Amount: money.MustParse("450.00"), Date: day(2025, 1, 15), Source: "M-78"},
		{VehicleID: "V-001", Amount: money.MustParse("999.00"), Date: day(2025, 2, 1), Source: "M-79"},
	}
	return costRecords, revenueRecords
}

func TestForVehicle(t *testing.T) {
	costRecords, revenueRecords := testRecords()
	agg := NewAggregator(costRecords, revenueRecords)
	jan := period.Month(2025, time.January)

	b := agg.ForVehicle("V-001", jan)
	assert.Equal(t, "255.50", b.Total.String())
	assert.Equal(t, 3, b.Count)
	assert.Equal(t, "200.00", b.ByCategory[model.CategoryMaintenance].String())
	assert.Equal(t, "55.50", b.ByCategory[model.CategoryInsurance].String())
	assert.True(t, b.ByCategory[model.CategoryMission].IsZero())
}

func TestForVehicle_NoRecords(t *testing.T) {
	agg := NewAggregator(nil, nil)
	b := agg.ForVehicle("V-001", period.Month(2025, time.January))
	assert.True(t, b.Total.IsZero())
	assert.Zero(t, b.Count)
}

func TestForFleet(t *testing.T) {
	costRecords, revenueRecords := testRecords()
	agg := NewAggregator(costRecords, revenueRecords)
	jan := period.Month(2025, time.January)

	fb := agg.ForFleet(jan)
	assert.Equal(t, "455.50", fb.Total.String())
	assert.Equal(t, 4, fb.Count)
	assert.Equal(t, []string{"V-001", "V-002"}, fb.VehicleIDs())
	assert.Equal(t, "255.50", fb.PerVehicle["V-001"].Total.String())
	assert.Equal(t, "200.00", fb.PerVehicle["V-002"].Total.String())
}

func TestAverage(t *testing.T) {
	costRecords, revenueRecords := testRecords()
	agg := NewAggregator(costRecords, revenueRecords)
	jan := period.Month(2025, time.January)

	// 255.50 / 3 = 85.1666... -> 85.17
	assert.Equal(t, "85.17", agg.Average("V-001", jan).String())
	assert.True(t, agg.Average("V-999", jan).IsZero())
}

func TestRevenue(t *testing.T) {
	costRecords, revenueRecords := testRecords()
	agg := NewAggregator(costRecords, revenueRecords)
	jan := period.Month(2025, time.January)

	assert.Equal(t, "1000.00", agg.RevenueForVehicle("V-001", jan).String())
	assert.Equal(t, "1450.00", agg.RevenueForFleet(jan).String())
	assert.True(t, agg.RevenueForVehicle("V-999", jan).IsZero())
}

func TestReadCostRecords(t *testing.T) {
	csv := CostHeader + "\n" +
		"V-001,maintenance,120.00,2025-01-05,oil change\n" +
		"V-002,insurance,55.50,2025-01-31,\n"
	recs, err := ReadCostRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.CategoryMaintenance, recs[0].Category)
	assert.Equal(t, "oil change", recs[0].Note)
	assert.Equal(t, "55.50", recs[1].Amount.String())
}

func TestReadCostRecords_UnknownCategory(t *testing.T) {
	csv := CostHeader + "\nV-001,fuel,10.00,2025-01-05,\n"
	_, err := ReadCostRecords(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestAppendAndLoadRecords(t *testing.T) {
	root := t.TempDir()

	costRecords, revenueRecords := testRecords()
	require.NoError(t, AppendCostRecords(root, costRecords[:2]))
	require.NoError(t, AppendCostRecords(root, costRecords[2:]))
	require.NoError(t, AppendRevenueRecords(root, revenueRecords))

	gotCosts, gotRevenues, err := LoadRecords(root)
	require.NoError(t, err)
	require.Len(t, gotCosts, len(costRecords))
	require.Len(t, gotRevenues, len(revenueRecords))
	assert.Equal(t, "120.00", gotCosts[0].Amount.String())
	assert.Equal(t, "M-79", gotRevenues[2].Source)
}

func TestLoadRecords_MissingFiles(t *testing.T) {
	gotCosts, gotRevenues, err := LoadRecords(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, gotCosts)
	assert.Nil(t, gotRevenues)
}
