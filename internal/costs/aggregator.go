// Package costs aggregates externally supplied cost and revenue records by
// vehicle, category, and period. The aggregator owns no storage; it works
// over whatever records the caller hands it.
package costs

import (
	"sort"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
	"github.com/fleetfin-dev/fleetfin/internal/period"
)

// Breakdown is a cost total split by category. Zero values mean "no
// records", which is a normal result, not an error.
type Breakdown struct {
	Total      money.Money
	ByCategory map[model.CostCategory]money.Money
	Count      int
}

func newBreakdown() Breakdown {
	return Breakdown{ByCategory: make(map[model.CostCategory]money.Money)}
}

func (b *Breakdown) add(rec model.CostRecord) {
	b.Total = b.Total.Add(rec.Amount)
	b.ByCategory[rec.Category] = b.ByCategory[rec.Category].Add(rec.Amount)
	b.Count++
}

// FleetBreakdown is the fleet-wide total plus per-vehicle subtotals for
// ranking.
type FleetBreakdown struct {
	Breakdown
	PerVehicle map[string]Breakdown
}

// VehicleIDs returns the vehicles present in the breakdown, sorted.
func (f FleetBreakdown) VehicleIDs() []string {
	ids := make([]string, 0, len(f.PerVehicle))
	for id := range f.PerVehicle {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Aggregator groups a fixed set of cost and revenue records.
type Aggregator struct {
	costs    []model.CostRecord
	revenues []model.RevenueRecord
}

// NewAggregator wraps the supplied records. The slices are read, never
// modified.
func NewAggregator(costs []model.CostRecord, revenues []model.RevenueRecord) *Aggregator {
	return &Aggregator{costs: costs, revenues: revenues}
}

// ForVehicle totals one vehicle's costs in the period, split by category.
func (a *Aggregator) ForVehicle(vehicleID string, p period.Period) Breakdown {
	b := newBreakdown()
	for _, rec := range a.costs {
		if rec.VehicleID != vehicleID || !p.Contains(rec.Date) {
			continue
		}
		b.add(rec)
	}
	return b
}

// ForFleet totals costs across all vehicles in the period, with per-vehicle
// subtotals.
func (a *Aggregator) ForFleet(p period.Period) FleetBreakdown {
	fb := FleetBreakdown{
		Breakdown:  newBreakdown(),
		PerVehicle: make(map[string]Breakdown),
	}
	for _, rec := range a.costs {
		if !p.Contains(rec.Date) {
			continue
		}
		fb.add(rec)
		sub, ok := fb.PerVehicle[rec.VehicleID]
		if !ok {
			sub = newBreakdown()
		}
		sub.add(rec)
		fb.PerVehicle[rec.VehicleID] = sub
	}
	return fb
}

// Average returns the mean cost per record for a vehicle in the period, or
// zero when there are no records.
func (a *Aggregator) Average(vehicleID string, p period.Period) money.Money {
	b := a.ForVehicle(vehicleID, p)
	if b.Count == 0 {
		return money.Zero
	}
	return b.Total.DivInt(int64(b.Count))
}

// RevenueForVehicle totals one vehicle's attributed revenue in the period.
func (a *Aggregator) RevenueForVehicle(vehicleID string, p period.Period) money.Money {
	total := money.Zero
	for _, rec := range a.revenues {
		if rec.VehicleID != vehicleID || !p.Contains(rec.Date) {
			continue
		}
		total = total.Add(rec.Amount)
	}
	return total
}

// RevenueForFleet totals attributed revenue across all vehicles.
func (a *Aggregator) RevenueForFleet(p period.Period) money.Money {
	total := money.Zero
	for _, rec := range a.revenues {
		if p.Contains(rec.Date) {
			total = total.Add(rec.Amount)
		}
	}
	return total
}
