// Package report composes ledger snapshots, amortization figures, and cost
// aggregates into the three externally consumed results: the period bilan,
// TCO, and the profitability ranking. Results are immutable values; absence
// of data yields zero figures, never an error.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fleetfin-dev/fleetfin/internal/amortization"
	"github.com/fleetfin-dev/fleetfin/internal/costs"
	"github.com/fleetfin-dev/fleetfin/internal/fleet"
	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
	"github.com/fleetfin-dev/fleetfin/internal/period"
)

// depreciationMonths is the straight-line depreciation horizon, aligned
// with the financing term.
const depreciationMonths = amortization.TermMonths

// LedgerReader is the slice of the ledger the engine needs.
type LedgerReader interface {
	TransactionsInPeriod(p period.Period) []model.Transaction
}

// VehicleDirectory is the slice of the fleet registry the engine needs.
type VehicleDirectory interface {
	Get(id string) (model.Vehicle, bool)
	All() []model.Vehicle
}

// Engine computes reports over one consistent-enough snapshot of its inputs.
type Engine struct {
	ledger LedgerReader
	fleet  VehicleDirectory
	agg    *costs.Aggregator
}

// NewEngine wires the report engine to its collaborators.
func NewEngine(ledger LedgerReader, fleet VehicleDirectory, agg *costs.Aggregator) *Engine {
	return &Engine{ledger: ledger, fleet: fleet, agg: agg}
}

// Bilan is the period balance sheet: revenue, cost by category, solde, and
// margin percentage.
type Bilan struct {
	Period       period.Period
	Revenue      money.Money
	Installments money.Money
	FleetCosts   costs.Breakdown
	TotalCost    money.Money
	Solde        money.Money
	MarginPct    decimal.Decimal
}

// ComputeBilan builds the balance sheet for a period. Revenue is the sum of
// deposits across all accounts; the cost side is fleet cost records plus
// installment transactions. A period without deposits has margin 0.
func (e *Engine) ComputeBilan(p period.Period) Bilan {
	revenue := money.Zero
	installments := money.Zero
	for _, txn := range e.ledger.TransactionsInPeriod(p) {
		switch txn.Kind {
		case model.KindDeposit:
			revenue = revenue.Add(txn.Amount)
		case model.KindInstallment:
			installments = installments.Add(txn.Amount)
		}
	}

	fleetCosts := e.agg.ForFleet(p)
	totalCost := fleetCosts.Total.Add(installments)
	solde := revenue.Sub(totalCost)

	return Bilan{
		Period:       p,
		Revenue:      revenue,
		Installments: installments,
		FleetCosts:   fleetCosts.Breakdown,
		TotalCost:    totalCost,
		Solde:        solde,
		MarginPct:    money.Percent(solde, revenue),
	}
}

// TCOResult is the total cost of ownership for one vehicle, optionally
// restricted to a period. CostPerKm is nil when kilometers are unknown.
type TCOResult struct {
	VehicleID     string
	Period        *period.Period
	Acquisition   money.Money
	FinancingCost money.Money
	Depreciation  money.Money
	RunningCosts  costs.Breakdown
	Total         money.Money
	CostPerKm     *money.Money
}

// ComputeTCO combines acquisition, financing overhead, depreciation, and
// aggregated running costs for one vehicle. The total counts the window's
// share of depreciation and financing rather than their lifetime sums, so a
// period TCO reflects the cost of holding the vehicle during that window;
// over the full 60-month horizon depreciation equals the acquisition cost
// and financing equals the plan's total interest.
func (e *Engine) ComputeTCO(vehicleID string, p *period.Period) (TCOResult, error) {
	vehicle, ok := e.fleet.Get(vehicleID)
	if !ok {
		return TCOResult{}, fmt.Errorf("vehicle %s: %w", vehicleID, fleet.ErrNotFound)
	}
	return e.computeTCO(vehicle, p)
}

func (e *Engine) computeTCO(vehicle model.Vehicle, p *period.Period) (TCOResult, error) {
	window := lifetimeWindow(vehicle)
	if p != nil {
		window = *p
	}

	// Depreciation and financing overhead are both prorated to the window's
	// months, so a one-month TCO is comparable to another one-month TCO.
	// Over the full 60-month horizon both equal their lifetime totals.
	months := window.Months()
	if months > depreciationMonths {
		months = depreciationMonths
	}
	share := decimal.NewFromInt(int64(months))
	depreciation := vehicle.AcquisitionCost.Mul(share).DivInt(depreciationMonths)

	financing := money.Zero
	if vehicle.Financing != nil {
		total, err := amortization.TotalInterest(vehicle.Financing.Principal, vehicle.Financing.AnnualRatePct)
		if err != nil {
			return TCOResult{}, fmt.Errorf("vehicle %s financing: %w", vehicle.ID, err)
		}
		financing = total.Mul(share).DivInt(depreciationMonths)
	}

	running := e.agg.ForVehicle(vehicle.ID, window)
	total := depreciation.Add(financing).Add(running.Total)

	result := TCOResult{
		VehicleID:     vehicle.ID,
		Period:        p,
		Acquisition:   vehicle.AcquisitionCost,
		FinancingCost: financing,
		Depreciation:  depreciation,
		RunningCosts:  running,
		Total:         total,
	}
	if vehicle.Kilometers > 0 {
		perKm := total.DivInt(vehicle.Kilometers)
		result.CostPerKm = &perKm
	}
	return result, nil
}

// lifetimeWindow covers the full depreciation horizon from commissioning.
func lifetimeWindow(vehicle model.Vehicle) period.Period {
	start := vehicle.CommissionedAt
	return period.Period{Start: start, End: start.AddDate(0, depreciationMonths, -1)}
}

// ComputeFleetTCO computes TCO for every registered vehicle, fanned out
// across workers, ordered by vehicle ID.
func (e *Engine) ComputeFleetTCO(p *period.Period) ([]TCOResult, error) {
	vehicles := e.fleet.All()
	results := make([]TCOResult, len(vehicles))

	var g errgroup.Group
	g.SetLimit(4)
	for i, vehicle := range vehicles {
		i, vehicle := i, vehicle
		g.Go(func() error {
			result, err := e.computeTCO(vehicle, p)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].VehicleID < results[j].VehicleID })
	return results, nil
}

// ProfitabilityEntry is one vehicle's ranking row.
type ProfitabilityEntry struct {
	VehicleID string
	Revenue   money.Money
	Cost      money.Money
	MarginPct decimal.Decimal
}

// RankProfitability ranks vehicles by (revenue-cost)/cost percent for the
// period, descending, ties broken by vehicle ID ascending. A vehicle with
// zero cost ranks at 0%. topN truncates; topN <= 0 returns an empty slice.
func (e *Engine) RankProfitability(p period.Period, topN int) []ProfitabilityEntry {
	if topN <= 0 {
		return nil
	}

	entries := make([]ProfitabilityEntry, 0, len(e.fleet.All()))
	for _, vehicle := range e.fleet.All() {
		revenue := e.agg.RevenueForVehicle(vehicle.ID, p)
		cost := e.agg.ForVehicle(vehicle.ID, p).Total
		entries = append(entries, ProfitabilityEntry{
			VehicleID: vehicle.ID,
			Revenue:   revenue,
			Cost:      cost,
			MarginPct: money.Percent(revenue.Sub(cost), cost),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		cmp := entries[i].MarginPct.Cmp(entries[j].MarginPct)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[i].VehicleID < entries[j].VehicleID
	})

	if topN < len(entries) {
		entries = entries[:topN]
	}
	return entries
}
