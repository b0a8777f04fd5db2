package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// Vehicle is a fleet unit as the registry knows it: enough to attribute
// costs and compute TCO, nothing about operational state.
type Vehicle struct {
	ID              string
	Name            string
	AcquisitionCost money.Money
	Kilometers      int64 // odometer kilometers driven; 0 = unknown
	CommissionedAt  time.Time
	Financing       *FinancingPlan // nil when bought outright
}

// FinancingPlan describes a financed acquisition. Installment amount and
// remaining principal are derived by the amortization engine, never stored.
// A plan is immutable; refinancing replaces it with a new one.
type FinancingPlan struct {
	VehicleID     string
	Principal     money.Money
	AnnualRatePct decimal.Decimal
}
