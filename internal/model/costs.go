package model

import (
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// CostCategory classifies cost records supplied by external collaborators.
type CostCategory string

const (
	CategoryMaintenance CostCategory = "maintenance"
	CategoryMission     CostCategory = "mission"
	CategoryInsurance   CostCategory = "insurance"
	CategoryOther       CostCategory = "other"
)

// Valid reports whether c is a known cost category.
func (c CostCategory) Valid() bool {
	switch c {
	case CategoryMaintenance, CategoryMission, CategoryInsurance, CategoryOther:
		return true
	}
	return false
}

// Categories lists all cost categories in reporting order.
func Categories() []CostCategory {
	return []CostCategory{CategoryMaintenance, CategoryMission, CategoryInsurance, CategoryOther}
}

// CostRecord is one cost attributed to a vehicle. Produced and owned by the
// maintenance/mission/insurance collaborators; the engine only reads it.
type CostRecord struct {
	VehicleID string
	Category  CostCategory
	Amount    money.Money
	Date      time.Time
	Note      string
}

// RevenueRecord is revenue attributed to a vehicle (typically a closed
// mission). Owned by the mission collaborator.
type RevenueRecord struct {
	VehicleID string
	Amount    money.Money
	Date      time.Time
	Source    string
}
