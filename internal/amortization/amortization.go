// Package amortization computes vehicle-financing figures for the fixed
// 60-month term: monthly installment, remaining principal, and the full
// payment schedule. All functions are pure and deterministic; results are
// rounded half-up to 2 decimals exactly once, at the boundary.
package amortization

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/money"
)

// TermMonths is the fixed financing term.
const TermMonths = 60

// ErrInvalidInput indicates a non-positive principal or negative rate.
var ErrInvalidInput = errors.New("principal must be positive and rate non-negative")

var (
	one     = decimal.NewFromInt(1)
	term    = decimal.NewFromInt(TermMonths)
	twelveK = decimal.NewFromInt(1200) // 12 months x 100 pct
)

// divPrecision keeps intermediate quotients well past the 2 decimals that
// survive the final rounding.
const divPrecision = 16

func validate(principal money.Money, annualRatePct decimal.Decimal) error {
	if !principal.IsPositive() || annualRatePct.IsNegative() {
		return ErrInvalidInput
	}
	return nil
}

// monthlyRate converts an annual nominal percentage to a monthly rate.
func monthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.DivRound(twelveK, divPrecision)
}

// MonthlyInstallment returns the fixed monthly payment for a financed
// principal at an annual nominal rate over 60 months. With a zero rate the
// principal is split evenly; otherwise the standard annuity formula
// M = P*r*(1+r)^n / ((1+r)^n - 1) applies.
func MonthlyInstallment(principal money.Money, annualRatePct decimal.Decimal) (money.Money, error) {
	if err := validate(principal, annualRatePct); err != nil {
		return money.Zero, err
	}

	r := monthlyRate(annualRatePct)
	if r.IsZero() {
		return principal.DivInt(TermMonths), nil
	}

	growth := one.Add(r).Pow(term)
	numerator := principal.Decimal().Mul(r).Mul(growth)
	denominator := growth.Sub(one)
	return money.FromDecimal(numerator.DivRound(denominator, divPrecision)), nil
}

// RemainingPrincipal returns the outstanding balance after installmentsPaid
// payments of the installment computed by MonthlyInstallment. Fully paid
// (>= 60) is 0; not started (<= 0) is the full principal.
func RemainingPrincipal(principal money.Money, annualRatePct decimal.Decimal, installmentsPaid int) (money.Money, error) {
	if err := validate(principal, annualRatePct); err != nil {
		return money.Zero, err
	}
	if installmentsPaid >= TermMonths {
		return money.Zero, nil
	}
	if installmentsPaid <= 0 {
		return principal, nil
	}

	installment, err := MonthlyInstallment(principal, annualRatePct)
	if err != nil {
		return money.Zero, err
	}

	r := monthlyRate(annualRatePct)
	k := decimal.NewFromInt(int64(installmentsPaid))
	var remaining decimal.Decimal
	if r.IsZero() {
		remaining = principal.Decimal().Sub(installment.Decimal().Mul(k))
	} else {
		// B_k = P*(1+r)^k - M*((1+r)^k - 1)/r
		growth := one.Add(r).Pow(k)
		paid := installment.Decimal().Mul(growth.Sub(one).DivRound(r, divPrecision))
		remaining = principal.Decimal().Mul(growth).Sub(paid)
	}
	if remaining.IsNegative() {
		return money.Zero, nil
	}
	return money.FromDecimal(remaining), nil
}

// TotalInterest returns the financing overhead over the full term:
// 60 installments minus the principal. Never negative.
func TotalInterest(principal money.Money, annualRatePct decimal.Decimal) (money.Money, error) {
	installment, err := MonthlyInstallment(principal, annualRatePct)
	if err != nil {
		return money.Zero, err
	}
	total := installment.Mul(term).Sub(principal)
	if total.IsNegative() {
		return money.Zero, nil
	}
	return total, nil
}

// ScheduleEntry is one month of an amortization table.
type ScheduleEntry struct {
	Month     int
	Payment   money.Money
	Interest  money.Money
	Principal money.Money
	Remaining money.Money
}

// Schedule returns the month-by-month amortization table. Interest is
// computed on the running balance and rounded each month; the final payment
// absorbs the residual so the balance ends at exactly zero.
func Schedule(principal money.Money, annualRatePct decimal.Decimal) ([]ScheduleEntry, error) {
	installment, err := MonthlyInstallment(principal, annualRatePct)
	if err != nil {
		return nil, err
	}

	r := monthlyRate(annualRatePct)
	entries := make([]ScheduleEntry, 0, TermMonths)
	balance := principal

	for month := 1; month <= TermMonths; month++ {
		interest := balance.Mul(r)
		paydown := installment.Sub(interest)
		payment := installment
		if month == TermMonths || paydown.Cmp(balance) > 0 {
			paydown = balance
			payment = balance.Add(interest)
		}
		balance = balance.Sub(paydown)
		entries = append(entries, ScheduleEntry{
			Month:     month,
			Payment:   payment,
			Interest:  interest,
			Principal: paydown,
			Remaining: balance,
		})
		if balance.IsZero() {
			break
		}
	}
	return entries, nil
}

// PlanInstallment is MonthlyInstallment over a stored financing plan.
func PlanInstallment(plan model.FinancingPlan) (money.Money, error) {
	return MonthlyInstallment(plan.Principal, plan.AnnualRatePct)
}

// PlanRemaining is RemainingPrincipal over a stored financing plan.
func PlanRemaining(plan model.FinancingPlan, installmentsPaid int) (money.Money, error) {
	return RemainingPrincipal(plan.Principal, plan.AnnualRatePct, installmentsPaid)
}
