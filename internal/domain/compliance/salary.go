package compliance

import (
	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// SalaryProgressionTracker turns an ordered wage history into per-period
// percentage changes. Pure and idempotent: the input is never mutated.
type SalaryProgressionTracker struct{}

func NewSalaryProgressionTracker() SalaryProgressionTracker {
	return SalaryProgressionTracker{}
}

var hundred = decimal.NewFromInt(100)

// Track computes the progression. The first entry always carries a zero
// increase and the contract_start reason; later entries default to
// contract_renewal unless the point carries a more specific reason. A
// zero previous wage yields a zero increase, never a division error.
func (t SalaryProgressionTracker) Track(points []SalaryPoint) []SalaryChange {
	changes := make([]SalaryChange, 0, len(points))

	for i, p := range points {
		change := SalaryChange{
			Date:            p.Date,
			HourlyWage:      p.HourlyWage,
			MonthlyWage:     p.MonthlyWage,
			YearlyWage:      p.YearlyWage,
			IncreasePercent: decimal.Zero,
			Reason:          p.Reason,
		}

		if i == 0 {
			change.Reason = ReasonContractStart
		} else {
			if change.Reason == "" {
				change.Reason = ReasonContractRenewal
			}
			prev := points[i-1].MonthlyWage
			if prev.IsPositive() {
				change.IncreasePercent = p.MonthlyWage.Sub(prev).Div(prev).Mul(hundred).Round(2)
			}
		}

		changes = append(changes, change)
	}

	return changes
}

// PointsFromPeriods adapts a contract timeline into tracker input.
func PointsFromPeriods(periods []contract.ContractPeriod) []SalaryPoint {
	points := make([]SalaryPoint, 0, len(periods))
	for _, p := range periods {
		points = append(points, SalaryPoint{
			Date:        p.StartDate,
			HourlyWage:  p.HourlyWage,
			MonthlyWage: p.MonthlyWage,
			YearlyWage:  p.YearlyWage,
		})
	}
	return points
}
