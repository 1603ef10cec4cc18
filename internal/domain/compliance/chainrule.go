package compliance

import (
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
)

// ChainRuleEvaluator decides whether a worker's chain of fixed-term
// contracts has reached the point where labor law mandates a permanent
// contract. Pure: all inputs explicit, no I/O, no clock.
type ChainRuleEvaluator struct {
	rules RuleSet
}

func NewChainRuleEvaluator(rules RuleSet) ChainRuleEvaluator {
	return ChainRuleEvaluator{rules: rules}
}

// Evaluate derives the chain-rule status from the worker's full ordered
// contract history. Employment months run from the first contract start
// to now (the statutory measure; see the applicable jurisdiction's rule
// for chains interrupted by long gaps).
func (e ChainRuleEvaluator) Evaluate(periods []contract.ContractPeriod, firstStart time.Time, now time.Time) ChainRuleStatus {
	status := ChainRuleStatus{}

	hasPermanent := false
	for _, p := range periods {
		if p.EmploymentKind == contract.EmploymentPermanent {
			hasPermanent = true
		} else {
			status.TotalFixedTermContracts++
		}
	}
	if len(periods) > 0 {
		status.TotalEmploymentMonths = WholeDays(firstStart, now) / 30
		if status.TotalEmploymentMonths < 0 {
			status.TotalEmploymentMonths = 0
		}
	}

	contracts := status.TotalFixedTermContracts
	months := status.TotalEmploymentMonths

	switch {
	case hasPermanent:
		// An existing permanent contract discharges the obligation
		// regardless of how long the chain before it was.
		status.WarningLevel = ChainSafe
		status.Recommendation = "A permanent contract is in place; the chain rule is satisfied."
	case contracts >= e.rules.MaxFixedTermContracts || months >= e.rules.MaxChainMonths:
		status.WarningLevel = ChainPermanentRequired
		status.RequiresPermanentNext = true
		status.Recommendation = "The chain-rule limit has been reached: the next contract must be permanent."
	case contracts == e.rules.CriticalContracts || months >= e.rules.CriticalMonths:
		status.WarningLevel = ChainCritical
		status.Recommendation = "One more fixed-term contract will trigger the permanent-contract obligation."
	case contracts == 1 && months > e.rules.WarningMonths:
		status.WarningLevel = ChainWarning
		status.Recommendation = "Approaching the chain-rule limits; plan the next renewal deliberately."
	default:
		status.WarningLevel = ChainSafe
		status.Recommendation = "Within the chain-rule limits."
	}

	return status
}
