package compliance

import (
	"testing"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedTerm(start time.Time, months int) contract.ContractPeriod {
	end := start.AddDate(0, months, 0)
	return contract.ContractPeriod{
		StartDate:      start,
		EndDate:        &end,
		EmploymentKind: contract.EmploymentFixedTerm,
	}
}

func permanent(start time.Time) contract.ContractPeriod {
	return contract.ContractPeriod{
		StartDate:      start,
		EmploymentKind: contract.EmploymentPermanent,
	}
}

func TestChainRuleEvaluator_ThreeContractsOverLimit(t *testing.T) {
	t.Parallel()
	e := NewChainRuleEvaluator(DefaultRuleSet())

	// Three fixed-term contracts spanning 40 months, no permanent one.
	first := testNow.AddDate(0, -40, 0)
	periods := []contract.ContractPeriod{
		fixedTerm(first, 12),
		fixedTerm(first.AddDate(0, 12, 0), 12),
		fixedTerm(first.AddDate(0, 24, 0), 16),
	}

	status := e.Evaluate(periods, first, testNow)

	assert.Equal(t, ChainPermanentRequired, status.WarningLevel)
	assert.True(t, status.RequiresPermanentNext)
	assert.Equal(t, 3, status.TotalFixedTermContracts)
	assert.GreaterOrEqual(t, status.TotalEmploymentMonths, 36)
}

func TestChainRuleEvaluator_PermanentContractAlwaysSafe(t *testing.T) {
	t.Parallel()
	e := NewChainRuleEvaluator(DefaultRuleSet())
	first := testNow.AddDate(0, -60, 0)

	cases := []struct {
		name    string
		periods []contract.ContractPeriod
	}{
		{"permanent only", []contract.ContractPeriod{permanent(first)}},
		{"permanent after long chain", []contract.ContractPeriod{
			fixedTerm(first, 12),
			fixedTerm(first.AddDate(0, 12, 0), 12),
			fixedTerm(first.AddDate(0, 24, 0), 12),
			fixedTerm(first.AddDate(0, 36, 0), 12),
			permanent(first.AddDate(0, 48, 0)),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := e.Evaluate(tc.periods, first, testNow)
			assert.Equal(t, ChainSafe, status.WarningLevel)
			assert.False(t, status.RequiresPermanentNext)
		})
	}
}

func TestChainRuleEvaluator_MonthLimitAloneTriggers(t *testing.T) {
	t.Parallel()
	e := NewChainRuleEvaluator(DefaultRuleSet())

	// One long fixed-term contract running 37 months.
	first := testNow.AddDate(0, -37, 0)
	periods := []contract.ContractPeriod{fixedTerm(first, 48)}

	status := e.Evaluate(periods, first, testNow)

	assert.Equal(t, ChainPermanentRequired, status.WarningLevel)
	assert.True(t, status.RequiresPermanentNext)
}

func TestChainRuleEvaluator_Bands(t *testing.T) {
	t.Parallel()
	e := NewChainRuleEvaluator(DefaultRuleSet())

	cases := []struct {
		name      string
		contracts int
		monthsAgo int
		want      ChainWarningLevel
	}{
		{"fresh single contract", 1, 6, ChainSafe},
		{"single contract past warning band", 1, 20, ChainWarning},
		{"two contracts", 2, 20, ChainCritical},
		{"single contract past critical months", 1, 31, ChainCritical},
		{"three contracts", 3, 20, ChainPermanentRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := testNow.AddDate(0, -tc.monthsAgo, 0)
			var periods []contract.ContractPeriod
			for i := 0; i < tc.contracts; i++ {
				periods = append(periods, fixedTerm(first.AddDate(0, i*6, 0), 6))
			}

			status := e.Evaluate(periods, first, testNow)
			assert.Equal(t, tc.want, status.WarningLevel, "contracts=%d monthsAgo=%d", tc.contracts, tc.monthsAgo)
			assert.NotEmpty(t, status.Recommendation)
		})
	}
}

func TestChainRuleEvaluator_NoContracts(t *testing.T) {
	t.Parallel()
	e := NewChainRuleEvaluator(DefaultRuleSet())

	status := e.Evaluate(nil, time.Time{}, testNow)

	assert.Equal(t, ChainSafe, status.WarningLevel)
	assert.False(t, status.RequiresPermanentNext)
	assert.Zero(t, status.TotalFixedTermContracts)
	assert.Zero(t, status.TotalEmploymentMonths)
}

func TestChainRuleEvaluator_CustomRuleSet(t *testing.T) {
	t.Parallel()
	rules := DefaultRuleSet()
	rules.MaxFixedTermContracts = 4
	rules.CriticalContracts = 3
	e := NewChainRuleEvaluator(rules)

	first := testNow.AddDate(0, -18, 0)
	periods := []contract.ContractPeriod{
		fixedTerm(first, 6),
		fixedTerm(first.AddDate(0, 6, 0), 6),
		fixedTerm(first.AddDate(0, 12, 0), 6),
	}

	status := e.Evaluate(periods, first, testNow)

	// Three contracts are only critical under the relaxed rule set.
	assert.Equal(t, ChainCritical, status.WarningLevel)
	assert.False(t, status.RequiresPermanentNext)
}
