package contract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to ContractStatus
		allowed  bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusActive, StatusExpired, true},
		{StatusActive, StatusTerminated, true},
		{StatusDraft, StatusExpired, false},
		{StatusDraft, StatusTerminated, false},
		{StatusExpired, StatusActive, false},
		{StatusTerminated, StatusActive, false},
		{StatusExpired, StatusTerminated, false},
		{StatusActive, StatusDraft, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)

		err := CheckTransition(tc.from, tc.to)
		if tc.allowed {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Contains(t, err.Error(), string(tc.from))
			assert.Contains(t, err.Error(), string(tc.to))
		}
	}
}

func TestContractPeriod_IsActive(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	assert.True(t, ContractPeriod{EndDate: nil}.IsActive(now), "open-ended is active")
	assert.True(t, ContractPeriod{EndDate: &future}.IsActive(now))
	assert.False(t, ContractPeriod{EndDate: &past}.IsActive(now))
}

func TestContractPeriod_DailyWage(t *testing.T) {
	t.Parallel()

	p := ContractPeriod{
		MonthlyWage: decimal.NewFromInt(2598),
		DaysPerWeek: 5,
	}
	// 2598 / (5 * 4.33) = 120.00
	assert.True(t, p.DailyWage().Equal(decimal.NewFromInt(120)), "got %s", p.DailyWage())

	assert.True(t, ContractPeriod{MonthlyWage: decimal.NewFromInt(2500)}.DailyWage().IsZero(),
		"unknown days per week yields zero, not an error")
	assert.True(t, ContractPeriod{DaysPerWeek: 5}.DailyWage().IsZero())
}

func TestContractPeriod_Overlaps(t *testing.T) {
	t.Parallel()
	day := func(d int) time.Time { return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC) }
	ptr := func(t time.Time) *time.Time { return &t }

	a := ContractPeriod{StartDate: day(1), EndDate: ptr(day(10))}
	b := ContractPeriod{StartDate: day(5), EndDate: ptr(day(15))}
	c := ContractPeriod{StartDate: day(10), EndDate: ptr(day(20))}
	open := ContractPeriod{StartDate: day(3)}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching boundaries do not overlap")
	assert.True(t, open.Overlaps(b), "open-ended overlaps everything after its start")
	assert.False(t, open.Overlaps(ContractPeriod{StartDate: day(1), EndDate: ptr(day(2))}))
}
