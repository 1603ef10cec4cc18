package compliance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyPoint(date time.Time, monthly int64) SalaryPoint {
	return SalaryPoint{Date: date, MonthlyWage: decimal.NewFromInt(monthly)}
}

func TestSalaryProgression_PercentagesRoundedToTwoDecimals(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	start := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	points := []SalaryPoint{
		monthlyPoint(start, 2539),
		monthlyPoint(start.AddDate(1, 0, 0), 2709),
		monthlyPoint(start.AddDate(2, 0, 0), 2777),
		monthlyPoint(start.AddDate(3, 0, 0), 2846),
	}

	changes := tracker.Track(points)

	require.Len(t, changes, 4)
	wantPercent := []string{"0", "6.7", "2.51", "2.48"}
	for i, want := range wantPercent {
		assert.True(t, changes[i].IncreasePercent.Equal(decimal.RequireFromString(want)),
			"entry %d: want %s, got %s", i, want, changes[i].IncreasePercent)
	}
	assert.Equal(t, ReasonContractStart, changes[0].Reason)
	assert.Equal(t, ReasonContractRenewal, changes[1].Reason)
}

func TestSalaryProgression_FirstEntryAlwaysZero(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	changes := tracker.Track([]SalaryPoint{monthlyPoint(testNow, 9999)})

	require.Len(t, changes, 1)
	assert.True(t, changes[0].IncreasePercent.IsZero())
	assert.Equal(t, ReasonContractStart, changes[0].Reason)
}

func TestSalaryProgression_ZeroPreviousWage(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	points := []SalaryPoint{
		monthlyPoint(testNow, 0),
		monthlyPoint(testNow.AddDate(1, 0, 0), 2500),
	}

	changes := tracker.Track(points)

	require.Len(t, changes, 2)
	assert.True(t, changes[1].IncreasePercent.IsZero(), "zero previous wage must not divide")
}

func TestSalaryProgression_CallerSuppliedReasonWins(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	points := []SalaryPoint{
		monthlyPoint(testNow, 2500),
		{Date: testNow.AddDate(0, 6, 0), MonthlyWage: decimal.NewFromInt(2600), Reason: ReasonRaise},
		{Date: testNow.AddDate(1, 0, 0), MonthlyWage: decimal.NewFromInt(2650), Reason: ReasonReview},
	}

	changes := tracker.Track(points)

	require.Len(t, changes, 3)
	assert.Equal(t, ReasonRaise, changes[1].Reason)
	assert.Equal(t, ReasonReview, changes[2].Reason)
}

func TestSalaryProgression_Idempotent(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	points := []SalaryPoint{
		monthlyPoint(testNow, 2539),
		monthlyPoint(testNow.AddDate(1, 0, 0), 2709),
	}

	first := tracker.Track(points)
	second := tracker.Track(points)

	assert.Equal(t, first, second)
	assert.True(t, points[0].Reason == "" && points[1].Reason == "", "input must not be mutated")
}

func TestSalaryProgression_EmptyInput(t *testing.T) {
	t.Parallel()
	tracker := NewSalaryProgressionTracker()

	assert.Empty(t, tracker.Track(nil))
}
