package compliance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminationNotice_OpenEndedContractNeedsNoNotice(t *testing.T) {
	t.Parallel()
	c := NewTerminationNoticeCalculator(DefaultRuleSet())

	assert.Nil(t, c.Calculate(nil, decimal.Zero, testNow))
	assert.Nil(t, c.Calculate(nil, decimal.NewFromInt(500), testNow))
}

func TestTerminationNotice_OverdueAccruesPenalty(t *testing.T) {
	t.Parallel()
	c := NewTerminationNoticeCalculator(DefaultRuleSet())

	// Contract ends in 10 days with a 30-day notice window: the deadline
	// passed 20 days ago.
	end := testNow.AddDate(0, 0, 10)
	notice := c.Calculate(&end, decimal.NewFromInt(120), testNow)

	require.NotNil(t, notice)
	assert.Equal(t, NoticeOverdue, notice.NotificationStatus)
	assert.True(t, notice.ShouldNotify)
	assert.Equal(t, -20, notice.DaysUntilDeadline)
	assert.Equal(t, 20, notice.PenaltyDays)
	assert.True(t, notice.PenaltyAmount.Equal(decimal.NewFromInt(2400)),
		"penalty = penalty days x daily wage, got %s", notice.PenaltyAmount)
}

func TestTerminationNotice_ZeroWageStillProducesNotice(t *testing.T) {
	t.Parallel()
	c := NewTerminationNoticeCalculator(DefaultRuleSet())

	end := testNow.AddDate(0, 0, 5)
	notice := c.Calculate(&end, decimal.Zero, testNow)

	require.NotNil(t, notice)
	assert.Equal(t, NoticeOverdue, notice.NotificationStatus)
	assert.Equal(t, 25, notice.PenaltyDays)
	assert.True(t, notice.PenaltyAmount.IsZero(), "unknown wage means zero penalty, not an error")
}

func TestTerminationNotice_StatusThresholds(t *testing.T) {
	t.Parallel()
	c := NewTerminationNoticeCalculator(DefaultRuleSet())

	cases := []struct {
		name         string
		daysUntilEnd int
		want         NotificationStatus
		shouldNotify bool
	}{
		{"deadline missed", 25, NoticeOverdue, true},
		{"deadline today", 30, NoticeCritical, true},
		{"inside urgent window", 45, NoticeUrgent, true},
		{"inside ideal window", 80, NoticeIdeal, true},
		{"far out", 120, NoticeEarly, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end := testNow.AddDate(0, 0, tc.daysUntilEnd)
			notice := c.Calculate(&end, decimal.NewFromInt(100), testNow)

			require.NotNil(t, notice)
			assert.Equal(t, tc.want, notice.NotificationStatus)
			assert.Equal(t, tc.shouldNotify, notice.ShouldNotify)
			assert.GreaterOrEqual(t, notice.PenaltyDays, 0)
		})
	}
}

func TestTerminationNotice_DeadlineDate(t *testing.T) {
	t.Parallel()
	c := NewTerminationNoticeCalculator(DefaultRuleSet())

	end := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)
	notice := c.Calculate(&end, decimal.NewFromInt(100), testNow)

	require.NotNil(t, notice)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), notice.DeadlineDate)
}
