package compliance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TerminationNoticeCalculator computes the statutory notice deadline for
// a fixed-term contract and the penalty accrued once it is missed.
type TerminationNoticeCalculator struct {
	rules RuleSet
}

func NewTerminationNoticeCalculator(rules RuleSet) TerminationNoticeCalculator {
	return TerminationNoticeCalculator{rules: rules}
}

// Calculate returns nil for open-ended contracts: no end date, no notice
// obligation. A zero or unknown daily wage yields a zero penalty but the
// notice itself is still produced so deadlines stay visible without
// financial data.
func (c TerminationNoticeCalculator) Calculate(endDate *time.Time, dailyWage decimal.Decimal, now time.Time) *TerminationNotice {
	if endDate == nil {
		return nil
	}

	deadline := endDate.AddDate(0, 0, -c.rules.NoticeWindowDays)
	daysUntil := WholeDays(now, deadline)

	notice := &TerminationNotice{
		DeadlineDate:      deadline,
		DaysUntilDeadline: daysUntil,
		ShouldNotify:      true,
		PenaltyAmount:     decimal.Zero,
	}

	switch {
	case daysUntil < 0:
		notice.NotificationStatus = NoticeOverdue
	case daysUntil == 0:
		notice.NotificationStatus = NoticeCritical
	case daysUntil <= 30:
		notice.NotificationStatus = NoticeUrgent
	case daysUntil <= 60:
		notice.NotificationStatus = NoticeIdeal
	default:
		notice.NotificationStatus = NoticeEarly
		notice.ShouldNotify = false
	}

	if daysUntil < 0 {
		notice.PenaltyDays = -daysUntil
		if dailyWage.IsPositive() {
			notice.PenaltyAmount = dailyWage.Mul(decimal.NewFromInt(int64(notice.PenaltyDays))).Round(2)
		}
	}

	return notice
}
