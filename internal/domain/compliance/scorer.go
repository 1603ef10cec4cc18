package compliance

import (
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
)

// Deductions applied by the scorer. The score is a heuristic aggregate of
// chain-rule risk and data health, not a legal determination; it is
// monotonic in the defect count and always clamped to [0,100].
const (
	deductPermanentRequired = 50
	deductCritical          = 30
	deductWarning           = 10
	deductMissingWage       = 5
	deductMissingStart      = 10
	deductStaleDraft        = 15
	deductOverlap           = 5
)

type ComplianceScorer struct {
	rules RuleSet
}

func NewComplianceScorer(rules RuleSet) ComplianceScorer {
	return ComplianceScorer{rules: rules}
}

// Score derives the 0-100 compliance score for one worker.
func (s ComplianceScorer) Score(periods []contract.ContractPeriod, status ChainRuleStatus, now time.Time) int {
	score := 100

	switch status.WarningLevel {
	case ChainPermanentRequired:
		score -= deductPermanentRequired
	case ChainCritical:
		score -= deductCritical
	case ChainWarning:
		score -= deductWarning
	}

	staleCutoff := now.AddDate(0, 0, -s.rules.StaleDraftDays)
	for _, p := range periods {
		if p.MonthlyWage.IsZero() {
			score -= deductMissingWage
		}
		if p.StartDate.IsZero() {
			score -= deductMissingStart
		}
		if p.Status == contract.StatusDraft && !p.CreatedAt.IsZero() && p.CreatedAt.Before(staleCutoff) {
			score -= deductStaleDraft
		}
	}

	// Overlapping periods are data-integrity defects: they degrade the
	// score instead of aborting the read.
	for i := 1; i < len(periods); i++ {
		if periods[i].Overlaps(periods[i-1]) {
			score -= deductOverlap
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
