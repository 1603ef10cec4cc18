package timeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
)

// Builder reconciles employment facts from multiple sources into one
// canonical timeline per worker and enriches it into an EmploymentJourney.
type Builder interface {
	BuildTimeline(ctx context.Context, workerID string) (compliance.EmploymentJourney, error)
}

type builderImpl struct {
	workers   worker.WorkerRepository
	resolvers []Resolver

	chainRule compliance.ChainRuleEvaluator
	notice    compliance.TerminationNoticeCalculator
	salary    compliance.SalaryProgressionTracker
	scorer    compliance.ComplianceScorer

	now func() time.Time
}

// NewBuilder wires the resolver chain in fidelity order: payroll
// snapshot, then the contract ledger, then profile synthesis.
func NewBuilder(
	workers worker.WorkerRepository,
	resolvers []Resolver,
	rules compliance.RuleSet,
) Builder {
	return &builderImpl{
		workers:   workers,
		resolvers: resolvers,
		chainRule: compliance.NewChainRuleEvaluator(rules),
		notice:    compliance.NewTerminationNoticeCalculator(rules),
		salary:    compliance.NewSalaryProgressionTracker(),
		scorer:    compliance.NewComplianceScorer(rules),
		now:       time.Now,
	}
}

func (b *builderImpl) BuildTimeline(ctx context.Context, workerID string) (compliance.EmploymentJourney, error) {
	w, err := b.workers.GetByID(ctx, workerID)
	if err != nil {
		return compliance.EmploymentJourney{}, err
	}

	periods := b.resolvePeriods(ctx, w)
	now := b.now()

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
	for i := range periods {
		periods[i].SequenceNumber = i + 1
		if i > 0 && periods[i].Overlaps(periods[i-1]) {
			// Overlap is a data-quality defect: kept in the timeline,
			// logged, and charged against the compliance score.
			slog.Warn("overlapping contract periods",
				"worker_id", w.ID,
				"period_id", periods[i].ID,
				"previous_id", periods[i-1].ID,
			)
		}
	}

	journey := compliance.EmploymentJourney{
		WorkerID:   w.ID,
		WorkerName: w.FullName,
		Contracts:  periods,
	}
	if journey.Contracts == nil {
		journey.Contracts = []contract.ContractPeriod{}
	}

	var firstStart time.Time
	if len(periods) > 0 {
		firstStart = periods[0].StartDate
		journey.FirstStartDate = &firstStart
		journey.TotalContracts = len(periods)
		journey.CurrentContract = currentContract(periods, now)
	}

	journey.ChainRuleStatus = b.chainRule.Evaluate(periods, firstStart, now)
	journey.TotalEmploymentMonths = journey.ChainRuleStatus.TotalEmploymentMonths
	journey.SalaryProgression = b.salary.Track(compliance.PointsFromPeriods(periods))

	if current := journey.CurrentContract; current != nil && current.EndDate != nil {
		journey.TerminationNotice = b.notice.Calculate(current.EndDate, current.DailyWage(), now)
	}

	journey.ComplianceScore = b.scorer.Score(periods, journey.ChainRuleStatus, now)

	return journey, nil
}

// resolvePeriods walks the source chain and stops at the first source
// that yields at least one usable period. Source failures fall through
// to the next, lower-fidelity source.
func (b *builderImpl) resolvePeriods(ctx context.Context, w worker.Worker) []contract.ContractPeriod {
	for _, r := range b.resolvers {
		periods, err := r.Resolve(ctx, w)
		if err != nil {
			slog.Warn("timeline source failed, falling through",
				"source", r.Name(), "worker_id", w.ID, "error", err)
			continue
		}
		if len(periods) > 0 {
			return periods
		}
	}
	return nil
}

// currentContract picks the active period, or the chronologically last
// one when nothing is active. periods must already be sorted.
func currentContract(periods []contract.ContractPeriod, now time.Time) *contract.ContractPeriod {
	for i := len(periods) - 1; i >= 0; i-- {
		if periods[i].IsActive(now) {
			p := periods[i]
			return &p
		}
	}
	p := periods[len(periods)-1]
	return &p
}
