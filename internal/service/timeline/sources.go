package timeline

import (
	"context"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/domain/payrollfeed"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// Resolver is one source of contract periods. Resolvers are tried in
// fidelity order; the first one returning at least one period wins.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, w worker.Worker) ([]contract.ContractPeriod, error)
}

var (
	weeksPerMonth = decimal.NewFromFloat(4.33)
	monthsPerYear = decimal.NewFromInt(12)
)

// payrollResolver normalizes the external payroll provider's employment
// blocks. Highest fidelity.
type payrollResolver struct {
	provider payrollfeed.SnapshotProvider
}

func NewPayrollResolver(provider payrollfeed.SnapshotProvider) Resolver {
	return &payrollResolver{provider: provider}
}

func (r *payrollResolver) Name() string { return "payroll_snapshot" }

func (r *payrollResolver) Resolve(ctx context.Context, w worker.Worker) ([]contract.ContractPeriod, error) {
	blocks, err := r.provider.GetByWorkerID(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	periods := make([]contract.ContractPeriod, 0, len(blocks))
	for _, b := range blocks {
		periods = append(periods, normalizeBlock(b, w))
	}
	return periods, nil
}

// normalizeBlock performs the single normalization pass for one
// employment block: pick the active salary and hours sub-records, derive
// missing wage figures, and map the never-ends sentinel to nil.
func normalizeBlock(b payrollfeed.EmploymentBlock, w worker.Worker) contract.ContractPeriod {
	p := contract.ContractPeriod{
		ID:         b.ID,
		WorkerID:   w.ID,
		WorkerName: w.FullName,
		StartDate:  b.StartDate,
		EndDate:    b.NormalizedEnd(),
		Status:     contract.StatusActive,
		Source:     contract.SourcePayroll,
	}
	if b.WorkerName != "" {
		p.WorkerName = b.WorkerName
	}

	if salary, ok := b.ActiveSalary(); ok {
		p.HourlyWage = salary.HourlyWage
		p.MonthlyWage = salary.MonthlyWage
		p.YearlyWage = salary.YearlyWage
	}
	if hours, ok := b.ActiveHours(); ok {
		p.HoursPerWeek = hours.HoursPerWeek
		p.DaysPerWeek = hours.DaysPerWeek
	}

	if p.MonthlyWage.IsZero() && p.HourlyWage.IsPositive() && p.HoursPerWeek.IsPositive() {
		p.MonthlyWage = p.HourlyWage.Mul(p.HoursPerWeek).Mul(weeksPerMonth).Round(2)
	}
	if p.YearlyWage.IsZero() && p.MonthlyWage.IsPositive() {
		p.YearlyWage = p.MonthlyWage.Mul(monthsPerYear).Round(2)
	}

	if b.IsPermanent || p.EndDate == nil {
		p.EmploymentKind = contract.EmploymentPermanent
	} else {
		p.EmploymentKind = contract.EmploymentFixedTerm
	}

	return p
}

// ledgerResolver serves the internal contract ledger, already normalized.
type ledgerResolver struct {
	contracts contract.ContractRepository
}

func NewLedgerResolver(contracts contract.ContractRepository) Resolver {
	return &ledgerResolver{contracts: contracts}
}

func (r *ledgerResolver) Name() string { return "contract_ledger" }

func (r *ledgerResolver) Resolve(ctx context.Context, w worker.Worker) ([]contract.ContractPeriod, error) {
	return r.contracts.GetByWorkerID(ctx, w.ID)
}

// ProfileIDPrefix marks periods synthesized from the worker profile so
// downstream consumers can recognize the degraded confidence.
const ProfileIDPrefix = "profile-"

// profileResolver synthesizes a single period from the worker's own
// profile fields. Last resort only.
type profileResolver struct{}

func NewProfileResolver() Resolver {
	return &profileResolver{}
}

func (r *profileResolver) Name() string { return "worker_profile" }

func (r *profileResolver) Resolve(_ context.Context, w worker.Worker) ([]contract.ContractPeriod, error) {
	if w.EmploymentStart == nil {
		return nil, nil
	}

	p := contract.ContractPeriod{
		ID:         ProfileIDPrefix + w.ID,
		WorkerID:   w.ID,
		WorkerName: w.FullName,
		StartDate:  *w.EmploymentStart,
		EndDate:    w.EmploymentEnd,
		Status:     contract.StatusActive,
		Source:     contract.SourceProfile,
	}
	if w.HoursPerWeek != nil {
		p.HoursPerWeek = *w.HoursPerWeek
	}
	if w.DaysPerWeek != nil {
		p.DaysPerWeek = *w.DaysPerWeek
	}
	if w.MonthlyWage != nil {
		p.MonthlyWage = *w.MonthlyWage
		p.YearlyWage = w.MonthlyWage.Mul(monthsPerYear).Round(2)
	}
	if w.EmploymentEnd == nil {
		p.EmploymentKind = contract.EmploymentPermanent
	} else {
		p.EmploymentKind = contract.EmploymentFixedTerm
	}

	return []contract.ContractPeriod{p}, nil
}
