package contract

import (
	"context"
	"log/slog"
	"time"

	domainCompliance "github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
	"github.com/crewlane/compliance-backend-go/internal/pkg/sse"
	"github.com/crewlane/compliance-backend-go/internal/repository/postgresql"
	serviceCompliance "github.com/crewlane/compliance-backend-go/internal/service/compliance"
	"github.com/crewlane/compliance-backend-go/internal/service/timeline"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkerContractsResponse is the read model behind the worker contracts
// endpoint: the raw list, the enriched timeline, and dashboard totals.
type WorkerContractsResponse struct {
	Contracts []contract.ContractPeriod          `json:"contracts"`
	Timeline  domainCompliance.EmploymentJourney `json:"timeline"`
	Summary   contract.ContractSummary           `json:"summary"`
}

// Service is the unified contract facade used by presentation collaborators.
type Service interface {
	GetWorkerContracts(ctx context.Context, workerID string) (WorkerContractsResponse, error)
	CreateContract(ctx context.Context, req contract.CreateContractRequest) (contract.ContractPeriod, error)
	UpdateContractStatus(ctx context.Context, contractID string, req contract.UpdateContractStatusRequest) (contract.ContractPeriod, error)
	LinkOrphanContract(ctx context.Context, contractID string, req contract.LinkOrphanContractRequest) error
}

type serviceImpl struct {
	contracts contract.ContractRepository
	salaries  contract.SalaryRecordRepository
	hours     contract.HoursRecordRepository
	workflows contract.WorkflowRepository
	workers   worker.WorkerRepository
	builder   timeline.Builder
	alerts    serviceCompliance.AlertGenerator
	hub       *sse.Hub
	rules     domainCompliance.RuleSet

	runInTx    func(ctx context.Context, fn func(ctx context.Context) error) error
	lockWorker func(ctx context.Context, workerID string) error
	now        func() time.Time
}

func NewContractService(
	db *database.DB,
	contracts contract.ContractRepository,
	salaries contract.SalaryRecordRepository,
	hours contract.HoursRecordRepository,
	workflows contract.WorkflowRepository,
	workers worker.WorkerRepository,
	builder timeline.Builder,
	alerts serviceCompliance.AlertGenerator,
	hub *sse.Hub,
	rules domainCompliance.RuleSet,
) Service {
	return &serviceImpl{
		contracts: contracts,
		salaries:  salaries,
		hours:     hours,
		workflows: workflows,
		workers:   workers,
		builder:   builder,
		alerts:    alerts,
		hub:       hub,
		rules:     rules,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		lockWorker: func(ctx context.Context, workerID string) error {
			return postgresql.AcquireWorkerLock(ctx, db, workerID)
		},
		now: time.Now,
	}
}

func (s *serviceImpl) GetWorkerContracts(ctx context.Context, workerID string) (WorkerContractsResponse, error) {
	journey, err := s.builder.BuildTimeline(ctx, workerID)
	if err != nil {
		return WorkerContractsResponse{}, err
	}

	now := s.now()
	summary := contract.ContractSummary{
		TotalContracts: len(journey.Contracts),
		MonthlyCost:    decimal.Zero,
	}
	for _, p := range journey.Contracts {
		if p.Status == contract.StatusDraft {
			summary.DraftContracts++
		}
		if !p.IsActive(now) {
			continue
		}
		summary.ActiveContracts++
		summary.MonthlyCost = summary.MonthlyCost.Add(p.MonthlyWage)
		if p.EndDate != nil {
			days := domainCompliance.WholeDays(now, *p.EndDate)
			if days >= 0 && days <= s.rules.ExpiryHorizonDays {
				summary.ExpiringSoon++
			}
		}
	}

	return WorkerContractsResponse{
		Contracts: journey.Contracts,
		Timeline:  journey,
		Summary:   summary,
	}, nil
}

// CreateContract writes the period and its salary, hours and workflow
// sub-records as one atomic unit. Writes for the same worker serialize
// on an advisory lock so concurrent creations cannot produce duplicate
// active periods for overlapping ranges.
func (s *serviceImpl) CreateContract(ctx context.Context, req contract.CreateContractRequest) (contract.ContractPeriod, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractPeriod{}, err
	}

	w, err := s.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		return contract.ContractPeriod{}, err
	}

	start, end := req.Dates()
	period := contract.ContractPeriod{
		ID:             uuid.NewString(),
		WorkerID:       w.ID,
		WorkerName:     w.FullName,
		StartDate:      start,
		EndDate:        end,
		HoursPerWeek:   req.HoursPerWeek,
		DaysPerWeek:    req.DaysPerWeek,
		EmploymentKind: req.EmploymentKind,
		Status:         contract.StatusDraft,
		Source:         contract.SourceLedger,
	}
	period.HourlyWage, period.MonthlyWage, period.YearlyWage = deriveWages(req)

	var created contract.ContractPeriod
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.lockWorker(txCtx, w.ID); err != nil {
			return err
		}

		exists, err := s.contracts.ExistsByWorkerAndStart(txCtx, w.ID, start)
		if err != nil {
			return err
		}
		if exists {
			return contract.ErrDuplicatePeriod
		}

		existing, err := s.contracts.GetByWorkerID(txCtx, w.ID)
		if err != nil {
			return err
		}
		period.SequenceNumber = len(existing) + 1

		created, err = s.contracts.Create(txCtx, period)
		if err != nil {
			return err
		}

		// Dependent sub-records ride in the same transaction: a failed
		// dependent write rolls the parent back wholesale.
		if _, err := s.salaries.Create(txCtx, contract.SalaryRecord{
			ID:            uuid.NewString(),
			ContractID:    created.ID,
			HourlyWage:    created.HourlyWage,
			MonthlyWage:   created.MonthlyWage,
			YearlyWage:    created.YearlyWage,
			EffectiveDate: created.StartDate,
			IsActive:      true,
		}); err != nil {
			return err
		}
		if _, err := s.hours.Create(txCtx, contract.HoursRecord{
			ID:           uuid.NewString(),
			ContractID:   created.ID,
			HoursPerWeek: created.HoursPerWeek,
			DaysPerWeek:  created.DaysPerWeek,
			IsActive:     true,
		}); err != nil {
			return err
		}
		if _, err := s.workflows.Append(txCtx, contract.WorkflowEntry{
			ID:         uuid.NewString(),
			ContractID: created.ID,
			Status:     contract.StatusDraft,
			ActorID:    "system",
		}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return contract.ContractPeriod{}, err
	}

	return created, nil
}

func (s *serviceImpl) UpdateContractStatus(ctx context.Context, contractID string, req contract.UpdateContractStatusRequest) (contract.ContractPeriod, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractPeriod{}, err
	}

	current, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return contract.ContractPeriod{}, err
	}

	if err := contract.CheckTransition(current.Status, req.Status); err != nil {
		return contract.ContractPeriod{}, err
	}

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.contracts.UpdateStatus(txCtx, contractID, req.Status); err != nil {
			return err
		}
		_, err := s.workflows.Append(txCtx, contract.WorkflowEntry{
			ID:         uuid.NewString(),
			ContractID: contractID,
			Status:     req.Status,
			ActorID:    req.ActorID,
			Note:       req.Note,
		})
		return err
	})
	if err != nil {
		return contract.ContractPeriod{}, err
	}

	current.Status = req.Status
	s.recheckCompliance(ctx, current.WorkerID)

	return current, nil
}

// LinkOrphanContract repairs a contract without a worker association.
// First writer wins: a concurrent second call gets
// ErrContractAlreadyLinked and creates no duplicate sub-records.
func (s *serviceImpl) LinkOrphanContract(ctx context.Context, contractID string, req contract.LinkOrphanContractRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	w, err := s.workers.GetByID(ctx, req.WorkerID)
	if err != nil {
		return err
	}

	return s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.lockWorker(txCtx, w.ID); err != nil {
			return err
		}

		if err := s.contracts.LinkToWorker(txCtx, contractID, w.ID); err != nil {
			return err
		}

		// Downstream reads assume the sub-records exist; backfill empty
		// placeholders for whatever the orphan is missing.
		linked, err := s.contracts.GetByID(txCtx, contractID)
		if err != nil {
			return err
		}

		salaries, err := s.salaries.GetByContractID(txCtx, contractID)
		if err != nil {
			return err
		}
		if len(salaries) == 0 {
			if _, err := s.salaries.Create(txCtx, contract.SalaryRecord{
				ID:            uuid.NewString(),
				ContractID:    contractID,
				HourlyWage:    linked.HourlyWage,
				MonthlyWage:   linked.MonthlyWage,
				YearlyWage:    linked.YearlyWage,
				EffectiveDate: linked.StartDate,
				IsActive:      true,
			}); err != nil {
				return err
			}
		}

		hours, err := s.hours.GetByContractID(txCtx, contractID)
		if err != nil {
			return err
		}
		if len(hours) == 0 {
			if _, err := s.hours.Create(txCtx, contract.HoursRecord{
				ID:           uuid.NewString(),
				ContractID:   contractID,
				HoursPerWeek: linked.HoursPerWeek,
				DaysPerWeek:  linked.DaysPerWeek,
				IsActive:     true,
			}); err != nil {
				return err
			}
		}

		workflows, err := s.workflows.GetByContractID(txCtx, contractID)
		if err != nil {
			return err
		}
		if len(workflows) == 0 {
			note := "backfilled while linking orphaned contract"
			if _, err := s.workflows.Append(txCtx, contract.WorkflowEntry{
				ID:         uuid.NewString(),
				ContractID: contractID,
				Status:     linked.Status,
				ActorID:    "system",
				Note:       &note,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}

// recheckCompliance re-runs the worker's compliance evaluation after a
// write and pushes fresh alerts to live dashboard subscribers. Failures
// are logged, never surfaced: the write itself already committed.
func (s *serviceImpl) recheckCompliance(ctx context.Context, workerID string) {
	if s.alerts == nil {
		return
	}
	alerts, err := s.alerts.GenerateForWorker(ctx, workerID)
	if err != nil {
		slog.Warn("compliance recheck failed", "worker_id", workerID, "error", err)
		return
	}
	if s.hub == nil {
		return
	}
	for _, alert := range alerts {
		s.hub.Publish(sse.TopicAlerts, sse.Event{Event: "compliance_alert", Data: alert})
	}
}

// deriveWages fills the missing members of the wage triple: monthly from
// hourly x hours x 4.33, yearly from monthly x 12.
func deriveWages(req contract.CreateContractRequest) (hourly, monthly, yearly decimal.Decimal) {
	if req.HourlyWage != nil {
		hourly = *req.HourlyWage
	}
	if req.MonthlyWage != nil {
		monthly = *req.MonthlyWage
	}
	if req.YearlyWage != nil {
		yearly = *req.YearlyWage
	}

	if monthly.IsZero() && hourly.IsPositive() && req.HoursPerWeek.IsPositive() {
		monthly = hourly.Mul(req.HoursPerWeek).Mul(decimal.NewFromFloat(4.33)).Round(2)
	}
	if yearly.IsZero() && monthly.IsPositive() {
		yearly = monthly.Mul(decimal.NewFromInt(12)).Round(2)
	}
	return hourly, monthly, yearly
}
