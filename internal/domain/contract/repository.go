package contract

import (
	"context"
	"time"
)

type ContractRepository interface {
	GetByID(ctx context.Context, id string) (ContractPeriod, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]ContractPeriod, error)
	Create(ctx context.Context, period ContractPeriod) (ContractPeriod, error)
	UpdateStatus(ctx context.Context, id string, status ContractStatus) error
	// LinkToWorker sets the worker association on an orphaned contract.
	// Returns ErrContractAlreadyLinked when the contract already has one.
	LinkToWorker(ctx context.Context, contractID, workerID string) error
	ExistsByWorkerAndStart(ctx context.Context, workerID string, startDate time.Time) (bool, error)
}

type SalaryRecordRepository interface {
	Create(ctx context.Context, record SalaryRecord) (SalaryRecord, error)
	GetByContractID(ctx context.Context, contractID string) ([]SalaryRecord, error)
}

type HoursRecordRepository interface {
	Create(ctx context.Context, record HoursRecord) (HoursRecord, error)
	GetByContractID(ctx context.Context, contractID string) ([]HoursRecord, error)
}

type WorkflowRepository interface {
	Append(ctx context.Context, entry WorkflowEntry) (WorkflowEntry, error)
	GetByContractID(ctx context.Context, contractID string) ([]WorkflowEntry, error)
	// LatestStatusAge returns how long the contract has carried its current
	// status. Used to flag stale drafts.
	LatestStatusAge(ctx context.Context, contractID string, now time.Time) (time.Duration, error)
}
