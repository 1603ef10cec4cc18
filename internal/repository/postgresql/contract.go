package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `
	id, worker_id, worker_name, sequence_number, start_date, end_date,
	hours_per_week, days_per_week, employment_kind,
	hourly_wage, monthly_wage, yearly_wage,
	status, source, created_at, updated_at
`

func scanContract(row pgx.Row) (contract.ContractPeriod, error) {
	var p contract.ContractPeriod
	var workerID, workerName *string
	err := row.Scan(
		&p.ID, &workerID, &workerName, &p.SequenceNumber, &p.StartDate, &p.EndDate,
		&p.HoursPerWeek, &p.DaysPerWeek, &p.EmploymentKind,
		&p.HourlyWage, &p.MonthlyWage, &p.YearlyWage,
		&p.Status, &p.Source, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return contract.ContractPeriod{}, err
	}
	// Orphaned contracts carry NULL worker columns.
	if workerID != nil {
		p.WorkerID = *workerID
	}
	if workerName != nil {
		p.WorkerName = *workerName
	}
	return p, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.ContractPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	p, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.ContractPeriod{}, contract.ErrContractNotFound
		}
		return contract.ContractPeriod{}, fmt.Errorf("failed to get contract: %w", err)
	}

	return p, nil
}

func (r *contractRepository) GetByWorkerID(ctx context.Context, workerID string) ([]contract.ContractPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + `
		FROM contracts
		WHERE worker_id = $1
		ORDER BY start_date ASC, sequence_number ASC`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var periods []contract.ContractPeriod
	for rows.Next() {
		p, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *contractRepository) Create(ctx context.Context, period contract.ContractPeriod) (contract.ContractPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (
			id, worker_id, worker_name, sequence_number, start_date, end_date,
			hours_per_week, days_per_week, employment_kind,
			hourly_wage, monthly_wage, yearly_wage, status, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + contractColumns

	p, err := scanContract(q.QueryRow(ctx, query,
		period.ID, period.WorkerID, period.WorkerName, period.SequenceNumber,
		period.StartDate, period.EndDate,
		period.HoursPerWeek, period.DaysPerWeek, period.EmploymentKind,
		period.HourlyWage, period.MonthlyWage, period.YearlyWage,
		period.Status, period.Source,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_contract_worker_start") {
			return contract.ContractPeriod{}, contract.ErrDuplicatePeriod
		}
		return contract.ContractPeriod{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return p, nil
}

func (r *contractRepository) UpdateStatus(ctx context.Context, id string, status contract.ContractStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE contracts SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}

	return nil
}

func (r *contractRepository) LinkToWorker(ctx context.Context, contractID, workerID string) error {
	q := GetQuerier(ctx, r.db)

	// The WHERE clause makes the link first-writer-wins: a second
	// concurrent attempt matches zero rows.
	tag, err := q.Exec(ctx, `
		UPDATE contracts
		SET worker_id = $2,
		    worker_name = (SELECT full_name FROM workers WHERE id = $2),
		    updated_at = NOW()
		WHERE id = $1 AND worker_id IS NULL
	`, contractID, workerID)
	if err != nil {
		return fmt.Errorf("failed to link contract: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM contracts WHERE id = $1)`, contractID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check contract: %w", err)
		}
		if !exists {
			return contract.ErrContractNotFound
		}
		return contract.ErrContractAlreadyLinked
	}

	return nil
}

func (r *contractRepository) ExistsByWorkerAndStart(ctx context.Context, workerID string, startDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM contracts WHERE worker_id = $1 AND start_date = $2)
	`, workerID, startDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contract existence: %w", err)
	}

	return exists, nil
}
