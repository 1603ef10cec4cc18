package postgresql

import (
	"context"
	"fmt"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
)

type salaryRecordRepository struct {
	db *database.DB
}

func NewSalaryRecordRepository(db *database.DB) contract.SalaryRecordRepository {
	return &salaryRecordRepository{db: db}
}

func (r *salaryRecordRepository) Create(ctx context.Context, record contract.SalaryRecord) (contract.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_salaries (id, contract_id, hourly_wage, monthly_wage, yearly_wage, effective_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, contract_id, hourly_wage, monthly_wage, yearly_wage, effective_date, is_active, created_at
	`

	var s contract.SalaryRecord
	err := q.QueryRow(ctx, query,
		record.ID, record.ContractID, record.HourlyWage, record.MonthlyWage, record.YearlyWage,
		record.EffectiveDate, record.IsActive,
	).Scan(
		&s.ID, &s.ContractID, &s.HourlyWage, &s.MonthlyWage, &s.YearlyWage,
		&s.EffectiveDate, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return contract.SalaryRecord{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return s, nil
}

func (r *salaryRecordRepository) GetByContractID(ctx context.Context, contractID string) ([]contract.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, hourly_wage, monthly_wage, yearly_wage, effective_date, is_active, created_at
		FROM contract_salaries
		WHERE contract_id = $1
		ORDER BY effective_date ASC
	`

	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []contract.SalaryRecord
	for rows.Next() {
		var s contract.SalaryRecord
		if err := rows.Scan(
			&s.ID, &s.ContractID, &s.HourlyWage, &s.MonthlyWage, &s.YearlyWage,
			&s.EffectiveDate, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}

	return records, rows.Err()
}
