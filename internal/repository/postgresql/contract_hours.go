package postgresql

import (
	"context"
	"fmt"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
)

type hoursRecordRepository struct {
	db *database.DB
}

func NewHoursRecordRepository(db *database.DB) contract.HoursRecordRepository {
	return &hoursRecordRepository{db: db}
}

func (r *hoursRecordRepository) Create(ctx context.Context, record contract.HoursRecord) (contract.HoursRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_hours (id, contract_id, hours_per_week, days_per_week, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, contract_id, hours_per_week, days_per_week, is_active, created_at
	`

	var h contract.HoursRecord
	err := q.QueryRow(ctx, query,
		record.ID, record.ContractID, record.HoursPerWeek, record.DaysPerWeek, record.IsActive,
	).Scan(&h.ID, &h.ContractID, &h.HoursPerWeek, &h.DaysPerWeek, &h.IsActive, &h.CreatedAt)
	if err != nil {
		return contract.HoursRecord{}, fmt.Errorf("failed to create hours record: %w", err)
	}

	return h, nil
}

func (r *hoursRecordRepository) GetByContractID(ctx context.Context, contractID string) ([]contract.HoursRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, hours_per_week, days_per_week, is_active, created_at
		FROM contract_hours
		WHERE contract_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hours records: %w", err)
	}
	defer rows.Close()

	var records []contract.HoursRecord
	for rows.Next() {
		var h contract.HoursRecord
		if err := rows.Scan(&h.ID, &h.ContractID, &h.HoursPerWeek, &h.DaysPerWeek, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hours record: %w", err)
		}
		records = append(records, h)
	}

	return records, rows.Err()
}
