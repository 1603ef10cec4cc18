package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workflowRepository struct {
	db *database.DB
}

func NewWorkflowRepository(db *database.DB) contract.WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) Append(ctx context.Context, entry contract.WorkflowEntry) (contract.WorkflowEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_workflows (id, contract_id, status, actor_id, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, contract_id, status, actor_id, note, created_at
	`

	var e contract.WorkflowEntry
	err := q.QueryRow(ctx, query,
		entry.ID, entry.ContractID, entry.Status, entry.ActorID, entry.Note,
	).Scan(&e.ID, &e.ContractID, &e.Status, &e.ActorID, &e.Note, &e.CreatedAt)
	if err != nil {
		return contract.WorkflowEntry{}, fmt.Errorf("failed to append workflow entry: %w", err)
	}

	return e, nil
}

func (r *workflowRepository) GetByContractID(ctx context.Context, contractID string) ([]contract.WorkflowEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, status, actor_id, note, created_at
		FROM contract_workflows
		WHERE contract_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow entries: %w", err)
	}
	defer rows.Close()

	var entries []contract.WorkflowEntry
	for rows.Next() {
		var e contract.WorkflowEntry
		if err := rows.Scan(&e.ID, &e.ContractID, &e.Status, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workflow entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *workflowRepository) LatestStatusAge(ctx context.Context, contractID string, now time.Time) (time.Duration, error) {
	q := GetQuerier(ctx, r.db)

	var changedAt time.Time
	err := q.QueryRow(ctx, `
		SELECT created_at
		FROM contract_workflows
		WHERE contract_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, contractID).Scan(&changedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, contract.ErrMissingDependents
		}
		return 0, fmt.Errorf("failed to get latest workflow entry: %w", err)
	}

	return now.Sub(changedAt), nil
}
