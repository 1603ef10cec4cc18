package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/payrollfeed"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// payrollSnapshotRepository reads the employment blocks the external
// ingestion connector stores verbatim as jsonb payloads, one row per
// employment block.
type payrollSnapshotRepository struct {
	db *database.DB
}

func NewPayrollSnapshotRepository(db *database.DB) payrollfeed.SnapshotProvider {
	return &payrollSnapshotRepository{db: db}
}

// snapshotPayload mirrors the provider's wire format.
type snapshotPayload struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"` // "9999-12-31" = never ends
	IsPermanent bool   `json:"is_permanent"`
	Salaries    []struct {
		HourlyWage  json.Number `json:"hourly_wage"`
		MonthlyWage json.Number `json:"monthly_wage"`
		YearlyWage  json.Number `json:"yearly_wage"`
		StartDate   string      `json:"start_date"`
		IsActive    bool        `json:"is_active"`
	} `json:"salaries"`
	Hours []struct {
		HoursPerWeek json.Number `json:"hours_per_week"`
		DaysPerWeek  int         `json:"days_per_week"`
		StartDate    string      `json:"start_date"`
		IsActive     bool        `json:"is_active"`
	} `json:"hours"`
}

func (r *payrollSnapshotRepository) GetByWorkerID(ctx context.Context, workerID string) ([]payrollfeed.EmploymentBlock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, worker_name, payload
		FROM payroll_snapshots
		WHERE worker_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payrollfeed.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var blocks []payrollfeed.EmploymentBlock
	for rows.Next() {
		var id, wID, wName string
		var raw []byte
		if err := rows.Scan(&id, &wID, &wName, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan payroll snapshot: %w", err)
		}

		block, err := decodeSnapshot(id, wID, wName, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode payroll snapshot %s: %w", id, err)
		}
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

func decodeSnapshot(id, workerID, workerName string, raw []byte) (payrollfeed.EmploymentBlock, error) {
	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payrollfeed.EmploymentBlock{}, err
	}

	block := payrollfeed.EmploymentBlock{
		ID:          id,
		WorkerID:    workerID,
		WorkerName:  workerName,
		IsPermanent: payload.IsPermanent,
	}

	start, err := parseFeedDate(payload.StartDate)
	if err != nil {
		return payrollfeed.EmploymentBlock{}, fmt.Errorf("invalid start_date: %w", err)
	}
	block.StartDate = start

	if payload.EndDate != "" {
		end, err := parseFeedDate(payload.EndDate)
		if err != nil {
			return payrollfeed.EmploymentBlock{}, fmt.Errorf("invalid end_date: %w", err)
		}
		block.EndDate = &end
	}

	for _, s := range payload.Salaries {
		slice := payrollfeed.SalarySlice{
			HourlyWage:  numberToDecimal(s.HourlyWage),
			MonthlyWage: numberToDecimal(s.MonthlyWage),
			YearlyWage:  numberToDecimal(s.YearlyWage),
			IsActive:    s.IsActive,
		}
		if s.StartDate != "" {
			if d, err := parseFeedDate(s.StartDate); err == nil {
				slice.StartDate = d
			}
		}
		block.SalarySlices = append(block.SalarySlices, slice)
	}

	for _, h := range payload.Hours {
		slice := payrollfeed.HoursSlice{
			HoursPerWeek: numberToDecimal(h.HoursPerWeek),
			DaysPerWeek:  h.DaysPerWeek,
			IsActive:     h.IsActive,
		}
		if h.StartDate != "" {
			if d, err := parseFeedDate(h.StartDate); err == nil {
				slice.StartDate = d
			}
		}
		block.HoursSlices = append(block.HoursSlices, slice)
	}

	return block, nil
}

func parseFeedDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// numberToDecimal tolerates absent or malformed figures: financial gaps
// degrade the compliance score downstream instead of failing the read.
func numberToDecimal(n json.Number) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
