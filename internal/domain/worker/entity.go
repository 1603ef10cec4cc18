package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is the profile record. The employment fields double as the
// last-resort timeline source when neither the payroll feed nor the
// contract ledger has data for the worker.
type Worker struct {
	ID              string
	FullName        string
	Email           string
	EmploymentStart *time.Time
	EmploymentEnd   *time.Time
	HoursPerWeek    *decimal.Decimal
	DaysPerWeek     *int
	MonthlyWage     *decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
