package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractPeriod is one continuous employment stint of a worker.
// Periods for one worker are sorted ascending by start date and
// SequenceNumber matches that order.
type ContractPeriod struct {
	ID             string          `json:"id"`
	WorkerID       string          `json:"worker_id"`
	WorkerName     string          `json:"worker_name"`
	SequenceNumber int             `json:"sequence_number"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"` // nil = permanent / open-ended
	HoursPerWeek   decimal.Decimal `json:"hours_per_week"`
	DaysPerWeek    int             `json:"days_per_week"`
	EmploymentKind EmploymentKind  `json:"employment_kind"`
	HourlyWage     decimal.Decimal `json:"hourly_wage"`
	MonthlyWage    decimal.Decimal `json:"monthly_wage"`
	YearlyWage     decimal.Decimal `json:"yearly_wage"`
	Status         ContractStatus  `json:"status"`
	Source         ContractSource  `json:"source"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsActive reports whether the period is running at the given instant:
// no end date, or an end date still in the future.
func (p ContractPeriod) IsActive(now time.Time) bool {
	return p.EndDate == nil || p.EndDate.After(now)
}

// DailyWage derives the day rate from the monthly wage and the declared
// working days per week. Missing data yields zero, never an error.
func (p ContractPeriod) DailyWage() decimal.Decimal {
	if p.DaysPerWeek <= 0 || p.MonthlyWage.IsZero() {
		return decimal.Zero
	}
	// days/week * 4.33 weeks ~= working days per month
	workDays := decimal.NewFromInt(int64(p.DaysPerWeek)).Mul(weeksPerMonth)
	if workDays.IsZero() {
		return decimal.Zero
	}
	return p.MonthlyWage.Div(workDays).Round(2)
}

// Overlaps reports whether two periods share at least one day.
func (p ContractPeriod) Overlaps(other ContractPeriod) bool {
	pEnd := p.EndDate
	oEnd := other.EndDate
	if pEnd != nil && !pEnd.After(other.StartDate) {
		return false
	}
	if oEnd != nil && !oEnd.After(p.StartDate) {
		return false
	}
	return true
}

// weeksPerMonth is the statutory averaging factor (52 weeks / 12 months).
var weeksPerMonth = decimal.NewFromFloat(4.33)

type EmploymentKind string

const (
	EmploymentFixedTerm EmploymentKind = "fixed_term"
	EmploymentPermanent EmploymentKind = "permanent"
)

type ContractSource string

const (
	SourcePayroll ContractSource = "payroll"
	SourceLedger  ContractSource = "ledger"
	SourceProfile ContractSource = "profile"
)

// SalaryRecord is the salary sub-record of a contract period.
type SalaryRecord struct {
	ID            string
	ContractID    string
	HourlyWage    decimal.Decimal
	MonthlyWage   decimal.Decimal
	YearlyWage    decimal.Decimal
	EffectiveDate time.Time
	IsActive      bool
	CreatedAt     time.Time
}

// HoursRecord is the working-hours sub-record of a contract period.
type HoursRecord struct {
	ID           string
	ContractID   string
	HoursPerWeek decimal.Decimal
	DaysPerWeek  int
	IsActive     bool
	CreatedAt    time.Time
}

// WorkflowEntry is one row of a contract's status history.
type WorkflowEntry struct {
	ID         string
	ContractID string
	Status     ContractStatus
	ActorID    string
	Note       *string
	CreatedAt  time.Time
}
