package contract

import (
	"time"

	"github.com/crewlane/compliance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	WorkerID       string           `json:"worker_id"`
	StartDate      string           `json:"start_date"`         // YYYY-MM-DD
	EndDate        *string          `json:"end_date,omitempty"` // YYYY-MM-DD, omit for permanent
	EmploymentKind EmploymentKind   `json:"employment_kind"`
	HoursPerWeek   decimal.Decimal  `json:"hours_per_week"`
	DaysPerWeek    int              `json:"days_per_week"`
	HourlyWage     *decimal.Decimal `json:"hourly_wage,omitempty"`
	MonthlyWage    *decimal.Decimal `json:"monthly_wage,omitempty"`
	YearlyWage     *decimal.Decimal `json:"yearly_wage,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EndDate != nil {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else if ok && !end.After(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
		}
	}
	switch r.EmploymentKind {
	case EmploymentFixedTerm, EmploymentPermanent:
	default:
		errs = append(errs, validator.ValidationError{Field: "employment_kind", Message: "must be 'fixed_term' or 'permanent'"})
	}
	if r.EmploymentKind == EmploymentFixedTerm && r.EndDate == nil {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required for fixed-term contracts"})
	}
	if r.HoursPerWeek.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_per_week", Message: "must be non-negative"})
	}
	if r.DaysPerWeek < 0 || r.DaysPerWeek > 7 {
		errs = append(errs, validator.ValidationError{Field: "days_per_week", Message: "must be between 0 and 7"})
	}
	if r.HourlyWage != nil && r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be non-negative"})
	}
	if r.MonthlyWage != nil && r.MonthlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_wage", Message: "must be non-negative"})
	}
	if r.YearlyWage != nil && r.YearlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "yearly_wage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and optional end date. Validate must have
// passed before calling.
func (r *CreateContractRequest) Dates() (time.Time, *time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	if r.EndDate == nil {
		return start, nil
	}
	end, _ := validator.IsValidDate(*r.EndDate)
	return start, &end
}

type UpdateContractStatusRequest struct {
	Status  ContractStatus `json:"status"`
	ActorID string         `json:"actor_id"`
	Note    *string        `json:"note,omitempty"`
}

func (r *UpdateContractStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, active, expired, terminated"})
	}
	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{Field: "actor_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LinkOrphanContractRequest struct {
	WorkerID string `json:"worker_id"`
}

func (r *LinkOrphanContractRequest) Validate() error {
	if validator.IsEmpty(r.WorkerID) {
		return validator.ValidationErrors{{Field: "worker_id", Message: "is required"}}
	}
	return nil
}

// ContractSummary aggregates a worker's contract list for dashboards.
type ContractSummary struct {
	TotalContracts  int             `json:"total_contracts"`
	ActiveContracts int             `json:"active_contracts"`
	DraftContracts  int             `json:"draft_contracts"`
	ExpiringSoon    int             `json:"expiring_soon"`
	MonthlyCost     decimal.Decimal `json:"monthly_cost"`
}
