package payrollfeed

import (
	"time"

	"github.com/shopspring/decimal"
)

// NeverEnds is the sentinel the payroll provider uses for open-ended
// employment. Resolution normalizes it to a nil end date.
var NeverEnds = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// EmploymentBlock is one employment stint as reported by the external
// payroll provider. Salary and hours arrive as slices of dated
// sub-records, at most one of each flagged active.
type EmploymentBlock struct {
	ID           string
	WorkerID     string
	WorkerName   string
	StartDate    time.Time
	EndDate      *time.Time // may carry the NeverEnds sentinel
	IsPermanent  bool
	SalarySlices []SalarySlice
	HoursSlices  []HoursSlice
}

// SalarySlice is a dated salary sub-record inside an employment block.
// Monthly and yearly figures are optional; resolution derives them from
// the hourly wage and active hours when absent.
type SalarySlice struct {
	HourlyWage  decimal.Decimal
	MonthlyWage decimal.Decimal
	YearlyWage  decimal.Decimal
	StartDate   time.Time
	IsActive    bool
}

// HoursSlice is a dated working-hours sub-record inside an employment block.
type HoursSlice struct {
	HoursPerWeek decimal.Decimal
	DaysPerWeek  int
	StartDate    time.Time
	IsActive     bool
}

// ActiveSalary returns the salary slice flagged active, falling back to
// the most recent slice when none is flagged. ok is false for an empty
// slice list.
func (b EmploymentBlock) ActiveSalary() (SalarySlice, bool) {
	var latest SalarySlice
	found := false
	for _, s := range b.SalarySlices {
		if s.IsActive {
			return s, true
		}
		if !found || s.StartDate.After(latest.StartDate) {
			latest = s
			found = true
		}
	}
	return latest, found
}

// ActiveHours mirrors ActiveSalary for the hours sub-records.
func (b EmploymentBlock) ActiveHours() (HoursSlice, bool) {
	var latest HoursSlice
	found := false
	for _, h := range b.HoursSlices {
		if h.IsActive {
			return h, true
		}
		if !found || h.StartDate.After(latest.StartDate) {
			latest = h
			found = true
		}
	}
	return latest, found
}

// NormalizedEnd maps the provider's NeverEnds sentinel to nil.
func (b EmploymentBlock) NormalizedEnd() *time.Time {
	if b.EndDate == nil || b.EndDate.Equal(NeverEnds) {
		return nil
	}
	end := *b.EndDate
	return &end
}
