package compliance

import (
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/shopspring/decimal"
)

type ChainWarningLevel string

const (
	ChainSafe              ChainWarningLevel = "safe"
	ChainWarning           ChainWarningLevel = "warning"
	ChainCritical          ChainWarningLevel = "critical"
	ChainPermanentRequired ChainWarningLevel = "permanent_required"
)

// ChainRuleStatus is the derived chain-rule position of one worker.
// Recomputed on every read, never persisted.
type ChainRuleStatus struct {
	TotalFixedTermContracts int               `json:"total_fixed_term_contracts"`
	TotalEmploymentMonths   int               `json:"total_employment_months"`
	RequiresPermanentNext   bool              `json:"requires_permanent_next"`
	WarningLevel            ChainWarningLevel `json:"warning_level"`
	Recommendation          string            `json:"recommendation"`
}

type NotificationStatus string

const (
	NoticeEarly    NotificationStatus = "early"
	NoticeIdeal    NotificationStatus = "ideal"
	NoticeUrgent   NotificationStatus = "urgent"
	NoticeCritical NotificationStatus = "critical"
	NoticeOverdue  NotificationStatus = "overdue"
)

// TerminationNotice is present only when the active contract has an end
// date. PenaltyAmount = PenaltyDays x daily wage.
type TerminationNotice struct {
	DeadlineDate       time.Time          `json:"deadline_date"`
	DaysUntilDeadline  int                `json:"days_until_deadline"`
	NotificationStatus NotificationStatus `json:"notification_status"`
	ShouldNotify       bool               `json:"should_notify"`
	PenaltyDays        int                `json:"penalty_days"`
	PenaltyAmount      decimal.Decimal    `json:"penalty_amount"`
}

type SalaryChangeReason string

const (
	ReasonContractStart   SalaryChangeReason = "contract_start"
	ReasonContractRenewal SalaryChangeReason = "contract_renewal"
	ReasonRaise           SalaryChangeReason = "raise"
	ReasonReview          SalaryChangeReason = "review"
)

// SalaryChange is one entry in a worker's salary progression.
type SalaryChange struct {
	Date            time.Time          `json:"date"`
	HourlyWage      decimal.Decimal    `json:"hourly_wage"`
	MonthlyWage     decimal.Decimal    `json:"monthly_wage"`
	YearlyWage      decimal.Decimal    `json:"yearly_wage"`
	IncreasePercent decimal.Decimal    `json:"increase_percent"`
	Reason          SalaryChangeReason `json:"reason"`
}

// SalaryPoint is the tracker's input: a dated wage triple with an
// optional caller-supplied reason.
type SalaryPoint struct {
	Date        time.Time
	HourlyWage  decimal.Decimal
	MonthlyWage decimal.Decimal
	YearlyWage  decimal.Decimal
	Reason      SalaryChangeReason // empty = use positional default
}

// EmploymentJourney is the aggregate read model returned to callers.
// Field names and enumerations are a stable contract with presentation
// and reporting consumers.
type EmploymentJourney struct {
	WorkerID              string                    `json:"worker_id"`
	WorkerName            string                    `json:"worker_name"`
	TotalContracts        int                       `json:"total_contracts"`
	TotalEmploymentMonths int                       `json:"total_employment_months"`
	FirstStartDate        *time.Time                `json:"first_start_date,omitempty"`
	CurrentContract       *contract.ContractPeriod  `json:"current_contract,omitempty"`
	Contracts             []contract.ContractPeriod `json:"contracts"`
	ChainRuleStatus       ChainRuleStatus           `json:"chain_rule_status"`
	TerminationNotice     *TerminationNotice        `json:"termination_notice,omitempty"`
	SalaryProgression     []SalaryChange            `json:"salary_progression"`
	ComplianceScore       int                       `json:"compliance_score"`
}

type AlertType string

const (
	AlertChainRule         AlertType = "chain_rule"
	AlertTerminationNotice AlertType = "termination_notice"
	AlertPermanentRequired AlertType = "permanent_required"
	AlertRenewalDecision   AlertType = "renewal_decision"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// severityRank orders critical before warning before info.
func severityRank(s AlertSeverity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// ComplianceAlert is one actionable item for HR. DaysRemaining is signed;
// negative means overdue.
type ComplianceAlert struct {
	ID             string        `json:"id"`
	WorkerID       string        `json:"worker_id"`
	WorkerName     string        `json:"worker_name"`
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	ActionRequired string        `json:"action_required"`
	Deadline       *time.Time    `json:"deadline,omitempty"`
	DaysRemaining  *int          `json:"days_remaining,omitempty"`
}

// Less orders alerts by severity, then days remaining ascending with
// nil sorted last. Used for the global alert sort.
func (a ComplianceAlert) Less(b ComplianceAlert) bool {
	ra, rb := severityRank(a.Severity), severityRank(b.Severity)
	if ra != rb {
		return ra < rb
	}
	switch {
	case a.DaysRemaining == nil && b.DaysRemaining == nil:
		return false
	case a.DaysRemaining == nil:
		return false
	case b.DaysRemaining == nil:
		return true
	default:
		return *a.DaysRemaining < *b.DaysRemaining
	}
}

// WholeDays counts calendar days from one instant's date to another's,
// ignoring time of day. Negative when to is before from.
func WholeDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
