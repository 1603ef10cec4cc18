package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/service/timeline"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AlertGenerator sweeps workers and emits a globally sorted list of
// actionable compliance alerts.
type AlertGenerator interface {
	GenerateAll(ctx context.Context, workerIDs []string) ([]compliance.ComplianceAlert, error)
	GenerateForWorker(ctx context.Context, workerID string) ([]compliance.ComplianceAlert, error)
}

type alertGeneratorImpl struct {
	builder     timeline.Builder
	rules       compliance.RuleSet
	concurrency int
	now         func() time.Time
}

func NewAlertGenerator(builder timeline.Builder, rules compliance.RuleSet, concurrency int) AlertGenerator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &alertGeneratorImpl{
		builder:     builder,
		rules:       rules,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// GenerateAll fans out one timeline build per worker on a bounded pool.
// A worker whose data cannot be built is logged and skipped; the rest of
// the sweep proceeds. Context cancellation aborts remaining work and
// returns the alerts emitted so far together with the context error.
func (g *alertGeneratorImpl) GenerateAll(ctx context.Context, workerIDs []string) ([]compliance.ComplianceAlert, error) {
	var (
		mu     sync.Mutex
		alerts []compliance.ComplianceAlert
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.concurrency)

	for _, workerID := range workerIDs {
		workerID := workerID
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			workerAlerts, err := g.GenerateForWorker(groupCtx, workerID)
			if err != nil {
				// One malformed worker must not abort the sweep.
				slog.Warn("skipping worker in compliance sweep", "worker_id", workerID, "error", err)
				return nil
			}

			mu.Lock()
			alerts = append(alerts, workerAlerts...)
			mu.Unlock()
			return nil
		})
	}

	err := group.Wait()

	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Less(alerts[j]) })
	return alerts, err
}

// GenerateForWorker builds one worker's timeline and derives its alerts.
// At most one alert per type is emitted per invocation.
func (g *alertGeneratorImpl) GenerateForWorker(ctx context.Context, workerID string) ([]compliance.ComplianceAlert, error) {
	journey, err := g.builder.BuildTimeline(ctx, workerID)
	if err != nil {
		return nil, err
	}

	now := g.now()
	var alerts []compliance.ComplianceAlert

	switch journey.ChainRuleStatus.WarningLevel {
	case compliance.ChainPermanentRequired:
		alerts = append(alerts, compliance.ComplianceAlert{
			ID:             uuid.NewString(),
			WorkerID:       journey.WorkerID,
			WorkerName:     journey.WorkerName,
			Type:           compliance.AlertPermanentRequired,
			Severity:       compliance.SeverityCritical,
			Message:        journey.ChainRuleStatus.Recommendation,
			ActionRequired: "Offer a permanent contract before the next renewal.",
		})
	case compliance.ChainCritical:
		alerts = append(alerts, compliance.ComplianceAlert{
			ID:         uuid.NewString(),
			WorkerID:   journey.WorkerID,
			WorkerName: journey.WorkerName,
			Type:       compliance.AlertChainRule,
			Severity:   compliance.SeverityWarning,
			Message:    journey.ChainRuleStatus.Recommendation,
			ActionRequired: fmt.Sprintf(
				"Review the chain position: %d fixed-term contracts over %d months.",
				journey.ChainRuleStatus.TotalFixedTermContracts, journey.ChainRuleStatus.TotalEmploymentMonths),
		})
	}

	if notice := journey.TerminationNotice; notice != nil && notice.ShouldNotify {
		deadline := notice.DeadlineDate
		days := notice.DaysUntilDeadline
		alerts = append(alerts, compliance.ComplianceAlert{
			ID:             uuid.NewString(),
			WorkerID:       journey.WorkerID,
			WorkerName:     journey.WorkerName,
			Type:           compliance.AlertTerminationNotice,
			Severity:       noticeSeverity(notice.NotificationStatus),
			Message:        noticeMessage(notice),
			ActionRequired: "Send the renewal/non-renewal notification.",
			Deadline:       &deadline,
			DaysRemaining:  &days,
		})
	}

	if alert, ok := g.renewalDecisionAlert(journey, now); ok {
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// renewalDecisionAlert flags contracts that end inside the expiry horizon
// while the worker sits in a chain-rule band: the renewal decision is
// where the chain position gets locked in.
func (g *alertGeneratorImpl) renewalDecisionAlert(journey compliance.EmploymentJourney, now time.Time) (compliance.ComplianceAlert, bool) {
	current := journey.CurrentContract
	if current == nil || current.EndDate == nil {
		return compliance.ComplianceAlert{}, false
	}

	level := journey.ChainRuleStatus.WarningLevel
	if level != compliance.ChainWarning && level != compliance.ChainCritical {
		return compliance.ComplianceAlert{}, false
	}

	days := compliance.WholeDays(now, *current.EndDate)
	if days < 0 || days > g.rules.ExpiryHorizonDays {
		return compliance.ComplianceAlert{}, false
	}

	severity := compliance.SeverityInfo
	if level == compliance.ChainCritical {
		severity = compliance.SeverityWarning
	}
	deadline := *current.EndDate

	return compliance.ComplianceAlert{
		ID:             uuid.NewString(),
		WorkerID:       journey.WorkerID,
		WorkerName:     journey.WorkerName,
		Type:           compliance.AlertRenewalDecision,
		Severity:       severity,
		Message:        fmt.Sprintf("Contract ends in %d days while the chain position is %s.", days, level),
		ActionRequired: "Decide on renewal: another fixed-term contract moves the chain position forward.",
		Deadline:       &deadline,
		DaysRemaining:  &days,
	}, true
}

func noticeSeverity(status compliance.NotificationStatus) compliance.AlertSeverity {
	switch status {
	case compliance.NoticeOverdue, compliance.NoticeCritical:
		return compliance.SeverityCritical
	case compliance.NoticeUrgent:
		return compliance.SeverityWarning
	default:
		return compliance.SeverityInfo
	}
}

func noticeMessage(notice *compliance.TerminationNotice) string {
	if notice.NotificationStatus == compliance.NoticeOverdue {
		return fmt.Sprintf("Termination notice is %d days overdue; penalty accrued: %s.",
			notice.PenaltyDays, notice.PenaltyAmount.StringFixed(2))
	}
	return fmt.Sprintf("Termination notice is due in %d days.", notice.DaysUntilDeadline)
}
