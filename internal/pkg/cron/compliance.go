package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/crewlane/compliance-backend-go/internal/pkg/email"
	"github.com/crewlane/compliance-backend-go/internal/pkg/sse"
	compliancesvc "github.com/crewlane/compliance-backend-go/internal/service/compliance"
	"github.com/crewlane/compliance-backend-go/internal/service/timeline"
)

// ComplianceJobs contains the recurring compliance sweep
type ComplianceJobs struct {
	workers  worker.WorkerRepository
	alerts   compliancesvc.AlertGenerator
	builder  timeline.Builder
	hub      *sse.Hub
	emailSvc email.EmailService

	digestRecipient string
	sweepInterval   time.Duration
}

// NewComplianceJobs creates the compliance cron jobs. emailSvc and hub may
// be nil; the sweep then only logs its findings.
func NewComplianceJobs(
	workers worker.WorkerRepository,
	alerts compliancesvc.AlertGenerator,
	builder timeline.Builder,
	hub *sse.Hub,
	emailSvc email.EmailService,
	digestRecipient string,
	sweepInterval time.Duration,
) *ComplianceJobs {
	return &ComplianceJobs{
		workers:         workers,
		alerts:          alerts,
		builder:         builder,
		hub:             hub,
		emailSvc:        emailSvc,
		digestRecipient: digestRecipient,
		sweepInterval:   sweepInterval,
	}
}

// RegisterJobs registers the compliance sweep on the scheduler
func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("compliance_sweep", j.sweepInterval, j.RunComplianceSweep)
}

// RunComplianceSweep evaluates every active worker, streams the resulting
// alerts to live subscribers and mails the digest plus per-worker
// termination-notice reminders to the configured HR recipient.
func (j *ComplianceJobs) RunComplianceSweep(ctx context.Context) error {
	slog.Info("Cron: Starting compliance sweep")

	workerIDs, err := j.workers.GetActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active workers: %w", err)
	}
	if len(workerIDs) == 0 {
		slog.Info("Cron: No active workers to sweep")
		return nil
	}

	alerts, err := j.alerts.GenerateAll(ctx, workerIDs)
	if err != nil {
		// Partial results are still worth publishing.
		slog.Error("Cron: Compliance sweep incomplete", "error", err, "alerts", len(alerts))
	}

	criticalCount := 0
	for _, alert := range alerts {
		if alert.Severity == compliance.SeverityCritical {
			criticalCount++
		}
		if j.hub != nil {
			j.hub.Publish(sse.TopicAlerts, sse.Event{Event: "compliance_alert", Data: alert})
		}
	}

	if j.emailSvc != nil && j.digestRecipient != "" {
		if mailErr := j.emailSvc.SendComplianceDigest(j.digestRecipient, alerts); mailErr != nil {
			slog.Error("Cron: Failed to send compliance digest", "error", mailErr)
		}
		j.sendNoticeReminders(ctx, alerts)
	}

	slog.Info("Cron: Compliance sweep finished",
		"workers", len(workerIDs),
		"alerts", len(alerts),
		"critical", criticalCount,
	)
	return err
}

// sendNoticeReminders mails one reminder per worker whose termination
// notice deadline is critical or already missed.
func (j *ComplianceJobs) sendNoticeReminders(ctx context.Context, alerts []compliance.ComplianceAlert) {
	for _, alert := range alerts {
		if alert.Type != compliance.AlertTerminationNotice || alert.Severity != compliance.SeverityCritical {
			continue
		}

		journey, err := j.builder.BuildTimeline(ctx, alert.WorkerID)
		if err != nil {
			slog.Error("Cron: Failed to rebuild timeline for reminder", "worker_id", alert.WorkerID, "error", err)
			continue
		}
		if journey.TerminationNotice == nil || journey.CurrentContract == nil || journey.CurrentContract.EndDate == nil {
			continue
		}

		if err := j.emailSvc.SendTerminationNoticeReminder(
			j.digestRecipient,
			journey.WorkerName,
			*journey.CurrentContract.EndDate,
			*journey.TerminationNotice,
		); err != nil {
			slog.Error("Cron: Failed to send notice reminder", "worker_id", alert.WorkerID, "error", err)
		}
	}
}
