package compliance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

// fakeBuilder serves canned journeys keyed by worker id.
type fakeBuilder struct {
	journeys map[string]compliance.EmploymentJourney
	errs     map[string]error
	calls    atomic.Int32
	delay    time.Duration
}

func (f *fakeBuilder) BuildTimeline(ctx context.Context, workerID string) (compliance.EmploymentJourney, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return compliance.EmploymentJourney{}, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if err := f.errs[workerID]; err != nil {
		return compliance.EmploymentJourney{}, err
	}
	return f.journeys[workerID], nil
}

func newTestGenerator(builder *fakeBuilder) *alertGeneratorImpl {
	g := NewAlertGenerator(builder, compliance.DefaultRuleSet(), 4).(*alertGeneratorImpl)
	g.now = func() time.Time { return testNow }
	return g
}

func safeJourney(workerID string) compliance.EmploymentJourney {
	return compliance.EmploymentJourney{
		WorkerID:        workerID,
		WorkerName:      "Worker " + workerID,
		ChainRuleStatus: compliance.ChainRuleStatus{WarningLevel: compliance.ChainSafe},
	}
}

func permanentRequiredJourney(workerID string) compliance.EmploymentJourney {
	j := safeJourney(workerID)
	j.ChainRuleStatus = compliance.ChainRuleStatus{
		WarningLevel:          compliance.ChainPermanentRequired,
		RequiresPermanentNext: true,
		Recommendation:        "The chain-rule limit has been reached: the next contract must be permanent.",
	}
	return j
}

func noticeJourney(workerID string, daysUntil int, status compliance.NotificationStatus) compliance.EmploymentJourney {
	j := safeJourney(workerID)
	j.TerminationNotice = &compliance.TerminationNotice{
		DeadlineDate:       testNow.AddDate(0, 0, daysUntil),
		DaysUntilDeadline:  daysUntil,
		NotificationStatus: status,
		ShouldNotify:       true,
		PenaltyAmount:      decimal.Zero,
	}
	return j
}

func TestGenerateForWorker_PermanentRequired(t *testing.T) {
	t.Parallel()
	builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{
		"w1": permanentRequiredJourney("w1"),
	}}

	alerts, err := newTestGenerator(builder).GenerateForWorker(context.Background(), "w1")

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, compliance.AlertPermanentRequired, alerts[0].Type)
	assert.Equal(t, compliance.SeverityCritical, alerts[0].Severity)
	assert.NotEmpty(t, alerts[0].Message)
}

func TestGenerateForWorker_CriticalChainEmitsWarning(t *testing.T) {
	t.Parallel()
	j := safeJourney("w1")
	j.ChainRuleStatus = compliance.ChainRuleStatus{
		WarningLevel:            compliance.ChainCritical,
		TotalFixedTermContracts: 2,
		TotalEmploymentMonths:   20,
		Recommendation:          "One more fixed-term contract will trigger the permanent-contract obligation.",
	}
	builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{"w1": j}}

	alerts, err := newTestGenerator(builder).GenerateForWorker(context.Background(), "w1")

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, compliance.AlertChainRule, alerts[0].Type)
	assert.Equal(t, compliance.SeverityWarning, alerts[0].Severity)
}

func TestGenerateForWorker_NoticeSeverityFollowsStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status compliance.NotificationStatus
		want   compliance.AlertSeverity
	}{
		{compliance.NoticeOverdue, compliance.SeverityCritical},
		{compliance.NoticeCritical, compliance.SeverityCritical},
		{compliance.NoticeUrgent, compliance.SeverityWarning},
		{compliance.NoticeIdeal, compliance.SeverityInfo},
	}

	for _, tc := range cases {
		builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{
			"w1": noticeJourney("w1", 5, tc.status),
		}}

		alerts, err := newTestGenerator(builder).GenerateForWorker(context.Background(), "w1")

		require.NoError(t, err)
		require.Len(t, alerts, 1, "status %s", tc.status)
		assert.Equal(t, compliance.AlertTerminationNotice, alerts[0].Type)
		assert.Equal(t, tc.want, alerts[0].Severity, "status %s", tc.status)
		require.NotNil(t, alerts[0].DaysRemaining)
		assert.Equal(t, 5, *alerts[0].DaysRemaining)
	}
}

func TestGenerateForWorker_RenewalDecisionInsideHorizon(t *testing.T) {
	t.Parallel()

	end := testNow.AddDate(0, 0, 40)
	j := safeJourney("w1")
	j.ChainRuleStatus = compliance.ChainRuleStatus{WarningLevel: compliance.ChainCritical, Recommendation: "x"}
	j.CurrentContract = &contract.ContractPeriod{ID: "c1", EndDate: &end}
	builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{"w1": j}}

	alerts, err := newTestGenerator(builder).GenerateForWorker(context.Background(), "w1")

	require.NoError(t, err)
	require.Len(t, alerts, 2, "chain alert plus renewal decision")

	var renewal *compliance.ComplianceAlert
	for i := range alerts {
		if alerts[i].Type == compliance.AlertRenewalDecision {
			renewal = &alerts[i]
		}
	}
	require.NotNil(t, renewal)
	assert.Equal(t, compliance.SeverityWarning, renewal.Severity)
	require.NotNil(t, renewal.DaysRemaining)
	assert.Equal(t, 40, *renewal.DaysRemaining)
}

func TestGenerateForWorker_SafeWorkerEmitsNothing(t *testing.T) {
	t.Parallel()
	builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{"w1": safeJourney("w1")}}

	alerts, err := newTestGenerator(builder).GenerateForWorker(context.Background(), "w1")

	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGenerateAll_SortsBySeverityThenUrgency(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{journeys: map[string]compliance.EmploymentJourney{
		"info":     noticeJourney("info", 50, compliance.NoticeIdeal),
		"critical": permanentRequiredJourney("critical"),
		"urgent":   noticeJourney("urgent", 10, compliance.NoticeUrgent),
		"overdue":  noticeJourney("overdue", -5, compliance.NoticeOverdue),
	}}

	alerts, err := newTestGenerator(builder).GenerateAll(context.Background(),
		[]string{"info", "critical", "urgent", "overdue"})

	require.NoError(t, err)
	require.Len(t, alerts, 4)

	// Critical first; within critical the overdue notice (days -5) sorts
	// before the chain alert with no days remaining (nil last).
	assert.Equal(t, compliance.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "overdue", alerts[0].WorkerID)
	assert.Equal(t, compliance.SeverityCritical, alerts[1].Severity)
	assert.Equal(t, "critical", alerts[1].WorkerID)
	assert.Equal(t, compliance.SeverityWarning, alerts[2].Severity)
	assert.Equal(t, compliance.SeverityInfo, alerts[3].Severity)
}

func TestGenerateAll_SkipsMalformedWorkers(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{
		journeys: map[string]compliance.EmploymentJourney{
			"ok": permanentRequiredJourney("ok"),
		},
		errs: map[string]error{
			"broken": errors.New("malformed snapshot payload"),
			"ghost":  worker.ErrWorkerNotFound,
		},
	}

	alerts, err := newTestGenerator(builder).GenerateAll(context.Background(), []string{"broken", "ok", "ghost"})

	require.NoError(t, err, "per-worker failures must not abort the sweep")
	require.Len(t, alerts, 1)
	assert.Equal(t, "ok", alerts[0].WorkerID)
}

func TestGenerateAll_ContextCancellationStopsSweep(t *testing.T) {
	t.Parallel()

	journeys := make(map[string]compliance.EmploymentJourney)
	var ids []string
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		journeys[id] = safeJourney(id)
		ids = append(ids, id)
	}
	builder := &fakeBuilder{journeys: journeys, delay: 50 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	g := NewAlertGenerator(builder, compliance.DefaultRuleSet(), 2).(*alertGeneratorImpl)
	g.now = func() time.Time { return testNow }

	_, err := g.GenerateAll(ctx, ids)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, builder.calls.Load(), int32(8), "remaining work is abandoned after cancellation")
}
