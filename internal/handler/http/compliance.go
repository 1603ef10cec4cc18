package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/crewlane/compliance-backend-go/internal/handler/http/response"
	"github.com/crewlane/compliance-backend-go/internal/pkg/sse"
	compliancesvc "github.com/crewlane/compliance-backend-go/internal/service/compliance"
	"github.com/go-chi/chi/v5"
)

type ComplianceHandler interface {
	ListAlerts(w http.ResponseWriter, r *http.Request)
	GetWorkerAlerts(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	alertService compliancesvc.AlertGenerator
	workers      worker.WorkerRepository
	hub          *sse.Hub
}

func NewComplianceHandler(
	alertService compliancesvc.AlertGenerator,
	workers worker.WorkerRepository,
	hub *sse.Hub,
) ComplianceHandler {
	return &complianceHandlerImpl{
		alertService: alertService,
		workers:      workers,
		hub:          hub,
	}
}

// ListAlerts runs an on-demand sweep over all active workers and returns
// the sorted alert list.
func (h *complianceHandlerImpl) ListAlerts(w http.ResponseWriter, r *http.Request) {
	workerIDs, err := h.workers.GetActiveIDs(r.Context())
	if err != nil {
		slog.Error("Failed to list active workers", "error", err)
		response.HandleError(w, err)
		return
	}

	alerts, err := h.alertService.GenerateAll(r.Context(), workerIDs)
	if err != nil {
		slog.Error("Compliance sweep failed", "error", err)
		response.HandleError(w, err)
		return
	}

	meta := &response.Meta{TotalItems: int64(len(alerts))}
	for _, alert := range alerts {
		if alert.Severity == compliance.SeverityCritical {
			meta.CriticalItems++
		}
	}

	response.SuccessWithMeta(w, alerts, meta)
}

// GetWorkerAlerts evaluates one worker and returns their alerts.
func (h *complianceHandlerImpl) GetWorkerAlerts(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	alerts, err := h.alertService.GenerateForWorker(r.Context(), workerID)
	if err != nil {
		slog.Error("Failed to generate worker alerts", "worker_id", workerID, "error", err)
		response.HandleError(w, err)
		return
	}
	if alerts == nil {
		alerts = []compliance.ComplianceAlert{}
	}

	response.Success(w, alerts)
}

// Stream handles SSE connections for real-time compliance alerts
func (h *complianceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAlerts)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	// Stream events
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
