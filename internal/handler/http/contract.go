package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/handler/http/response"
	contractsvc "github.com/crewlane/compliance-backend-go/internal/service/contract"
	"github.com/go-chi/chi/v5"
)

type ContractHandler interface {
	GetWorkerContracts(w http.ResponseWriter, r *http.Request)
	GetWorkerTimeline(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	LinkOrphan(w http.ResponseWriter, r *http.Request)
}

type contractHandlerImpl struct {
	contractService contractsvc.Service
}

func NewContractHandler(contractService contractsvc.Service) ContractHandler {
	return &contractHandlerImpl{contractService: contractService}
}

// GetWorkerContracts returns the worker's contracts with the enriched
// timeline and the dashboard summary.
func (h *contractHandlerImpl) GetWorkerContracts(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	resp, err := h.contractService.GetWorkerContracts(r.Context(), workerID)
	if err != nil {
		slog.Error("Failed to get worker contracts", "worker_id", workerID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetWorkerTimeline returns only the enriched employment journey.
func (h *contractHandlerImpl) GetWorkerTimeline(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	resp, err := h.contractService.GetWorkerContracts(r.Context(), workerID)
	if err != nil {
		slog.Error("Failed to build worker timeline", "worker_id", workerID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp.Timeline)
}

func (h *contractHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.contractService.CreateContract(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create contract", "worker_id", req.WorkerID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created successfully", created)
}

func (h *contractHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if contractID == "" {
		response.BadRequest(w, "Contract ID is required", nil)
		return
	}

	var req contract.UpdateContractStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.contractService.UpdateContractStatus(r.Context(), contractID, req)
	if err != nil {
		slog.Error("Failed to update contract status", "contract_id", contractID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract status updated", updated)
}

func (h *contractHandlerImpl) LinkOrphan(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if contractID == "" {
		response.BadRequest(w, "Contract ID is required", nil)
		return
	}

	var req contract.LinkOrphanContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.contractService.LinkOrphanContract(r.Context(), contractID, req); err != nil {
		slog.Error("Failed to link orphan contract", "contract_id", contractID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract linked to worker", nil)
}
