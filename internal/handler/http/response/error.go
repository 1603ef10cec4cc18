package response

import (
	"errors"
	"net/http"

	"github.com/crewlane/compliance-backend-go/internal/domain/contract"
	"github.com/crewlane/compliance-backend-go/internal/domain/payrollfeed"
	"github.com/crewlane/compliance-backend-go/internal/domain/worker"
	"github.com/crewlane/compliance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")

	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, contract.ErrContractAlreadyLinked):
		Conflict(w, "Contract is already linked to a worker")
	case errors.Is(err, contract.ErrDuplicatePeriod):
		Conflict(w, "A contract with this start date already exists for the worker")
	case errors.Is(err, contract.ErrMissingDependents):
		Conflict(w, "Contract is missing its dependent records")

	// Payroll feed errors
	case errors.Is(err, payrollfeed.ErrSourceUnavailable):
		ServiceUnavailable(w, "Payroll snapshot source is unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
