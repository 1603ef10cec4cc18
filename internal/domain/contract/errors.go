package contract

import "errors"

var (
	ErrContractNotFound      = errors.New("contract not found")
	ErrInvalidTransition     = errors.New("invalid contract status transition")
	ErrContractAlreadyLinked = errors.New("contract is already linked to a worker")
	ErrDuplicatePeriod       = errors.New("worker already has a contract starting on this date")
	ErrMissingDependents     = errors.New("contract is missing dependent sub-records")
)
