package contract

import "fmt"

type ContractStatus string

const (
	StatusDraft      ContractStatus = "draft"
	StatusActive     ContractStatus = "active"
	StatusExpired    ContractStatus = "expired"
	StatusTerminated ContractStatus = "terminated"
)

// allowedTransitions encodes the contract lifecycle:
// draft -> active -> {expired, terminated}. Expired and terminated are
// terminal; no backward moves.
var allowedTransitions = map[ContractStatus][]ContractStatus{
	StatusDraft:      {StatusActive},
	StatusActive:     {StatusExpired, StatusTerminated},
	StatusExpired:    {},
	StatusTerminated: {},
}

// ValidStatus reports whether s is a known contract status.
func ValidStatus(s ContractStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ContractStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition (wrapped with the attempted
// and allowed states) when the move is illegal.
func CheckTransition(from, to ContractStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s (allowed from %s: %v)", ErrInvalidTransition, from, to, from, allowedTransitions[from])
}
