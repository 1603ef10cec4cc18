package compliance

// RuleSet holds the jurisdiction-specific chain-rule and notice thresholds.
// Defaults follow the Dutch ketenregeling / aanzegtermijn; other
// jurisdictions inject their own values through configuration.
type RuleSet struct {
	// Chain rule: a permanent contract becomes mandatory at either limit.
	MaxFixedTermContracts int // successive fixed-term contracts
	MaxChainMonths        int // cumulative months since first contract start

	// Bands below the hard limits.
	CriticalContracts int // fixed-term count that puts the next renewal at the limit
	CriticalMonths    int
	WarningMonths     int // single-contract band

	// Termination notice.
	NoticeWindowDays int

	// Reporting windows.
	ExpiryHorizonDays int // "expiring soon" horizon for summaries and alerts
	StaleDraftDays    int // drafts older than this count as defects
}

// DefaultRuleSet returns the statutory defaults.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		MaxFixedTermContracts: 3,
		MaxChainMonths:        36,
		CriticalContracts:     2,
		CriticalMonths:        30,
		WarningMonths:         18,
		NoticeWindowDays:      30,
		ExpiryHorizonDays:     60,
		StaleDraftDays:        7,
	}
}
