package domain

// Approximation flag names as reported to clients
const (
	FlagCycleTruncated = "cycle_truncated"
	FlagMissingPrice   = "missing_price"
	FlagExact          = "exact"
)
