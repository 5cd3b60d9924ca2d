package costing

// Log messages
const (
	LogMsgDatasetLoaded      = "Dataset loaded"
	LogMsgDatasetLoadFailed  = "Dataset load failed, keeping previous dataset"
	LogMsgProducerConflict   = "Multiple blueprints produce the same type"
	LogMsgEvaluationComplete = "Evaluation complete"
	LogMsgCycleTruncated     = "Dependency cycle truncated evaluation"
	LogMsgCacheLookup        = "Result cache lookup"
)

// Error message prefixes
const (
	ErrContextLoadOverrides = "failed to load efficiency overrides"
	ErrContextReload        = "failed to reload dataset"
)
