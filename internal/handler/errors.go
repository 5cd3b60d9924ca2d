package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQuery          = "Invalid query parameters"

	ErrMsgInvalidBlueprintID = "Invalid blueprint ID"
	ErrMsgInvalidTypeID      = "Invalid type ID"

	ErrMsgReloadFailed = "Failed to reload blueprint data"
)

// Success messages for API responses
const (
	MsgEfficiencyCleared = "Efficiency override cleared"
	MsgDatasetReloaded   = "Blueprint data reloaded"
)
