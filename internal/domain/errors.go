package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Blueprint errors
	ErrMsgBlueprintNotFound = "blueprint not found"

	// Parameter errors
	ErrMsgInvalidRunParams  = "invalid run parameters"
	ErrMsgInvalidEfficiency = "invalid efficiency"

	// Dataset errors
	ErrMsgCatalogNotLoaded  = "catalog not loaded"
	ErrMsgInvalidCatalog    = "invalid catalog"
	ErrMsgInvalidPriceTable = "invalid price table"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrBlueprintNotFound = errors.New(ErrMsgBlueprintNotFound)

	ErrInvalidRunParams  = errors.New(ErrMsgInvalidRunParams)
	ErrInvalidEfficiency = errors.New(ErrMsgInvalidEfficiency)

	ErrCatalogNotLoaded  = errors.New(ErrMsgCatalogNotLoaded)
	ErrInvalidCatalog    = errors.New(ErrMsgInvalidCatalog)
	ErrInvalidPriceTable = errors.New(ErrMsgInvalidPriceTable)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
