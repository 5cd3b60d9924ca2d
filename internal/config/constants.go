package config

const (
	// Configuration file paths
	ConfigPathCatalog = "configs/blueprints.json"
	ConfigPathPrices  = "configs/prices.json"
)

// Storage drivers for efficiency overrides
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const DefaultServiceName = "blueprint-cost"
