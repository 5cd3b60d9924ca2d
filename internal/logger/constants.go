package logger

// Accepted LOG_LEVEL values; "warning" is an alias of "warn"
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "blueprint-cost"
	DefaultVersion     = "dev"
)

// Deployment environments. Dev enables source locations in log records.
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

// Attribute keys attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)

// Attribute keys shared by evaluation, dataset and HTTP logs so records can be
// joined across components
const (
	AttrKeyBlueprintID = "blueprint_id"
	AttrKeyBlueprints  = "blueprints"
	AttrKeyCacheKey    = "cache_key"
	AttrKeyClientIP    = "ip"
	AttrKeyDuration    = "duration"
)
