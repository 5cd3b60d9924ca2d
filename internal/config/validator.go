package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains or renames a
// required variable
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty for any deployment
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
	"CATALOG_PATH",
}

// PostgresEnvVars must be set in addition when STORAGE_DRIVER=postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// placeholder is a value shipped in .env.example that must be replaced
type placeholder struct {
	env, value, hint string
}

var placeholders = []placeholder{
	{"DB_PASSWORD", "change_this_secure_password", "please use a secure password"},
	{"API_KEY", "generate_with_openssl_rand_hex_32", "generate a secure key with: openssl rand -hex 32"},
}

// ValidateEnv checks the env schema version and that every required variable
// for the selected storage driver is present
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, version)
	}

	missing := missingVars(RequiredEnvVars)
	if os.Getenv("STORAGE_DRIVER") == StoragePostgres {
		missing = append(missing, missingVars(PostgresEnvVars)...)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func missingVars(names []string) []string {
	var missing []string
	for _, name := range names {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// ValidateEnvWithWarnings runs ValidateEnv and additionally reports settings
// that work but should not reach production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, p := range placeholders {
		if os.Getenv(p.env) == p.value {
			warnings = append(warnings, fmt.Sprintf("%s appears to be using the example value - %s", p.env, p.hint))
		}
	}

	if os.Getenv("PRICES_URL") == "" && os.Getenv("PRICES_PATH") == "" {
		warnings = append(warnings, "neither PRICES_URL nor PRICES_PATH is set - falling back to "+ConfigPathPrices)
	}

	return warnings, nil
}
