package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set for the API server
var RequiredEnvVars = []string{
	EnvSchemaVersion,
	EnvDBUser,
	EnvDBPassword,
	EnvDBHost,
	EnvDBPort,
	EnvDBName,
	EnvAPIKey,
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv(EnvSchemaVersion)
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return validateWheelEnv()
}

// validateWheelEnv rejects wheel settings that Load would otherwise replace with defaults
func validateWheelEnv() error {
	if v := strings.ToLower(os.Getenv(EnvRedistributionPolicy)); v != "" &&
		v != RedistributionPolicyEqualSplit && v != RedistributionPolicyRenormalize {
		return fmt.Errorf("invalid REDISTRIBUTION_POLICY %q: expected %s or %s", v, RedistributionPolicyEqualSplit, RedistributionPolicyRenormalize)
	}

	if v := strings.ToLower(os.Getenv(EnvResetStrategy)); v != "" &&
		v != ResetStrategyOriginalWeights && v != ResetStrategyLegacySubWheel {
		return fmt.Errorf("invalid RESET_STRATEGY %q: expected %s or %s", v, ResetStrategyOriginalWeights, ResetStrategyLegacySubWheel)
	}

	if v := os.Getenv(EnvCacheTTL); v != "" {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("invalid CACHE_TTL %q: must be a positive duration such as 30s", v)
		}
	}

	if v := os.Getenv(EnvCacheSize); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			return fmt.Errorf("invalid CACHE_SIZE %q: must be a positive integer", v)
		}
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv(EnvDBPassword) == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv(EnvAPIKey) == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if strings.ToLower(os.Getenv(EnvResetStrategy)) == ResetStrategyLegacySubWheel {
		warnings = append(warnings, "RESET_STRATEGY=legacy_subwheel restores weights from other wheels named after participants - only use it for migrated data")
	}

	return warnings, nil
}
