package config

import "time"

// Defaults
const (
	DefaultPort                 = 8080
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultLogDir               = "logs"
	DefaultEnvironment          = "dev"
	DefaultServiceName          = "spin-wheel"
	DefaultVersion              = "dev"
	DefaultDBUser               = "postgres"
	DefaultDBPassword           = "postgres"
	DefaultDBHost               = "localhost"
	DefaultDBPort               = "5432"
	DefaultDBName               = "spinwheel"
	DefaultDBMaxConns           = 20
	DefaultDBMaxConnIdle        = 5 * time.Minute
	DefaultDBMaxConnLife        = 30 * time.Minute
	DefaultRedistributionPolicy = RedistributionPolicyEqualSplit
	DefaultResetStrategy        = ResetStrategyOriginalWeights
	DefaultCacheSize            = 256
	DefaultCacheTTL             = 30 * time.Second
	DefaultAPIURL               = "http://localhost:8080"
)

// Redistribution policies, matching selection.PolicyName values
const (
	RedistributionPolicyEqualSplit  = "equal_split"
	RedistributionPolicyRenormalize = "renormalize"
)

// Reset strategies
const (
	// ResetStrategyOriginalWeights restores every participant to its own original weight
	ResetStrategyOriginalWeights = "original_weights"

	// ResetStrategyLegacySubWheel restores each participant to the participant count
	// of another wheel named after it, when one exists
	ResetStrategyLegacySubWheel = "legacy_subwheel"
)

// Environment variable names
const (
	EnvPort                 = "PORT"
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogFormat            = "LOG_FORMAT"
	EnvLogDir               = "LOG_DIR"
	EnvEnvironment          = "ENVIRONMENT"
	EnvServiceName          = "SERVICE_NAME"
	EnvVersion              = "VERSION"
	EnvDBUser               = "DB_USER"
	EnvDBPassword           = "DB_PASSWORD"
	EnvDBHost               = "DB_HOST"
	EnvDBPort               = "DB_PORT"
	EnvDBName               = "DB_NAME"
	EnvDBMaxConns           = "DB_MAX_CONNS"
	EnvDBMaxConnIdle        = "DB_MAX_CONN_IDLE"
	EnvDBMaxConnLife        = "DB_MAX_CONN_LIFE"
	EnvAPIKey               = "API_KEY"
	EnvTrustedProxies       = "TRUSTED_PROXIES"
	EnvRedistributionPolicy = "REDISTRIBUTION_POLICY"
	EnvResetStrategy        = "RESET_STRATEGY"
	EnvCacheSize            = "CACHE_SIZE"
	EnvCacheTTL             = "CACHE_TTL"
	EnvDiscordToken         = "DISCORD_TOKEN"
	EnvDiscordAppID         = "DISCORD_APP_ID"
	EnvAPIURL               = "API_URL"
	EnvSchemaVersion        = "ENV_SCHEMA_VERSION"
)
