package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxConnIdle time.Duration
	DBMaxConnLife time.Duration

	APIKey         string   // API key for authentication
	TrustedProxies []string // Proxy IPs allowed to set X-Forwarded-For

	// Wheel behaviour
	RedistributionPolicy string // "equal_split" or "renormalize"
	ResetStrategy        string // "original_weights" or "legacy_subwheel"
	CacheSize            int
	CacheTTL             time.Duration

	// Discord front end
	DiscordToken string
	DiscordAppID string
	APIURL       string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:      getEnv(EnvLogDir, DefaultLogDir),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),

		DBUser:        getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:    getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:        getEnv(EnvDBHost, DefaultDBHost),
		DBPort:        getEnv(EnvDBPort, DefaultDBPort),
		DBName:        getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:    getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdle: getEnvAsDuration(EnvDBMaxConnIdle, DefaultDBMaxConnIdle),
		DBMaxConnLife: getEnvAsDuration(EnvDBMaxConnLife, DefaultDBMaxConnLife),

		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		RedistributionPolicy: strings.ToLower(getEnv(EnvRedistributionPolicy, DefaultRedistributionPolicy)),
		ResetStrategy:        strings.ToLower(getEnv(EnvResetStrategy, DefaultResetStrategy)),
		CacheSize:            getEnvAsInt(EnvCacheSize, DefaultCacheSize),
		CacheTTL:             getEnvAsDuration(EnvCacheTTL, DefaultCacheTTL),

		DiscordToken: getEnv(EnvDiscordToken, ""),
		DiscordAppID: getEnv(EnvDiscordAppID, ""),
		APIURL:       getEnv(EnvAPIURL, DefaultAPIURL),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.ResetStrategy {
	case ResetStrategyOriginalWeights, ResetStrategyLegacySubWheel:
	default:
		return nil, fmt.Errorf("invalid RESET_STRATEGY value %q", cfg.ResetStrategy)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a Go duration string, falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
