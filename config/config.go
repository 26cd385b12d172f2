package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// RegionIDPolicy controls how the article writer treats a region entry whose id matches no stored region.
type RegionIDPolicy string

const (
	// RegionIDPolicyCreate creates a new region from the entry and lets the store assign its id.
	RegionIDPolicyCreate RegionIDPolicy = "create"
	// RegionIDPolicyStrict rejects the write, the same way an unknown author id is rejected.
	RegionIDPolicyStrict RegionIDPolicy = "strict"
)

const (
	defaultDatabasePath   = "articles.db"
	defaultPort           = "8080"
	defaultAllowedOrigins = "http://localhost:5173"
	defaultRequestTimeout = 60
)

type Config struct {
	// database path
	DatabasePath string

	// http settings
	Port           string
	AllowedOrigins []string
	RequestTimeout time.Duration

	// logging
	LogLevel string
	DebugSQL bool // trace every statement through the GORM logger

	RegionIDPolicy RegionIDPolicy
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		slog.Warn("invalid integer setting, using default", "key", envVar, "value", valStr, "default", defaultVal, "err", err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("invalid boolean setting, using default", "key", envVar, "value", valStr, "default", defaultVal)
		return defaultVal
	}
	return val
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	policy := RegionIDPolicy(strings.ToLower(getEnvOrDefault("REGION_ID_POLICY", string(RegionIDPolicyCreate))))
	switch policy {
	case RegionIDPolicyCreate, RegionIDPolicyStrict:
	default:
		return Config{}, fmt.Errorf("invalid REGION_ID_POLICY '%s': expected '%s' or '%s'", policy, RegionIDPolicyCreate, RegionIDPolicyStrict)
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins))
	if len(origins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS must name at least one origin")
	}

	cfg := Config{
		DatabasePath:   getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		Port:           getEnvOrDefault("PORT", defaultPort),
		AllowedOrigins: origins,
		RequestTimeout: time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)) * time.Second,
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		DebugSQL:       getEnvBoolOrDefault("DEBUG_SQL", false),
		RegionIDPolicy: policy,
	}

	return cfg, nil
}
