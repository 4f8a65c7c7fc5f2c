// Package config reads typed values from environment variables.
//
// Every getter returns the default when the variable is unset or empty. A
// value that is set but cannot be parsed is logged at WARN and the default is
// used instead, so a typo never stops the server from starting.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv looks key up and converts it with parse.
func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}

// GetEnvString returns the value of key or defaultValue.
//
//	dsn := GetEnvString("DATABASE_URL", "")
func GetEnvString(key, defaultValue string) string {
	return getEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// GetEnvInt returns key parsed as a base-10 integer.
//
//	maxTake := GetEnvInt("PAGINATION_MAX_TAKE", 100)
func GetEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvBool returns key parsed with strconv.ParseBool ("1", "t", "true", "0", "f", "false", ...).
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration returns key parsed with time.ParseDuration.
//
//	lifetime := GetEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, time.ParseDuration)
}

// GetEnvStringList splits key on commas, trimming each element and dropping
// empty ones. A value with no non-empty elements yields defaultValue.
//
//	// PAGINATION_DEFAULT_ORDER="startDate_DESC, id_DESC"
//	order := GetEnvStringList("PAGINATION_DEFAULT_ORDER", []string{"id_DESC"})
//	// order == []string{"startDate_DESC", "id_DESC"}
func GetEnvStringList(key string, defaultValue []string) []string {
	list := getEnv(key, nil, func(s string) ([]string, error) { return SplitList(s), nil })
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

// SplitList splits a comma-separated value into trimmed, non-empty elements.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
