// Package pagination implements opaque-cursor (keyset) pagination shared by
// every listing endpoint.
//
// A listing hands its query builder and the client's Request to Apply, which
// adds the seek predicate, the ORDER BY clauses and the LIMIT. After the query
// has been executed the returned Plan turns the page into the continuation
// cursor for the next call.
package pagination

import (
	envconfig "book-journal/pkg/config"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or the listing config file.
type Config struct {
	DefaultTake  int      // Rows per page when the client sends no take (typically 5)
	MaxTake      int      // Upper bound accepted for take (typically 100)
	DefaultOrder []string // Order directives used when the client sends none
}

// DefaultConfig returns the default pagination configuration.
// Default values: take=5, max=100, order=["id_DESC"]
func DefaultConfig() Config {
	return Config{
		DefaultTake:  5,
		MaxTake:      100,
		DefaultOrder: []string{"id_DESC"},
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_TAKE: Default rows per page
//   - PAGINATION_MAX_TAKE: Maximum rows per page
//   - PAGINATION_DEFAULT_ORDER: Comma separated order directives (e.g. "createdAt_DESC,id_DESC")
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		DefaultTake:  envconfig.GetEnvInt("PAGINATION_DEFAULT_TAKE", def.DefaultTake),
		MaxTake:      envconfig.GetEnvInt("PAGINATION_MAX_TAKE", def.MaxTake),
		DefaultOrder: envconfig.GetEnvStringList("PAGINATION_DEFAULT_ORDER", def.DefaultOrder),
	}
}

// WithDefaultOrder returns a copy of c that uses order as its default order.
// An empty order leaves c unchanged.
func (c Config) WithDefaultOrder(order []string) Config {
	if len(order) == 0 {
		return c
	}
	c.DefaultOrder = append([]string(nil), order...)
	return c
}

// WithMaxTake returns a copy of c capped at maxTake. Non-positive values are ignored.
func (c Config) WithMaxTake(maxTake int) Config {
	if maxTake <= 0 {
		return c
	}
	c.MaxTake = maxTake
	if c.DefaultTake > maxTake {
		c.DefaultTake = maxTake
	}
	return c
}
