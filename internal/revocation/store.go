package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed is returned by operations on a closed store
var ErrStoreClosed = errors.New("revocation store is closed")

// Store records revoked token IDs until the tokens would have expired anyway
type Store interface {
	// Add revokes tokenID until expiresAt
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error

	// Contains reports whether tokenID is revoked and not yet expired
	Contains(ctx context.Context, tokenID string) (bool, error)

	// Remove lifts a revocation
	Remove(ctx context.Context, tokenID string) error

	// Cleanup drops expired entries and reports how many were removed
	Cleanup(ctx context.Context) (int, error)

	// Size returns the number of entries held
	Size(ctx context.Context) (int, error)

	Close() error
}

// Config represents revocation configuration
type Config struct {
	// CleanupInterval defines how often expired entries are dropped
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`

	// MaxSize bounds the memory store
	MaxSize int `yaml:"max_size" json:"max_size"`

	// EnableAutoCleanup runs Cleanup every CleanupInterval
	EnableAutoCleanup bool `yaml:"enable_auto_cleanup" json:"enable_auto_cleanup"`

	// DefaultTTL applies to tokens revoked without an exp claim
	DefaultTTL time.Duration `yaml:"default_ttl" json:"default_ttl"`
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		CleanupInterval:   5 * time.Minute,
		MaxSize:           10000,
		EnableAutoCleanup: false,
		DefaultTTL:        24 * time.Hour,
	}
}
