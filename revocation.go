package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cybergodev/jwtcodec/internal/revocation"
)

// RevocationConfig represents revocation configuration for token revocation management
type RevocationConfig struct {
	// CleanupInterval specifies how often expired entries are removed
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`

	// MaxSize defines the maximum number of entries the memory store holds
	MaxSize int `yaml:"max_size" json:"max_size"`

	// EnableAutoCleanup enables automatic cleanup of expired entries
	EnableAutoCleanup bool `yaml:"enable_auto_cleanup" json:"enable_auto_cleanup"`

	// DefaultTTL is how long a token without an exp claim stays revoked
	DefaultTTL time.Duration `yaml:"default_ttl" json:"default_ttl"`

	// LookupTimeout bounds each revocation lookup made during Decode
	LookupTimeout time.Duration `yaml:"lookup_timeout" json:"lookup_timeout"`
}

// DefaultRevocationConfig returns the revocation configuration used when none is given
func DefaultRevocationConfig() RevocationConfig {
	return RevocationConfig{
		CleanupInterval:   5 * time.Minute,
		MaxSize:           100000,
		EnableAutoCleanup: true,
		DefaultTTL:        24 * time.Hour,
		LookupTimeout:     time.Second,
	}
}

func (c RevocationConfig) internal() revocation.Config {
	return revocation.Config{
		CleanupInterval:   c.CleanupInterval,
		MaxSize:           c.MaxSize,
		EnableAutoCleanup: c.EnableAutoCleanup,
		DefaultTTL:        c.DefaultTTL,
	}
}

// Revoker tracks revoked token IDs (the "jti" claim). It is not part of
// encoding or decoding; plug it into a Codec with Checker.
type Revoker struct {
	manager       *revocation.Manager
	lookupTimeout time.Duration
}

// NewMemoryRevoker creates a Revoker that keeps revocations in process memory
func NewMemoryRevoker(config RevocationConfig, logger logrus.FieldLogger) *Revoker {
	store := revocation.NewMemoryStore(config.MaxSize)
	return newRevoker(store, config, logger)
}

// NewRedisRevoker creates a Revoker that keeps revocations in redis under
// prefix, so that every process sharing client sees them. Redis expires
// entries itself, so automatic cleanup is not needed.
func NewRedisRevoker(client redis.UniversalClient, prefix string, config RevocationConfig, logger logrus.FieldLogger) *Revoker {
	config.EnableAutoCleanup = false
	store := revocation.NewRedisStore(client, prefix)
	return newRevoker(store, config, logger)
}

func newRevoker(store revocation.Store, config RevocationConfig, logger logrus.FieldLogger) *Revoker {
	timeout := config.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultRevocationConfig().LookupTimeout
	}
	return &Revoker{
		manager:       revocation.NewManager(store, config.internal(), logger),
		lookupTimeout: timeout,
	}
}

// Revoke revokes tokenString by its jti claim until its exp claim. The token
// is not verified; only callers that already trust it should revoke it.
func (r *Revoker) Revoke(ctx context.Context, tokenString string) error {
	return r.manager.RevokeToken(ctx, tokenString)
}

// RevokeID revokes tokenID until expiresAt
func (r *Revoker) RevokeID(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return r.manager.Revoke(ctx, tokenID, expiresAt)
}

// Unrevoke lifts the revocation of tokenString's jti claim
func (r *Revoker) Unrevoke(ctx context.Context, tokenString string) error {
	return r.manager.UnrevokeToken(ctx, tokenString)
}

// UnrevokeID lifts the revocation of tokenID
func (r *Revoker) UnrevokeID(ctx context.Context, tokenID string) error {
	return r.manager.Unrevoke(ctx, tokenID)
}

// Count returns the number of stored revocations. Expired entries may be
// counted until the store drops them.
func (r *Revoker) Count(ctx context.Context) (int, error) {
	return r.manager.Size(ctx)
}

// IsRevoked reports whether tokenID has been revoked
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return r.manager.IsRevoked(ctx, tokenID)
}

// Close releases the revocation store
func (r *Revoker) Close() error {
	return r.manager.Close()
}

// Checker returns a ClaimsChecker that runs next, when non-nil, and then
// rejects payloads whose jti has been revoked with ErrTokenRevoked.
func (r *Revoker) Checker(next ClaimsChecker) ClaimsChecker {
	return ClaimsCheckerFunc(func(claims map[string]any, opts DecodeOptions) error {
		if next != nil {
			if err := next.CheckClaims(claims, opts); err != nil {
				return err
			}
		}

		tokenID, _ := claims["jti"].(string)
		if tokenID == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
		defer cancel()

		revoked, err := r.IsRevoked(ctx, tokenID)
		if err != nil {
			return fmt.Errorf("revocation check failed: %w", err)
		}
		if revoked {
			return &ValidationError{Field: "jti", Message: "token " + tokenID + " has been revoked", Err: ErrTokenRevoked}
		}
		return nil
	})
}
