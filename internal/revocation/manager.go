package revocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cybergodev/jwtcodec/internal/core"
)

var (
	ErrManagerClosed = errors.New("revocation manager is closed")
	ErrEmptyTokenID  = errors.New("token ID cannot be empty")
	ErrMissingID     = errors.New("token does not contain a valid ID (jti claim)")
)

// Manager revokes tokens by their "jti" claim and answers revocation queries
type Manager struct {
	store  Store
	config Config
	logger logrus.FieldLogger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool

	stopCleanup chan struct{}
	cleanupWg   sync.WaitGroup
}

// NewManager creates a manager on store. With EnableAutoCleanup set a
// goroutine calls store.Cleanup every CleanupInterval until Close.
func NewManager(store Store, config Config, logger logrus.FieldLogger) *Manager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultConfig().DefaultTTL
	}

	m := &Manager{
		store:       store,
		config:      config,
		logger:      logger,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	if config.EnableAutoCleanup && config.CleanupInterval > 0 {
		m.startAutoCleanup()
	}

	return m
}

// Revoke revokes tokenID until expiresAt
func (m *Manager) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrManagerClosed
	}
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	return m.store.Add(ctx, tokenID, expiresAt)
}

// RevokeToken reads the "jti" and "exp" claims of tokenString without
// verifying it and revokes the ID until exp, or for DefaultTTL when the token
// has no exp.
func (m *Manager) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := tokenClaims(tokenString)
	if err != nil {
		return err
	}
	tokenID, _ := claims["jti"].(string)

	expiresAt := m.now().Add(m.config.DefaultTTL)
	if n, ok := claims["exp"].(json.Number); ok {
		if exp, err := n.Float64(); err == nil && exp > 0 {
			expiresAt = time.Unix(int64(exp), 0)
		}
	}

	return m.Revoke(ctx, tokenID, expiresAt)
}

// Unrevoke lifts the revocation of tokenID. Unknown IDs are ignored.
func (m *Manager) Unrevoke(ctx context.Context, tokenID string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrManagerClosed
	}
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	return m.store.Remove(ctx, tokenID)
}

// UnrevokeToken lifts the revocation of tokenString's jti claim
func (m *Manager) UnrevokeToken(ctx context.Context, tokenString string) error {
	claims, err := tokenClaims(tokenString)
	if err != nil {
		return err
	}
	tokenID, _ := claims["jti"].(string)
	return m.Unrevoke(ctx, tokenID)
}

// Size returns the number of entries in the store, expired ones included
// until the next cleanup
func (m *Manager) Size(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrManagerClosed
	}
	return m.store.Size(ctx)
}

// tokenClaims decodes the payload of tokenString without verifying it. The
// payload must be an object carrying a non-empty jti.
func tokenClaims(tokenString string) (map[string]any, error) {
	token, err := core.Parse(tokenString, false, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, _ := token.Payload.(map[string]any)
	if tokenID, _ := claims["jti"].(string); tokenID == "" {
		return nil, ErrMissingID
	}
	return claims, nil
}

// IsRevoked reports whether tokenID has been revoked. An empty ID is never revoked.
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrManagerClosed
	}
	if tokenID == "" {
		return false, nil
	}

	return m.store.Contains(ctx, tokenID)
}

// Close stops the cleanup goroutine and closes the store
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.stopCleanup)
	m.cleanupWg.Wait()

	return m.store.Close()
}

func (m *Manager) startAutoCleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	m.cleanupWg.Add(1)

	go func() {
		defer m.cleanupWg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.performCleanup()
			case <-m.stopCleanup:
				return
			}
		}
	}()
}

func (m *Manager) performCleanup() {
	removed, err := m.store.Cleanup(context.Background())
	if err != nil {
		m.logger.WithError(err).Warn("revocation cleanup failed")
		return
	}
	if removed > 0 {
		m.logger.WithField("removed", removed).Debug("revocation cleanup")
	}
}
