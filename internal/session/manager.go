package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrRevoked = errors.New("session revoked")

// Manager ties together credential checks, token issuance and revocation.
type Manager struct {
	auth    *Authenticator
	issuer  *Issuer
	revoked RevocationStore
	logger  *zap.Logger
}

func NewManager(auth *Authenticator, issuer *Issuer, revoked RevocationStore, logger *zap.Logger) *Manager {
	return &Manager{
		auth:    auth,
		issuer:  issuer,
		revoked: revoked,
		logger:  logger.Named("session"),
	}
}

// Login verifies the credentials and returns a fresh admin token.
func (m *Manager) Login(ctx context.Context, username, password string) (string, *Claims, error) {
	if err := m.auth.Verify(username, password); err != nil {
		m.logger.Warn("Failed login attempt", zap.String("username", username))
		return "", nil, err
	}

	token, claims, err := m.issuer.Issue(username, RoleAdmin)
	if err != nil {
		return "", nil, err
	}

	m.logger.Info("Operator logged in", zap.String("username", username), zap.String("jti", claims.ID))
	return token, claims, nil
}

// Validate returns the claims of a valid, unrevoked token.
func (m *Manager) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.issuer.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Logout revokes token until it would have expired. Invalid tokens are
// ignored since they cannot be used anyway.
func (m *Manager) Logout(ctx context.Context, token string) error {
	claims, err := m.issuer.Parse(token)
	if err != nil {
		return nil
	}

	if err := m.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		m.logger.Error("Failed to revoke session", zap.String("jti", claims.ID), zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	m.logger.Info("Operator logged out", zap.String("username", claims.Subject), zap.String("jti", claims.ID))
	return nil
}
