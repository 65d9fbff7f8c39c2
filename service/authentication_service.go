package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"openmusic/core/apperror"
)

// AuthenticationService persists the set of currently valid refresh tokens.
// A refresh token is honoured only while it is in this set; deleting it
// revokes it even though its signature keeps verifying.
type AuthenticationService struct {
	db *sql.DB
}

// NewAuthenticationService creates an AuthenticationService on the shared handle.
func NewAuthenticationService(db *sql.DB) *AuthenticationService {
	return &AuthenticationService{db: db}
}

// AddRefreshToken stores a freshly issued refresh token.
func (s *AuthenticationService) AddRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO authentications (token) VALUES (?)`, token); err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to add refresh token", err)
	}
	return nil
}

// VerifyRefreshToken is the presence check. Signature checks belong to the
// token manager and must be done separately.
func (s *AuthenticationService) VerifyRefreshToken(ctx context.Context, token string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM authentications WHERE token = ?`, token).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.Invariant("invalid refresh token")
	}
	if err != nil {
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return nil
}

// DeleteRefreshToken revokes a refresh token.
func (s *AuthenticationService) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM authentications WHERE token = ?`, token); err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to delete refresh token", err)
	}
	return nil
}
