package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"openmusic/core/apperror"
	"openmusic/core/auth"
	"openmusic/core/idgen"
	"openmusic/model"
)

// UserService wraps the users table.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a UserService on the shared handle.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// AddUser registers a user with a bcrypt hashed password.
func (s *UserService) AddUser(ctx context.Context, payload model.UserPayload) (string, error) {
	if err := s.verifyNewUsername(ctx, payload.Username); err != nil {
		return "", err
	}

	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		return "", err
	}

	id := idgen.New("user")
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, fullname) VALUES (?, ?, ?, ?)`,
		id, payload.Username, hashed, payload.Fullname,
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvariant, "failed to add user", err)
	}
	return id, nil
}

func (s *UserService) verifyNewUsername(ctx context.Context, username string) error {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check username %s: %w", username, err)
	}
	return apperror.Invariant("failed to add user, username already taken")
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, fullname FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.Fullname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to scan user %s: %w", id, err)
	}
	return user, nil
}

// VerifyUserCredential returns the user id when username and password match.
// Unknown user and wrong password are indistinguishable to the caller.
func (s *UserService) VerifyUserCredential(ctx context.Context, username, password string) (string, error) {
	var id, hashed string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password FROM users WHERE username = ?`, username,
	).Scan(&id, &hashed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperror.Unauthenticated("the credentials you provided are wrong")
		}
		return "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	if !auth.CheckPasswordHash(password, hashed) {
		return "", apperror.Unauthenticated("the credentials you provided are wrong")
	}
	return id, nil
}

// VerifyUserExists fails with a not-found error for unknown ids.
func (s *UserService) VerifyUserExists(ctx context.Context, id string) error {
	_, err := s.GetUserByID(ctx, id)
	return err
}
