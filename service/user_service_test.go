package service

import (
	"context"
	"strings"
	"testing"

	"openmusic/core/apperror"
	"openmusic/model"
)

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id := mustAddUser(t, s, "dicoding")
	if !strings.HasPrefix(id, "user-") {
		t.Errorf("unexpected user id %s", id)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if user.Username != "dicoding" || user.Fullname != "User dicoding" {
		t.Errorf("unexpected user %+v", user)
	}

	_, err = s.users.AddUser(ctx, model.UserPayload{Username: "dicoding", Password: "x", Fullname: "Other"})
	if !apperror.Is(err, apperror.KindInvariant) {
		t.Errorf("duplicate username should be an invariant error, got %v", err)
	}
}

func TestVerifyUserCredential(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	id := mustAddUser(t, s, "dicoding")

	got, err := s.users.VerifyUserCredential(ctx, "dicoding", "secret")
	if err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if got != id {
		t.Errorf("expected %s, got %s", id, got)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dicoding", "wrong"},
		{"unknown user", "nobody", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.users.VerifyUserCredential(ctx, tt.username, tt.password)
			if !apperror.Is(err, apperror.KindAuthentication) {
				t.Errorf("expected authentication error, got %v", err)
			}
		})
	}
}

func TestVerifyUserExists(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	id := mustAddUser(t, s, "dicoding")

	if err := s.users.VerifyUserExists(ctx, id); err != nil {
		t.Errorf("existing user rejected: %v", err)
	}
	if err := s.users.VerifyUserExists(ctx, "user-missing"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
