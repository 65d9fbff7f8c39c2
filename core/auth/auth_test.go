package auth

import (
	"testing"
	"time"

	"openmusic/core/apperror"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Hour)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected wrong password to be rejected")
	}
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := HashPassword(string(long)); !apperror.Is(err, apperror.KindInvariant) {
		t.Errorf("expected invariant error for a 73 byte password, got %v", err)
	}
	if CheckPasswordHash("s3cret", "not-a-bcrypt-hash") {
		t.Error("a malformed stored hash must not verify")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken(TokenPayload{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	payload, err := m.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken failed: %v", err)
	}
	if payload.ID != "user-1" {
		t.Errorf("expected id user-1, got %s", payload.ID)
	}
}

func TestRefreshTokensAreDistinct(t *testing.T) {
	m := newTestManager()

	first, _ := m.GenerateRefreshToken(TokenPayload{ID: "user-1"})
	second, _ := m.GenerateRefreshToken(TokenPayload{ID: "user-1"})
	if first == second {
		t.Error("two refresh tokens for the same user should differ")
	}
}

func TestVerifyRefreshTokenRejectsAccessToken(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(TokenPayload{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = m.VerifyRefreshToken(access)
	if !apperror.Is(err, apperror.KindInvariant) {
		t.Errorf("expected invariant error, got %v", err)
	}
}

func TestVerifyRefreshTokenRejectsGarbage(t *testing.T) {
	m := newTestManager()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyRefreshToken(token); !apperror.Is(err, apperror.KindInvariant) {
			t.Errorf("token %q: expected invariant error, got %v", token, err)
		}
	}
}

func TestAccessTokenExpires(t *testing.T) {
	m := newTestManager()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken(TokenPayload{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); err != nil {
		t.Fatalf("fresh token should verify: %v", err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.VerifyAccessToken(token)
	if !apperror.Is(err, apperror.KindAuthentication) {
		t.Errorf("expected authentication error for expired token, got %v", err)
	}
}

func TestAccessTokenSignedWithOtherKey(t *testing.T) {
	other := NewTokenManager("another-secret", "refresh-secret", time.Hour)
	token, _ := other.GenerateAccessToken(TokenPayload{ID: "user-1"})

	if _, err := newTestManager().VerifyAccessToken(token); err == nil {
		t.Error("token signed with a foreign key must be rejected")
	}
}
