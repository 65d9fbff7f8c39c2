package auth

import (
	"fmt"
	"time"

	"openmusic/core/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPayload is what a token asserts about its bearer.
type TokenPayload struct {
	ID string `json:"id"`
}

// Claims is the JWT body issued for both token kinds.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access and refresh tokens.
// Access tokens expire after accessAge; refresh tokens only expire when
// they are deleted from the authentications table.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessAge  time.Duration
	now        func() time.Time
}

// NewTokenManager creates a TokenManager with the given secrets.
func NewTokenManager(accessKey, refreshKey string, accessAge time.Duration) *TokenManager {
	return &TokenManager{
		accessKey:  []byte(accessKey),
		refreshKey: []byte(refreshKey),
		accessAge:  accessAge,
		now:        time.Now,
	}
}

// GenerateAccessToken signs payload with the access key.
func (m *TokenManager) GenerateAccessToken(payload TokenPayload) (string, error) {
	now := m.now()
	exp := jwt.NewNumericDate(now.Add(m.accessAge))
	return m.sign(payload, m.accessKey, now, exp)
}

// GenerateRefreshToken signs payload with the refresh key.
func (m *TokenManager) GenerateRefreshToken(payload TokenPayload) (string, error) {
	return m.sign(payload, m.refreshKey, m.now(), nil)
}

func (m *TokenManager) sign(payload TokenPayload, key []byte, now time.Time, exp *jwt.NumericDate) (string, error) {
	claims := Claims{
		ID: payload.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyRefreshToken checks the refresh token signature and returns its payload.
// It does not check whether the token is still persisted.
func (m *TokenManager) VerifyRefreshToken(token string) (TokenPayload, error) {
	claims, err := m.parse(token, m.refreshKey)
	if err != nil {
		return TokenPayload{}, apperror.Wrap(apperror.KindInvariant, "invalid refresh token", err)
	}
	return TokenPayload{ID: claims.ID}, nil
}

// VerifyAccessToken checks signature and max age of an access token.
func (m *TokenManager) VerifyAccessToken(token string) (TokenPayload, error) {
	claims, err := m.parse(token, m.accessKey)
	if err != nil {
		return TokenPayload{}, apperror.Wrap(apperror.KindAuthentication, "invalid access token", err)
	}
	return TokenPayload{ID: claims.ID}, nil
}

func (m *TokenManager) parse(token string, key []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("token carries no id")
	}
	return claims, nil
}
