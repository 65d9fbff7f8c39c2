package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"openmusic/core/auth"
)

func TestAuthenticationFlow(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/users", "", map[string]string{"username": "dicoding", "password": "secret", "fullname": "Dicoding"})

	res := s.do(t, http.MethodPost, "/authentications", "", map[string]string{"username": "dicoding", "password": "wrong"})
	s.expect(t, res, http.StatusUnauthorized, "fail")

	res = s.do(t, http.MethodPost, "/authentications", "", map[string]string{"username": "dicoding", "password": "secret"})
	s.expect(t, res, http.StatusCreated, "success")
	refreshToken := res.body.Data["refreshToken"].(string)
	if res.body.Data["accessToken"] == "" {
		t.Fatal("missing access token")
	}

	res = s.do(t, http.MethodPut, "/authentications", "", map[string]string{"refreshToken": refreshToken})
	s.expect(t, res, http.StatusOK, "success")
	accessToken := res.body.Data["accessToken"].(string)

	res = s.do(t, http.MethodGet, "/playlists", accessToken, nil)
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodDelete, "/authentications", "", map[string]string{"refreshToken": refreshToken})
	s.expect(t, res, http.StatusOK, "success")

	// Revoked: the signature still verifies but the token is gone.
	res = s.do(t, http.MethodPut, "/authentications", "", map[string]string{"refreshToken": refreshToken})
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodDelete, "/authentications", "", map[string]string{"refreshToken": refreshToken})
	s.expect(t, res, http.StatusBadRequest, "fail")
}

func TestRefreshRejectsForeignToken(t *testing.T) {
	s := newTestServer(t)
	_, accessToken := s.register(t, "dicoding")

	res := s.do(t, http.MethodPut, "/authentications", "", map[string]string{"refreshToken": accessToken})
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodPut, "/authentications", "", map[string]string{})
	s.expect(t, res, http.StatusBadRequest, "fail")
	if res.body.Message != `"refreshToken" is required` {
		t.Errorf("unexpected message %q", res.body.Message)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	userID, _ := s.register(t, "dicoding")

	expired := auth.NewTokenManager("access-secret", "refresh-secret", -time.Minute)
	expiredToken, err := expired.GenerateAccessToken(auth.TokenPayload{ID: userID})
	if err != nil {
		t.Fatal(err)
	}
	foreign := auth.NewTokenManager("other-secret", "refresh-secret", time.Hour)
	foreignToken, err := foreign.GenerateAccessToken(auth.TokenPayload{ID: userID})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"foreign key", "Bearer " + foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
