package server

import (
	"net/http"

	"openmusic/core/auth"
	"openmusic/core/validator"
	"openmusic/model"
)

// AuthHandler handles login, token refresh and logout.
type AuthHandler struct {
	users           UserStore
	authentications RefreshTokenStore
	tokens          TokenManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users UserStore, authentications RefreshTokenStore, tokens TokenManager) *AuthHandler {
	return &AuthHandler{users: users, authentications: authentications, tokens: tokens}
}

// PostAuthenticationHandler handles user login requests
func (h *AuthHandler) PostAuthenticationHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.PostAuthenticationPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	userID, err := h.users.VerifyUserCredential(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(auth.TokenPayload{ID: userID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(auth.TokenPayload{ID: userID})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.authentications.AddRefreshToken(r.Context(), refreshToken); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "authentication added", map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// PutAuthenticationHandler issues a new access token for a refresh token
// that is both stored and correctly signed.
func (h *AuthHandler) PutAuthenticationHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshTokenPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.authentications.VerifyRefreshToken(r.Context(), payload.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	claims, err := h.tokens.VerifyRefreshToken(payload.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(claims)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "access token refreshed", map[string]string{"accessToken": accessToken})
}

// DeleteAuthenticationHandler revokes a stored refresh token.
func (h *AuthHandler) DeleteAuthenticationHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshTokenPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.authentications.VerifyRefreshToken(r.Context(), payload.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.authentications.DeleteRefreshToken(r.Context(), payload.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "refresh token deleted", nil)
}
