package server

import (
	"net/http"

	"openmusic/core/validator"
	"openmusic/model"
)

// CollaborationHandler lets playlist owners share their playlists.
type CollaborationHandler struct {
	collaborations CollaborationStore
	playlists      PlaylistStore
	users          UserStore
}

// NewCollaborationHandler creates a CollaborationHandler.
func NewCollaborationHandler(collaborations CollaborationStore, playlists PlaylistStore, users UserStore) *CollaborationHandler {
	return &CollaborationHandler{collaborations: collaborations, playlists: playlists, users: users}
}

func (h *CollaborationHandler) PostCollaborationHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	var payload model.CollaborationPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.playlists.VerifyPlaylistOwner(r.Context(), payload.PlaylistID, ownerID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.VerifyUserExists(r.Context(), payload.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	collaborationID, err := h.collaborations.AddCollaboration(r.Context(), payload.PlaylistID, payload.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "collaboration added", map[string]string{"collaborationId": collaborationID})
}

func (h *CollaborationHandler) DeleteCollaborationHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	var payload model.CollaborationPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.playlists.VerifyPlaylistOwner(r.Context(), payload.PlaylistID, ownerID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.collaborations.DeleteCollaboration(r.Context(), payload.PlaylistID, payload.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "collaboration deleted", nil)
}
