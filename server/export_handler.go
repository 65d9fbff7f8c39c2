package server

import (
	"net/http"

	"openmusic/core/validator"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// ExportHandler queues playlist exports for the consumer process.
type ExportHandler struct {
	exports   ExportPublisher
	playlists PlaylistStore
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exports ExportPublisher, playlists PlaylistStore) *ExportHandler {
	return &ExportHandler{exports: exports, playlists: playlists}
}

// PostExportPlaylistHandler is owner only.
func (h *ExportHandler) PostExportPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["playlistId"]

	var payload model.ExportPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.playlists.VerifyPlaylistOwner(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.exports.Publish(r.Context(), model.ExportRequest{
		PlaylistID:  playlistID,
		TargetEmail: payload.TargetEmail,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "your request is being processed", nil)
}
