package server

import (
	"net/http"

	"openmusic/core/validator"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// SongHandler serves /songs.
type SongHandler struct {
	songs SongStore
}

// NewSongHandler creates a SongHandler.
func NewSongHandler(songs SongStore) *SongHandler {
	return &SongHandler{songs: songs}
}

func (h *SongHandler) PostSongHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.SongPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	songID, err := h.songs.AddSong(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "song added", map[string]string{"songId": songID})
}

// GetSongsHandler supports the optional title and performer query filters.
func (h *SongHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	songs, err := h.songs.GetSongs(r.Context(), model.SongFilter{
		Title:     query.Get("title"),
		Performer: query.Get("performer"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"songs": songs})
}

func (h *SongHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	song, err := h.songs.GetSongByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"song": song})
}

func (h *SongHandler) PutSongHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.SongPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.songs.EditSongByID(r.Context(), mux.Vars(r)["id"], payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "song updated", nil)
}

func (h *SongHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.songs.DeleteSongByID(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "song deleted", nil)
}
