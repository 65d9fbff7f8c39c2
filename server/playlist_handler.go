package server

import (
	"net/http"

	"openmusic/core/validator"
	"openmusic/logger"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// PlaylistHandler 处理播放列表相关的请求，所有路由都经过 AuthMiddleware
type PlaylistHandler struct {
	playlists  PlaylistStore
	songs      SongStore
	activities ActivityStore
}

// NewPlaylistHandler creates a PlaylistHandler.
func NewPlaylistHandler(playlists PlaylistStore, songs SongStore, activities ActivityStore) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, songs: songs, activities: activities}
}

func (h *PlaylistHandler) PostPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var payload model.PlaylistPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	playlistID, err := h.playlists.AddPlaylist(r.Context(), payload.Name, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "playlist added", map[string]string{"playlistId": playlistID})
}

// GetPlaylistsHandler lists playlists the caller owns or collaborates on.
func (h *PlaylistHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	playlists, err := h.playlists.GetPlaylists(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"playlists": playlists})
}

// DeletePlaylistHandler is owner only.
func (h *PlaylistHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["id"]

	if err := h.playlists.VerifyPlaylistOwner(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.playlists.DeletePlaylistByID(r.Context(), playlistID); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "playlist deleted", nil)
}

// PostPlaylistSongHandler adds a song and records an "add" activity.
func (h *PlaylistHandler) PostPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["id"]

	var payload model.PlaylistSongPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.playlists.VerifyPlaylistAccess(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.songs.VerifySongExists(r.Context(), payload.SongID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.playlists.AddPlaylistSong(r.Context(), playlistID, payload.SongID); err != nil {
		writeError(w, r, err)
		return
	}

	h.recordActivity(r, playlistID, payload.SongID, userID, model.ActivityAdd)
	writeSuccess(w, http.StatusCreated, "song added to playlist", nil)
}

func (h *PlaylistHandler) GetPlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["id"]

	if err := h.playlists.VerifyPlaylistAccess(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	playlist, err := h.playlists.GetPlaylistSongByID(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"playlist": playlist})
}

// DeletePlaylistSongHandler removes a song and records a "delete" activity.
func (h *PlaylistHandler) DeletePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["id"]

	var payload model.PlaylistSongPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.playlists.VerifyPlaylistAccess(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.playlists.DeletePlaylistSong(r.Context(), playlistID, payload.SongID); err != nil {
		writeError(w, r, err)
		return
	}

	h.recordActivity(r, playlistID, payload.SongID, userID, model.ActivityDelete)
	writeSuccess(w, http.StatusOK, "song removed from playlist", nil)
}

func (h *PlaylistHandler) GetPlaylistActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	playlistID := mux.Vars(r)["id"]

	if err := h.playlists.VerifyPlaylistAccess(r.Context(), playlistID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	activities, err := h.activities.GetActivities(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{
		"playlistId": playlistID,
		"activities": activities,
	})
}

// recordActivity is best effort; the membership change has already been made.
func (h *PlaylistHandler) recordActivity(r *http.Request, playlistID, songID, userID, action string) {
	if err := h.activities.AddActivity(r.Context(), playlistID, songID, userID, action); err != nil {
		logger.Error("Failed to record playlist activity",
			logger.String("playlistId", playlistID),
			logger.String("action", action),
			logger.ErrorField(err),
		)
	}
}
