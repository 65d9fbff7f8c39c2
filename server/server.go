// Package server exposes the services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"openmusic/core/auth"
	"openmusic/logger"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// AlbumStore is the album persistence used by AlbumHandler.
type AlbumStore interface {
	AddAlbum(ctx context.Context, payload model.AlbumPayload) (string, error)
	GetAlbumByID(ctx context.Context, id string) (*model.Album, error)
	EditAlbumByID(ctx context.Context, id string, payload model.AlbumPayload) error
	DeleteAlbumByID(ctx context.Context, id string) error
	UpdateAlbumCover(ctx context.Context, id, coverURL string) error
	VerifyAlbumExists(ctx context.Context, id string) error
}

// AlbumLikes counts user likes on albums.
type AlbumLikes interface {
	LikeAlbum(ctx context.Context, userID, albumID string) error
	UnlikeAlbum(ctx context.Context, userID, albumID string) error
	GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error)
	DeleteAlbum(ctx context.Context, albumID string) error
}

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	PutObject(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

// SongStore is the song persistence used by SongHandler.
type SongStore interface {
	AddSong(ctx context.Context, payload model.SongPayload) (string, error)
	GetSongs(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error)
	GetSongByID(ctx context.Context, id string) (*model.Song, error)
	EditSongByID(ctx context.Context, id string, payload model.SongPayload) error
	DeleteSongByID(ctx context.Context, id string) error
	VerifySongExists(ctx context.Context, id string) error
}

// UserStore is the user persistence used by UserHandler and AuthHandler.
type UserStore interface {
	AddUser(ctx context.Context, payload model.UserPayload) (string, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	VerifyUserCredential(ctx context.Context, username, password string) (string, error)
	VerifyUserExists(ctx context.Context, id string) error
}

// RefreshTokenStore is the set of valid refresh tokens.
type RefreshTokenStore interface {
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

// TokenManager issues and verifies tokens.
type TokenManager interface {
	AccessTokenVerifier
	GenerateAccessToken(payload auth.TokenPayload) (string, error)
	GenerateRefreshToken(payload auth.TokenPayload) (string, error)
	VerifyRefreshToken(token string) (auth.TokenPayload, error)
}

// PlaylistStore is the playlist persistence used by PlaylistHandler.
type PlaylistStore interface {
	AddPlaylist(ctx context.Context, name, owner string) (string, error)
	GetPlaylists(ctx context.Context, userID string) ([]model.PlaylistSummary, error)
	DeletePlaylistByID(ctx context.Context, id string) error
	AddPlaylistSong(ctx context.Context, playlistID, songID string) error
	GetPlaylistSongByID(ctx context.Context, playlistID string) (*model.PlaylistDetail, error)
	DeletePlaylistSong(ctx context.Context, playlistID, songID string) error
	VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error
	VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error
}

// ActivityStore records the playlist audit trail.
type ActivityStore interface {
	AddActivity(ctx context.Context, playlistID, songID, userID, action string) error
	GetActivities(ctx context.Context, playlistID string) ([]model.ActivityView, error)
}

// CollaborationStore grants and revokes playlist access.
type CollaborationStore interface {
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error
}

// ExportPublisher enqueues playlist exports.
type ExportPublisher interface {
	Publish(ctx context.Context, req model.ExportRequest) error
}

// Dependencies wires the handlers. Covers and Exports are optional; their
// routes are only mounted when set.
type Dependencies struct {
	Albums          AlbumStore
	Likes           AlbumLikes
	Covers          ObjectStorage
	Songs           SongStore
	Users           UserStore
	Authentications RefreshTokenStore
	Tokens          TokenManager
	Playlists       PlaylistStore
	Activities      ActivityStore
	Collaborations  CollaborationStore
	Exports         ExportPublisher
}

// NewRouter builds the gorilla/mux router. CORS and access logging wrap the
// whole router so preflight and unmatched requests get them too.
func NewRouter(deps Dependencies) http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{Status: statusFail, Message: "route not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: statusFail, Message: "method not allowed"})
	})

	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return AuthMiddleware(deps.Tokens, h)
	}

	// 专辑相关的API端点
	albums := NewAlbumHandler(deps.Albums, deps.Likes, deps.Covers)
	router.HandleFunc("/albums", albums.PostAlbumHandler).Methods(http.MethodPost)
	router.HandleFunc("/albums/{id}", albums.GetAlbumHandler).Methods(http.MethodGet)
	router.HandleFunc("/albums/{id}", albums.PutAlbumHandler).Methods(http.MethodPut)
	router.HandleFunc("/albums/{id}", albums.DeleteAlbumHandler).Methods(http.MethodDelete)
	if deps.Covers != nil {
		router.HandleFunc("/albums/{id}/covers", albums.PostAlbumCoverHandler).Methods(http.MethodPost)
	}
	router.HandleFunc("/albums/{id}/likes", protect(albums.PostAlbumLikeHandler)).Methods(http.MethodPost)
	router.HandleFunc("/albums/{id}/likes", protect(albums.DeleteAlbumLikeHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/albums/{id}/likes", albums.GetAlbumLikesHandler).Methods(http.MethodGet)

	songs := NewSongHandler(deps.Songs)
	router.HandleFunc("/songs", songs.PostSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/songs", songs.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/{id}", songs.GetSongHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/{id}", songs.PutSongHandler).Methods(http.MethodPut)
	router.HandleFunc("/songs/{id}", songs.DeleteSongHandler).Methods(http.MethodDelete)

	// 用户认证相关的API端点
	users := NewUserHandler(deps.Users)
	router.HandleFunc("/users", users.PostUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", users.GetUserHandler).Methods(http.MethodGet)

	authentications := NewAuthHandler(deps.Users, deps.Authentications, deps.Tokens)
	router.HandleFunc("/authentications", authentications.PostAuthenticationHandler).Methods(http.MethodPost)
	router.HandleFunc("/authentications", authentications.PutAuthenticationHandler).Methods(http.MethodPut)
	router.HandleFunc("/authentications", authentications.DeleteAuthenticationHandler).Methods(http.MethodDelete)

	// 播放列表相关的API端点
	playlists := NewPlaylistHandler(deps.Playlists, deps.Songs, deps.Activities)
	router.HandleFunc("/playlists", protect(playlists.PostPlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/playlists", protect(playlists.GetPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/playlists/{id}", protect(playlists.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/playlists/{id}/songs", protect(playlists.PostPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/playlists/{id}/songs", protect(playlists.GetPlaylistSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/playlists/{id}/songs", protect(playlists.DeletePlaylistSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/playlists/{id}/activities", protect(playlists.GetPlaylistActivitiesHandler)).Methods(http.MethodGet)

	collaborations := NewCollaborationHandler(deps.Collaborations, deps.Playlists, deps.Users)
	router.HandleFunc("/collaborations", protect(collaborations.PostCollaborationHandler)).Methods(http.MethodPost)
	router.HandleFunc("/collaborations", protect(collaborations.DeleteCollaborationHandler)).Methods(http.MethodDelete)

	if deps.Exports != nil {
		exports := NewExportHandler(deps.Exports, deps.Playlists)
		router.HandleFunc("/export/playlists/{playlistId}", protect(exports.PostExportPlaylistHandler)).Methods(http.MethodPost)
	}

	return corsMiddleware(accessLogMiddleware(router))
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// with a five second deadline.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	// 设置服务器超时
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
