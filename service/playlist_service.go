package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"openmusic/core/apperror"
	"openmusic/core/idgen"
	"openmusic/model"
)

// CollaboratorVerifier is the fallback authority consulted by
// VerifyPlaylistAccess when the caller is not the owner.
type CollaboratorVerifier interface {
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

// PlaylistService wraps playlists and their song memberships.
type PlaylistService struct {
	db            *sql.DB
	collaborators CollaboratorVerifier
}

// NewPlaylistService creates a PlaylistService on the shared handle.
func NewPlaylistService(db *sql.DB, collaborators CollaboratorVerifier) *PlaylistService {
	return &PlaylistService{db: db, collaborators: collaborators}
}

// AddPlaylist creates a playlist owned by owner.
func (s *PlaylistService) AddPlaylist(ctx context.Context, name, owner string) (string, error) {
	id := idgen.New("playlist")
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (id, name, owner) VALUES (?, ?, ?)`, id, name, owner,
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvariant, "failed to add playlist", err)
	}
	return id, nil
}

// GetPlaylists lists playlists owned by or shared with userID, once each,
// ordered by id.
func (s *PlaylistService) GetPlaylists(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, u.username
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		WHERE p.owner = ? OR c.user_id = ?
		ORDER BY p.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []model.PlaylistSummary{}
	for rows.Next() {
		var p model.PlaylistSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("failed to scan playlist row: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// DeletePlaylistByID removes a playlist; memberships, collaborations and
// activities go with it through the foreign key cascades.
func (s *PlaylistService) DeletePlaylistByID(ctx context.Context, id string) error {
	n, err := affected(s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id))
	if err != nil {
		return fmt.Errorf("failed to delete playlist %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("failed to delete playlist, id not found")
	}
	return nil
}

// AddPlaylistSong appends songID to the playlist.
func (s *PlaylistService) AddPlaylistSong(ctx context.Context, playlistID, songID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playlist_songs (id, playlist_id, song_id, created_at) VALUES (?, ?, ?, ?)`,
		idgen.New("playlist-song"), playlistID, songID, model.Now(),
	)
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to add song to playlist", err)
	}
	return nil
}

// GetPlaylistSongByID returns the playlist with its songs in insertion order.
func (s *PlaylistService) GetPlaylistSongByID(ctx context.Context, playlistID string) (*model.PlaylistDetail, error) {
	detail := &model.PlaylistDetail{}
	var username sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.id = ?`, playlistID,
	).Scan(&detail.ID, &detail.Name, &username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("failed to scan playlist %s: %w", playlistID, err)
	}
	detail.Username = username.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ?
		ORDER BY ps.created_at, ps.id`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist songs: %w", err)
	}
	defer rows.Close()

	detail.Songs = []model.SongSummary{}
	for rows.Next() {
		var song model.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan playlist song: %w", err)
		}
		detail.Songs = append(detail.Songs, song)
	}
	return detail, rows.Err()
}

// DeletePlaylistSong removes songID from the playlist.
func (s *PlaylistService) DeletePlaylistSong(ctx context.Context, playlistID, songID string) error {
	n, err := affected(s.db.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`, playlistID, songID,
	))
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to remove song from playlist", err)
	}
	if n == 0 {
		return apperror.Invariant("failed to remove song from playlist")
	}
	return nil
}

// VerifyPlaylistOwner fails with not-found for an unknown playlist and with an
// authorization error when userID is not the owner.
func (s *PlaylistService) VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error {
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT owner FROM playlists WHERE id = ?`, playlistID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("playlist not found")
	}
	if err != nil {
		return fmt.Errorf("failed to look up playlist %s: %w", playlistID, err)
	}
	if owner != userID {
		return apperror.Forbidden("you do not have access to this playlist")
	}
	return nil
}

// VerifyPlaylistAccess lets the owner or a collaborator through. Ownership is
// checked first; a missing playlist is reported as such whoever asks. The
// collaborator check is only a fallback and any failure there is reported as
// an authorization error.
func (s *PlaylistService) VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error {
	err := s.VerifyPlaylistOwner(ctx, playlistID, userID)
	if err == nil {
		return nil
	}
	if apperror.Is(err, apperror.KindNotFound) {
		return err
	}

	if err := s.collaborators.VerifyCollaborator(ctx, playlistID, userID); err != nil {
		return apperror.Wrap(apperror.KindAuthorization, "you do not have access to this playlist", err)
	}
	return nil
}
