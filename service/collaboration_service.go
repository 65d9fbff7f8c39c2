package service

import (
	"context"
	"database/sql"
	"errors"

	"openmusic/core/apperror"
	"openmusic/core/idgen"
)

// CollaborationService grants and revokes non-owner access to playlists.
type CollaborationService struct {
	db *sql.DB
}

// NewCollaborationService creates a CollaborationService on the shared handle.
func NewCollaborationService(db *sql.DB) *CollaborationService {
	return &CollaborationService{db: db}
}

// AddCollaboration fails with an invariant error on a duplicate pair or an
// unknown playlist or user.
func (s *CollaborationService) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	id := idgen.New("collab")
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collaborations (id, playlist_id, user_id) VALUES (?, ?, ?)`,
		id, playlistID, userID,
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvariant, "failed to add collaboration", err)
	}
	return id, nil
}

// DeleteCollaboration fails with an invariant error when the pair is absent.
func (s *CollaborationService) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	n, err := affected(s.db.ExecContext(ctx,
		`DELETE FROM collaborations WHERE playlist_id = ? AND user_id = ?`, playlistID, userID,
	))
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to delete collaboration", err)
	}
	if n == 0 {
		return apperror.Invariant("failed to delete collaboration")
	}
	return nil
}

// VerifyCollaborator fails with an invariant error unless userID collaborates
// on playlistID.
func (s *CollaborationService) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM collaborations WHERE playlist_id = ? AND user_id = ?`, playlistID, userID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.Invariant("collaboration verification failed")
	}
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "collaboration verification failed", err)
	}
	return nil
}
