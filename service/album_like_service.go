package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"openmusic/core/apperror"
	"openmusic/core/idgen"
	"openmusic/logger"
)

// LikesCache caches per album like counts.
type LikesCache interface {
	GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error)
	SetAlbumLikes(ctx context.Context, albumID string, likes int) error
	DeleteAlbumLikes(ctx context.Context, albumID string) error
}

// AlbumLikeService manages user likes on albums. Counts are read through
// the cache when one is configured; every write invalidates the entry.
type AlbumLikeService struct {
	db     *sql.DB
	albums *AlbumService
	cache  LikesCache
}

// NewAlbumLikeService creates an AlbumLikeService. cache may be nil.
func NewAlbumLikeService(db *sql.DB, albums *AlbumService, cache LikesCache) *AlbumLikeService {
	return &AlbumLikeService{db: db, albums: albums, cache: cache}
}

// LikeAlbum records that userID likes albumID.
func (s *AlbumLikeService) LikeAlbum(ctx context.Context, userID, albumID string) error {
	if err := s.albums.VerifyAlbumExists(ctx, albumID); err != nil {
		return err
	}

	liked, err := s.hasLiked(ctx, userID, albumID)
	if err != nil {
		return err
	}
	if liked {
		return apperror.Invariant("album already liked")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_album_likes (id, user_id, album_id) VALUES (?, ?, ?)`,
		idgen.New("like"), userID, albumID,
	)
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to like album", err)
	}

	s.invalidate(ctx, albumID)
	return nil
}

// UnlikeAlbum removes the like of userID on albumID.
func (s *AlbumLikeService) UnlikeAlbum(ctx context.Context, userID, albumID string) error {
	n, err := affected(s.db.ExecContext(ctx,
		`DELETE FROM user_album_likes WHERE user_id = ? AND album_id = ?`, userID, albumID,
	))
	if err != nil {
		return fmt.Errorf("failed to unlike album %s: %w", albumID, err)
	}
	if n == 0 {
		return apperror.Invariant("failed to unlike album, album was not liked")
	}

	s.invalidate(ctx, albumID)
	return nil
}

// DeleteAlbum deletes the album and drops its cached like count, so a
// later read reports the album as missing instead of a stale count.
func (s *AlbumLikeService) DeleteAlbum(ctx context.Context, albumID string) error {
	if err := s.albums.DeleteAlbumByID(ctx, albumID); err != nil {
		return err
	}
	s.invalidate(ctx, albumID)
	return nil
}

// GetAlbumLikes returns the like count and whether it came from the cache.
func (s *AlbumLikeService) GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error) {
	if s.cache != nil {
		likes, ok, err := s.cache.GetAlbumLikes(ctx, albumID)
		if err != nil {
			logger.Warn("album likes cache read failed", logger.String("albumId", albumID), logger.ErrorField(err))
		} else if ok {
			return likes, true, nil
		}
	}

	if err := s.albums.VerifyAlbumExists(ctx, albumID); err != nil {
		return 0, false, err
	}

	var likes int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_album_likes WHERE album_id = ?`, albumID,
	).Scan(&likes)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count album likes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetAlbumLikes(ctx, albumID, likes); err != nil {
			logger.Warn("album likes cache write failed", logger.String("albumId", albumID), logger.ErrorField(err))
		}
	}
	return likes, false, nil
}

func (s *AlbumLikeService) hasLiked(ctx context.Context, userID, albumID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM user_album_likes WHERE user_id = ? AND album_id = ?`, userID, albumID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up album like: %w", err)
	}
	return true, nil
}

func (s *AlbumLikeService) invalidate(ctx context.Context, albumID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteAlbumLikes(ctx, albumID); err != nil {
		logger.Warn("album likes cache invalidation failed", logger.String("albumId", albumID), logger.ErrorField(err))
	}
}
