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

// AlbumService 专辑相关的数据库操作
type AlbumService struct {
	db *sql.DB
}

// NewAlbumService creates an AlbumService on the shared handle.
func NewAlbumService(db *sql.DB) *AlbumService {
	return &AlbumService{db: db}
}

// AddAlbum 创建新专辑
func (s *AlbumService) AddAlbum(ctx context.Context, payload model.AlbumPayload) (string, error) {
	id := idgen.New("album")
	now := model.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO albums (id, name, year, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, payload.Name, payload.Year, now, now,
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvariant, "failed to add album", err)
	}
	return id, nil
}

// GetAlbumByID returns the album together with the songs that reference it.
func (s *AlbumService) GetAlbumByID(ctx context.Context, id string) (*model.Album, error) {
	album := &model.Album{}
	var coverURL sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, year, cover_url, created_at, updated_at FROM albums WHERE id = ?`, id,
	).Scan(&album.ID, &album.Name, &album.Year, &coverURL, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("album not found")
		}
		return nil, fmt.Errorf("failed to scan album %s: %w", id, err)
	}
	if coverURL.Valid {
		album.CoverURL = &coverURL.String
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, performer FROM songs WHERE album_id = ? ORDER BY created_at, id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query album songs: %w", err)
	}
	defer rows.Close()

	album.Songs = []model.SongSummary{}
	for rows.Next() {
		var song model.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan album song: %w", err)
		}
		album.Songs = append(album.Songs, song)
	}
	return album, rows.Err()
}

// EditAlbumByID 更新专辑信息
func (s *AlbumService) EditAlbumByID(ctx context.Context, id string, payload model.AlbumPayload) error {
	n, err := affected(s.db.ExecContext(ctx,
		`UPDATE albums SET name = ?, year = ?, updated_at = ? WHERE id = ?`,
		payload.Name, payload.Year, model.Now(), id,
	))
	if err != nil {
		return fmt.Errorf("failed to update album %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("failed to update album, id not found")
	}
	return nil
}

// DeleteAlbumByID 删除专辑，专辑下的歌曲变为单曲
func (s *AlbumService) DeleteAlbumByID(ctx context.Context, id string) error {
	n, err := affected(s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id))
	if err != nil {
		return fmt.Errorf("failed to delete album %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("failed to delete album, id not found")
	}
	return nil
}

// UpdateAlbumCover stores the public URL of an uploaded cover.
func (s *AlbumService) UpdateAlbumCover(ctx context.Context, id, coverURL string) error {
	n, err := affected(s.db.ExecContext(ctx,
		`UPDATE albums SET cover_url = ?, updated_at = ? WHERE id = ?`,
		coverURL, model.Now(), id,
	))
	if err != nil {
		return fmt.Errorf("failed to update album cover %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("failed to update album cover, id not found")
	}
	return nil
}

// VerifyAlbumExists fails with a not-found error for unknown ids.
func (s *AlbumService) VerifyAlbumExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM albums WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("album not found")
	}
	if err != nil {
		return fmt.Errorf("failed to look up album %s: %w", id, err)
	}
	return nil
}
