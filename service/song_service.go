package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"openmusic/core/apperror"
	"openmusic/core/idgen"
	"openmusic/model"
)

const songColumns = `id, title, year, genre, performer, duration, album_id, created_at, updated_at`

// SongService wraps the songs table.
type SongService struct {
	db *sql.DB
}

// NewSongService creates a SongService on the shared handle.
func NewSongService(db *sql.DB) *SongService {
	return &SongService{db: db}
}

// AddSong inserts a song. An unknown albumId violates the foreign key and is
// reported as an invariant error.
func (s *SongService) AddSong(ctx context.Context, payload model.SongPayload) (string, error) {
	id := idgen.New("song")
	now := model.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO songs (`+songColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, payload.Title, payload.Year, payload.Genre, payload.Performer,
		nullInt(payload.Duration), nullString(payload.AlbumID), now, now,
	)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvariant, "failed to add song", err)
	}
	return id, nil
}

// GetSongs lists songs matching every non-empty filter field.
func (s *SongService) GetSongs(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error) {
	query := `SELECT id, title, performer FROM songs`
	var conditions []string
	var args []interface{}

	if filter.Title != "" {
		conditions = append(conditions, `LOWER(title) LIKE ?`)
		args = append(args, "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Performer != "" {
		conditions = append(conditions, `LOWER(performer) LIKE ?`)
		args = append(args, "%"+strings.ToLower(filter.Performer)+"%")
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var song model.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan song row: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// GetSongByID returns the full song.
func (s *SongService) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	song := &model.Song{}
	var duration sql.NullInt64
	var albumID sql.NullString

	err := s.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id).Scan(
		&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer,
		&duration, &albumID, &song.CreatedAt, &song.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("song not found")
		}
		return nil, fmt.Errorf("failed to scan song %s: %w", id, err)
	}

	if duration.Valid {
		d := int(duration.Int64)
		song.Duration = &d
	}
	if albumID.Valid {
		song.AlbumID = &albumID.String
	}
	return song, nil
}

// EditSongByID replaces every editable field of the song.
func (s *SongService) EditSongByID(ctx context.Context, id string, payload model.SongPayload) error {
	n, err := affected(s.db.ExecContext(ctx,
		`UPDATE songs SET title = ?, year = ?, genre = ?, performer = ?, duration = ?, album_id = ?, updated_at = ? WHERE id = ?`,
		payload.Title, payload.Year, payload.Genre, payload.Performer,
		nullInt(payload.Duration), nullString(payload.AlbumID), model.Now(), id,
	))
	if err != nil {
		return apperror.Wrap(apperror.KindInvariant, "failed to update song", err)
	}
	if n == 0 {
		return apperror.NotFound("failed to update song, id not found")
	}
	return nil
}

// DeleteSongByID removes the song and, by cascade, its playlist memberships.
func (s *SongService) DeleteSongByID(ctx context.Context, id string) error {
	n, err := affected(s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id))
	if err != nil {
		return fmt.Errorf("failed to delete song %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("failed to delete song, id not found")
	}
	return nil
}

// VerifySongExists fails with a not-found error for unknown ids.
func (s *SongService) VerifySongExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM songs WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("song not found")
	}
	if err != nil {
		return fmt.Errorf("failed to look up song %s: %w", id, err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
