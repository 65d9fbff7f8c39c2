package service

import (
	"context"
	"fmt"

	"openmusic/core/idgen"
	"openmusic/model"

	"gorm.io/gorm"
)

// ActivityService records and lists the playlist audit trail through GORM.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates an ActivityService.
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// AddActivity appends an add or delete record for a playlist song change.
func (s *ActivityService) AddActivity(ctx context.Context, playlistID, songID, userID, action string) error {
	activity := &model.PlaylistActivity{
		ID:         idgen.New("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     userID,
		Action:     action,
		Time:       model.Now(),
	}
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to record playlist activity: %w", err)
	}
	return nil
}

// GetActivities returns the playlist audit trail, oldest first.
func (s *ActivityService) GetActivities(ctx context.Context, playlistID string) ([]model.ActivityView, error) {
	activities := []model.ActivityView{}
	err := s.db.WithContext(ctx).
		Table("playlist_song_activities AS a").
		Select("u.username, s.title, a.action, a.time").
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN songs s ON s.id = a.song_id").
		Where("a.playlist_id = ?", playlistID).
		Order("a.time, a.id").
		Scan(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist activities: %w", err)
	}
	return activities, nil
}
