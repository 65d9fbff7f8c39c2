package model

// Activity actions recorded for playlist song changes.
const (
	ActivityAdd    = "add"
	ActivityDelete = "delete"
)

// PlaylistActivity is an append-only audit record of a playlist song change.
type PlaylistActivity struct {
	ID         string `gorm:"primaryKey;size:50"`
	PlaylistID string `gorm:"size:50;not null;index"`
	SongID     string `gorm:"size:50;not null"`
	UserID     string `gorm:"size:50;not null"`
	Action     string `gorm:"size:10;not null"`
	Time       string `gorm:"size:40;not null"`
}

// TableName 指定表名
func (PlaylistActivity) TableName() string {
	return "playlist_song_activities"
}

// ActivityView is an activity as shown to playlist members.
type ActivityView struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Time     string `json:"time"`
}
