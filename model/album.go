package model

// Album 表示一张专辑
type Album struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Year      int           `json:"year"`
	CoverURL  *string       `json:"coverUrl"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
	Songs     []SongSummary `json:"songs"`
}
