package model

// Song represents a track in the catalog. AlbumID is nil for singles.
type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// SongSummary is the list representation of a song.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// SongFilter narrows song listings. Empty fields are ignored; set fields are
// combined with AND and matched case-insensitively as substrings.
type SongFilter struct {
	Title     string
	Performer string
}
