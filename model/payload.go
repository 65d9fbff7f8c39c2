package model

// Request payloads. Validation rules live in the `validate` tags.

type AlbumPayload struct {
	Name string `json:"name" validate:"required"`
	Year int    `json:"year" validate:"required,gte=1900"`
}

type SongPayload struct {
	Title     string  `json:"title" validate:"required"`
	Year      int     `json:"year" validate:"required,gte=1900"`
	Genre     string  `json:"genre" validate:"required"`
	Performer string  `json:"performer" validate:"required"`
	Duration  *int    `json:"duration" validate:"omitempty,gte=0"`
	AlbumID   *string `json:"albumId"`
}

type UserPayload struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
}

type PostAuthenticationPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenPayload is used by both token rotation and logout.
type RefreshTokenPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type PlaylistPayload struct {
	Name string `json:"name" validate:"required"`
}

type PlaylistSongPayload struct {
	SongID string `json:"songId" validate:"required"`
}

type CollaborationPayload struct {
	PlaylistID string `json:"playlistId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
}

type ExportPayload struct {
	TargetEmail string `json:"targetEmail" validate:"required,email"`
}
