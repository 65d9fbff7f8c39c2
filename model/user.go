package model

// User represents a user in the system.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never exposed
	Fullname string `json:"fullname"`
}
