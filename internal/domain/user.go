package domain

import "time"

// User is a login credential. The username doubles as the owner identity stamped on rows.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is a validated login payload.
type Credentials struct {
	Username string `json:"username" validate:"min=5,max=20"`
	Password string `json:"password" validate:"min=8,max=1024"`
}
