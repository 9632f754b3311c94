package models

import (
	"strings"
	"time"
)

// User is the persisted account record. Password holds the bcrypt hash and
// is never serialized.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is a user stripped of credentials.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the identity returned by a successful login.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthInfo is the authenticated principal attached to a request or socket.
type AuthInfo struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// CreateUserDto is the body of both register and login requests.
type CreateUserDto struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

// Normalize trims surrounding whitespace from the username so validation and
// lookups see the stored form.
func (d *CreateUserDto) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
}
