package model

import (
	"time"
)

// User is the identity record issued by the backend. The client treats it as immutable.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"-"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
