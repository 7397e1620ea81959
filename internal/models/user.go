package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Avatar    string    `json:"avatar" db:"avatar"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}

// Owner is the public view of a User embedded in profile responses.
type Owner struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Avatar string `json:"avatar" db:"avatar"`
}

// Actor is the identity resolved from a request's token.
type Actor struct {
	ID     string
	Name   string
	Avatar string
}
