package model

import "time"

// User stores staff accounts. IsAdmin gates user administration and
// unrestricted visitor mutations.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) RecordID() int { return u.ID }

// DisplayName is the "FIRST LAST" form shown everywhere a user is referenced.
func (u User) DisplayName() string { return u.FirstName + " " + u.LastName }
