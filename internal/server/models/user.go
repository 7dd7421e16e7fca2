package models

import "time"

// User is an account record. PasswordHash never leaves the server; handlers
// return the Sanitized form.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy of the user safe for API responses.
func (u *User) Sanitized() *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
