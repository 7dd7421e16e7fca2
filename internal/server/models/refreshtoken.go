package models

import "time"

type RefreshToken struct {
	ID      string
	UserID  string
	Token   string
	Expires time.Time
}

// StoredRefreshToken is a refresh token row joined with its owning user,
// as returned by the rotation lookup.
type StoredRefreshToken struct {
	RefreshToken
	User *User
}
