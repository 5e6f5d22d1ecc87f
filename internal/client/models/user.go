// Package models defines client-side data models used by the EventSync CLI.
package models

import "time"

// UserProfile is the account record returned by the API. It is replaced
// wholesale on every successful auth operation.
type UserProfile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsAdmin    bool      `json:"isAdmin"`
	IsVerified bool      `json:"isVerified"`
	TeamID     string    `json:"teamId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Derived marks a profile decoded from the bearer token payload without
	// signature verification. Display only; never an authorization input.
	Derived bool `json:"derived,omitempty"`
}

// Clone returns a copy that can be mutated without touching u.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ProfileUpdate carries the fields a user may change on their profile.
// NewPassword requires CurrentPassword.
type ProfileUpdate struct {
	Name            string
	CurrentPassword string
	NewPassword     string
}
