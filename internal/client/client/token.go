package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventsync/eventsync/internal/client/models"
)

var ErrMalformedToken = errors.New("malformed token")

// profileClaims is the payload the API puts into session tokens.
type profileClaims struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"isAdmin"`
	IsVerified bool   `json:"isVerified"`
	jwt.RegisteredClaims
}

// DecodeProfile reads a user profile out of the token payload WITHOUT
// verifying the signature. Timestamps are set to now and the profile is
// marked Derived.
func DecodeProfile(token string, now time.Time) (*models.UserProfile, error) {
	var claims profileClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return &models.UserProfile{
		ID:         claims.UserID,
		Email:      claims.Email,
		Name:       claims.Name,
		IsAdmin:    claims.IsAdmin,
		IsVerified: claims.IsVerified,
		CreatedAt:  now,
		UpdatedAt:  now,
		Derived:    true,
	}, nil
}

// TokenExpiry returns the exp claim of a JWT. ok is false when the token is
// not a JWT or carries no exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
