package client

import (
	"context"

	"github.com/eventsync/eventsync/internal/client/models"
)

// Client is the EventSync REST API as seen by the auth flows.
type Client interface {
	Close() error

	// SetAuthToken replaces the default bearer token. An empty token
	// removes the Authorization header.
	SetAuthToken(token string)

	SignupEmailCode(ctx context.Context, email string) error
	EmailCodeVerify(ctx context.Context, email, code string) (string, error)
	CompleteSignup(ctx context.Context, name, password, verificationToken string) (*models.UserProfile, string, error)
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)

	ForgotPasswordCode(ctx context.Context, email string) error
	ForgotPasswordCodeVerify(ctx context.Context, email, code string) (string, error)
	ForgotPasswordFill(ctx context.Context, email, password, token string) error

	Meetings(ctx context.Context) ([]models.Meeting, error)
}
