package services

import (
	"errors"

	"github.com/eventsync/eventsync/internal/client/client"
)

var ErrCurrentPasswordRequired = errors.New("Current password is required to change password")

const msgNoResponse = "No response from server. Please check your connection."

// OperationError is returned by every AuthService operation. Message is the
// text shown to the user, also published as the session error.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// userMessage picks the text to show for err: the server's message when it
// sent one, otherwise a fixed text for known conditions, otherwise fallback.
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		return msgNoResponse
	case errors.Is(err, client.ErrNoToken):
		return "No token received from server"
	case errors.Is(err, client.ErrNoUser):
		return "No user data received"
	case errors.Is(err, ErrCurrentPasswordRequired):
		return ErrCurrentPasswordRequired.Error()
	default:
		return fallback
	}
}
