package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SignupToken is the verification token issued after the e-mail code
// check, kept until the signup is completed or abandoned.
type SignupToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

func (s *Store) SaveSignupToken(ctx context.Context, token string) error {
	b, err := json.Marshal(SignupToken{Token: token, SavedAt: s.now()})
	if err != nil {
		return err
	}
	if err := s.repo(s.db).Set(ctx, KeySignupToken, b); err != nil {
		return fmt.Errorf("save signup token: %w", err)
	}
	return nil
}

// LoadSignupToken returns nil when no usable token is stored.
func (s *Store) LoadSignupToken(ctx context.Context) (*SignupToken, error) {
	raw, err := s.repo(s.db).Get(ctx, KeySignupToken)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var st SignupToken
	if err := json.Unmarshal(raw, &st); err != nil || st.Token == "" {
		s.logger.Warn(ctx, "discarding unreadable signup token")
		_ = s.ClearSignupToken(ctx)
		return nil, nil
	}
	return &st, nil
}

func (s *Store) ClearSignupToken(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, KeySignupToken); err != nil {
		return fmt.Errorf("clear signup token: %w", err)
	}
	return nil
}
