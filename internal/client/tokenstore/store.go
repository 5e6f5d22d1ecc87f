// Package tokenstore persists the session token and the cached user profile
// in the local database and keeps the API client's default authorization
// header in step with them.
package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/repositories/metadata"
	"github.com/eventsync/eventsync/internal/dbx"
	"github.com/eventsync/eventsync/internal/logging"
)

const (
	KeyToken       = "auth_token"
	KeyUser        = "user_data"
	KeyLegacyToken = "token"
	KeySignupToken = "signup_token"
)

// DB is what the store needs from *sql.DB.
type DB interface {
	dbx.DBTX
	dbx.Beginner
}

// HeaderSetter receives the bearer token for subsequent API calls.
type HeaderSetter interface {
	SetAuthToken(token string)
}

type Store struct {
	db      DB
	headers HeaderSetter
	logger  logging.Logger
	now     func() time.Time
}

func New(db DB, headers HeaderSetter, logger logging.Logger) *Store {
	return &Store{db: db, headers: headers, logger: logger, now: time.Now}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Save writes the token (when non-empty) and the user (when non-nil) and
// installs the token as the default bearer.
func (s *Store) Save(ctx context.Context, token string, user *models.UserProfile) error {
	var userJSON []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if token != "" {
			if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
				return err
			}
		}
		if userJSON != nil {
			if err := repo.Set(ctx, KeyUser, userJSON); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if token != "" {
		s.UseToken(token)
	}
	return nil
}

// Load returns the stored token and user. A user record that does not
// decode is removed and reported as nil; that is not an error.
// A token still stored under the legacy key is moved to the canonical one.
func (s *Store) Load(ctx context.Context) (string, *models.UserProfile, error) {
	repo := s.repo(s.db)

	token, err := s.loadToken(ctx, repo)
	if err != nil {
		return "", nil, err
	}

	raw, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return "", nil, err
	}
	if raw == nil {
		return token, nil, nil
	}

	var user models.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn(ctx, "discarding corrupt stored user", "error", err)
		if err := repo.Delete(ctx, KeyUser); err != nil {
			s.logger.Warn(ctx, "failed to remove corrupt stored user", "error", err)
		}
		return token, nil, nil
	}
	return token, &user, nil
}

func (s *Store) loadToken(ctx context.Context, repo metadata.Repository) (string, error) {
	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	if len(token) > 0 {
		return string(token), nil
	}

	legacy, err := repo.Get(ctx, KeyLegacyToken)
	if err != nil || len(legacy) == 0 {
		return "", err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, KeyToken, legacy); err != nil {
			return err
		}
		return r.Delete(ctx, KeyLegacyToken)
	})
	if err != nil {
		s.logger.Warn(ctx, "legacy token migration failed", "error", err)
	} else {
		s.logger.Info(ctx, "migrated legacy token key")
	}
	return string(legacy), nil
}

// UseToken sets the default bearer without touching storage.
func (s *Store) UseToken(token string) {
	if s.headers != nil {
		s.headers.SetAuthToken(token)
	}
}

// Clear removes the token, the user and the legacy token key together and
// strips the default bearer. The signup token is left alone.
func (s *Store) Clear(ctx context.Context) error {
	s.UseToken("")

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, KeyToken, KeyUser, KeyLegacyToken)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
