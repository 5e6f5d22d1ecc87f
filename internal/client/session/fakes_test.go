package session

import (
	"context"
	"sync"

	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/routes"
)

type fakeStore struct {
	token   string
	user    *models.UserProfile
	loadErr error

	clearErr   error
	clearCalls int
	usedTokens []string
}

func (f *fakeStore) Load(ctx context.Context) (string, *models.UserProfile, error) {
	return f.token, f.user, f.loadErr
}

func (f *fakeStore) UseToken(token string) { f.usedTokens = append(f.usedTokens, token) }

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clearCalls++
	f.token, f.user = "", nil
	return f.clearErr
}

type fakeNav struct {
	mu       sync.Mutex
	location string
	applied  []routes.Intent
}

func (f *fakeNav) Location() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location
}

func (f *fakeNav) Apply(in routes.Intent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, in)
	f.location = in.To
}

func testUser() *models.UserProfile {
	return &models.UserProfile{ID: "u1", Email: "ann@example.com", Name: "Ann"}
}
