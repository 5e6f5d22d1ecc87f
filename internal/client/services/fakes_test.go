package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/eventsync/eventsync/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for AuthService unit tests.
type fakeClient struct {
	CloseErr error

	SignupEmailCodeErr error

	EmailCodeVerifyRet string
	EmailCodeVerifyErr error

	CompleteSignupUser  *models.UserProfile
	CompleteSignupToken string
	CompleteSignupErr   error

	LoginRet *models.LoginResult
	LoginErr error
	// LoginGate, when set, blocks Login until closed.
	LoginGate chan struct{}

	ForgotCodeErr error

	ForgotVerifyRet string
	ForgotVerifyErr error

	ForgotFillErr error

	MeetingsRet []models.Meeting
	MeetingsErr error

	// argument capture
	LastSignupEmail string

	LastVerifyEmail string
	LastVerifyCode  string

	LastCompleteName     string
	LastCompletePassword string
	LastCompleteToken    string

	LastLoginEmail    string
	LastLoginPassword string
	LoginCalls        atomic.Int32

	LastForgotEmail string
	LastFillEmail   string
	LastFillPass    string
	LastFillToken   string
	FillCalls       int

	mu        sync.Mutex
	AuthToken string
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) SetAuthToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AuthToken = token
}

func (f *fakeClient) SignupEmailCode(ctx context.Context, email string) error {
	f.LastSignupEmail = email
	return f.SignupEmailCodeErr
}

func (f *fakeClient) EmailCodeVerify(ctx context.Context, email, code string) (string, error) {
	f.LastVerifyEmail = email
	f.LastVerifyCode = code
	return f.EmailCodeVerifyRet, f.EmailCodeVerifyErr
}

func (f *fakeClient) CompleteSignup(ctx context.Context, name, password, token string) (*models.UserProfile, string, error) {
	f.LastCompleteName = name
	f.LastCompletePassword = password
	f.LastCompleteToken = token
	return f.CompleteSignupUser.Clone(), f.CompleteSignupToken, f.CompleteSignupErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	f.LoginCalls.Add(1)
	if f.LoginGate != nil {
		<-f.LoginGate
	}
	f.mu.Lock()
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	f.mu.Unlock()
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ForgotPasswordCode(ctx context.Context, email string) error {
	f.LastForgotEmail = email
	return f.ForgotCodeErr
}

func (f *fakeClient) ForgotPasswordCodeVerify(ctx context.Context, email, code string) (string, error) {
	f.LastVerifyEmail = email
	f.LastVerifyCode = code
	return f.ForgotVerifyRet, f.ForgotVerifyErr
}

func (f *fakeClient) ForgotPasswordFill(ctx context.Context, email, password, token string) error {
	f.FillCalls++
	f.LastFillEmail = email
	f.LastFillPass = password
	f.LastFillToken = token
	return f.ForgotFillErr
}

func (f *fakeClient) Meetings(ctx context.Context) ([]models.Meeting, error) {
	return f.MeetingsRet, f.MeetingsErr
}

// ---- fake store ----

type fakeStore struct {
	mu sync.Mutex

	Token string
	User  *models.UserProfile

	SaveErr    error
	ClearErr   error
	SaveCalls  int
	ClearCalls int
}

func (f *fakeStore) Save(ctx context.Context, token string, user *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if token != "" {
		f.Token = token
	}
	if user != nil {
		f.User = user.Clone()
	}
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.Token, f.User = "", nil
	return f.ClearErr
}

func ann() *models.UserProfile {
	return &models.UserProfile{ID: "u1", Email: "ann@example.com", Name: "Ann"}
}
