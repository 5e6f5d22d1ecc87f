package client

import (
	"context"
	"time"

	"github.com/eventsync/eventsync/internal/client/models"
)

type emailRequest struct {
	Email string `json:"email"`
}

type codeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type completeSignupRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// loginResponse accepts both spellings of the session token key; the API
// has shipped each of them.
type loginResponse struct {
	SessionToken      string              `json:"sessionToken"`
	SessionTokenUpper string              `json:"SessionToken"`
	User              *models.UserProfile `json:"user"`
	Message           string              `json:"message"`
}

func (r loginResponse) token() string {
	if r.SessionTokenUpper != "" {
		return r.SessionTokenUpper
	}
	return r.SessionToken
}

// completeSignupResponse is the created user with the session token inlined.
// Some deployments nest the user under "user" instead.
type completeSignupResponse struct {
	models.UserProfile
	SessionToken string              `json:"sessionToken"`
	User         *models.UserProfile `json:"user"`
}

type meetingsResponse struct {
	Meetings []models.Meeting `json:"meetings"`
}

func (c *HTTPClient) SignupEmailCode(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/signupEmailcode", emailRequest{Email: email}, nil)
}

func (c *HTTPClient) EmailCodeVerify(ctx context.Context, email, code string) (string, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/auth/emailcodeVerify", codeRequest{Email: email, Code: code}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

func (c *HTTPClient) CompleteSignup(ctx context.Context, name, password, verificationToken string) (*models.UserProfile, string, error) {
	var resp completeSignupResponse
	req := completeSignupRequest{Name: name, Password: password}
	if err := c.post(ctx, "/auth/completeSignup", req, &resp, withBearer(verificationToken)); err != nil {
		return nil, "", err
	}
	if resp.SessionToken == "" {
		return nil, "", ErrNoToken
	}

	user := resp.User
	if user == nil {
		u := resp.UserProfile
		user = &u
	}
	if user.ID == "" && user.Email == "" {
		return nil, "", ErrNoUser
	}
	return user, resp.SessionToken, nil
}

// Login authenticates with email and password. When the response carries no
// user object the profile is decoded from the token payload and marked
// Derived.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	token := resp.token()
	if token == "" {
		return nil, ErrNoToken
	}

	result := &models.LoginResult{Token: token, User: resp.User, Message: resp.Message}
	if result.Message == "" {
		result.Message = "Login successful"
	}
	if result.User == nil {
		if u, err := DecodeProfile(token, time.Now()); err == nil {
			result.User = u
		}
	}
	return result, nil
}

func (c *HTTPClient) ForgotPasswordCode(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgotPasswordcode", emailRequest{Email: email}, nil)
}

func (c *HTTPClient) ForgotPasswordCodeVerify(ctx context.Context, email, code string) (string, error) {
	var resp tokenResponse
	if err := c.post(ctx, "/auth/forgotPasswordcodeVerify", codeRequest{Email: email, Code: code}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

func (c *HTTPClient) ForgotPasswordFill(ctx context.Context, email, password, token string) error {
	return c.post(ctx, "/auth/forgotPasswordfill", credentialsRequest{Email: email, Password: password}, nil, withBearer(token))
}

func (c *HTTPClient) Meetings(ctx context.Context) ([]models.Meeting, error) {
	var resp meetingsResponse
	if err := c.get(ctx, "/events/getmeetings", &resp); err != nil {
		return nil, err
	}
	return resp.Meetings, nil
}
