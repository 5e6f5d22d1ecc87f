package models

// Session is the authenticated identity and its bearer token.
// Token is set if and only if User is set.
type Session struct {
	Token string
	User  *UserProfile
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Normalize enforces the token/user pairing: a token without a resolvable
// profile (or the reverse) collapses to the empty session.
func (s Session) Normalize() Session {
	if !s.Authenticated() {
		return Session{}
	}
	return s
}

// LoginResult is what the login endpoint yields after response decoding.
type LoginResult struct {
	Token   string
	User    *UserProfile
	Message string
}
