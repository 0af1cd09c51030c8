package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated connection to the auth service, created by
// SDKClient.Login. The service issues a single access token per login, so
// the session holds exactly one bearer credential.
type Session struct {
	client      *SDKClient
	username    string
	accessToken string
	expiresAt   time.Time
}

// NewSessionFromToken rebuilds a session from a stored access token.
func (c *SDKClient) NewSessionFromToken(accessToken string, expiresAt time.Time) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   expiresAt,
	}
}

// Username returns the username the session authenticated as. Empty for
// sessions rebuilt from a stored token.
func (s *Session) Username() string { return s.username }

// AccessToken returns the raw bearer token, for callers that need to
// persist it.
func (s *Session) AccessToken() string { return s.accessToken }

// ExpiresAt returns when the access token stops being accepted.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) do(ctx context.Context, method, path string, in, out any) error {
	return s.client.doJSONAuth(ctx, method, path, s.accessToken, in, out)
}

// Logout blacklists the session's token. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// UserInfo returns the identity and capabilities behind the session token.
func (s *Session) UserInfo(ctx context.Context) (*UserInfoResponse, error) {
	var resp UserInfoResponse
	if err := s.do(ctx, http.MethodGet, "/v1/userinfo", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new user account. Requires the manage-users surface.
func (s *Session) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := s.do(ctx, http.MethodPost, "/v1/users/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers returns every user account.
func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var resp UserListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser returns a single user by ID.
func (s *Session) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	var resp UserResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser updates a user's profile fields.
func (s *Session) UpdateUser(ctx context.Context, id string, req UserUpdateRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := s.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser removes a user account and every token issued to it.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil, nil)
}

// GetPermissions returns a user's capability set.
func (s *Session) GetPermissions(ctx context.Context, username string) (*PermissionsResponse, error) {
	var resp PermissionsResponse
	path := "/v1/users/" + url.PathEscape(username) + "/permissions"
	if err := s.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePermissions mutates a user's capability set with one of the add,
// replace, remove, or clear operations.
func (s *Session) UpdatePermissions(ctx context.Context, username string, req PermissionsUpdateRequest) (*PermissionsResponse, error) {
	var resp PermissionsResponse
	path := "/v1/users/" + url.PathEscape(username) + "/permissions"
	if err := s.do(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTokens returns the administrative view of issued tokens.
func (s *Session) ListTokens(ctx context.Context) ([]TokenRecord, error) {
	var resp TokenListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/tokens", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// BlacklistToken revokes a token by its ID.
func (s *Session) BlacklistToken(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodPost, "/v1/tokens/"+url.PathEscape(id)+"/blacklist", nil, nil)
}

// EnrollTOTP begins authenticator enrollment for the session's account.
func (s *Session) EnrollTOTP(ctx context.Context) (*MFAEnrollResponse, error) {
	var resp MFAEnrollResponse
	if err := s.do(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActivateTOTP confirms authenticator enrollment with a current code.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	return s.do(ctx, http.MethodPost, "/v1/mfa/totp/activate", MFAActivateRequest{Code: code}, nil)
}

// RemoveTOTP disables the authenticator for the session's account.
func (s *Session) RemoveTOTP(ctx context.Context) error {
	return s.do(ctx, http.MethodDelete, "/v1/mfa/totp", nil, nil)
}
