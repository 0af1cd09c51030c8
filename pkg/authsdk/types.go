package authsdk

import "time"

// ErrorResponse is the wire shape of an APIError, used by the SDK client
// when parsing non-2xx responses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is the wire shape of a ValidationError.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// LoginRequest carries the credentials for POST /v1/auth/login. OTPCode is
// only required for accounts with an activated authenticator.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code,omitempty"`
}

// TokenBundle is the token portion of a successful login response.
type TokenBundle struct {
	// AccessToken is the signed JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// ExpiresAt is when the access token stops being accepted
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is returned from POST /v1/auth/login.
type LoginResponse struct {
	Username string      `json:"username"`
	Tokens   TokenBundle `json:"tokens"`
}

// RegisterRequest carries the fields for POST /v1/users/register.
type RegisterRequest struct {
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// UserUpdateRequest carries the mutable profile fields for PUT /v1/users/{id}.
// Empty fields are left unchanged.
type UserUpdateRequest struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Password  string `json:"password,omitempty"`
}

// UserResponse is the public representation of a user account.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Superuser    bool      `json:"superuser"`
	Capabilities []string  `json:"capabilities"`
	MFAEnabled   bool      `json:"mfa_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserListResponse is returned from GET /v1/users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// Permission update operations accepted by PUT /v1/users/{username}/permissions.
const (
	PermissionOpAdd     = "add"
	PermissionOpReplace = "replace"
	PermissionOpRemove  = "remove"
	PermissionOpClear   = "clear"
)

// PermissionsUpdateRequest mutates a user's capability set. Capabilities is
// ignored for the clear operation. The whole request fails if any listed
// capability is unknown.
type PermissionsUpdateRequest struct {
	Op           string   `json:"op"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// PermissionsResponse reports a user's effective capability set.
type PermissionsResponse struct {
	Username     string   `json:"username"`
	Superuser    bool     `json:"superuser"`
	Capabilities []string `json:"capabilities"`
}

// UserInfoResponse is returned from GET /v1/userinfo for the calling token.
type UserInfoResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Superuser    bool     `json:"superuser"`
	Capabilities []string `json:"capabilities"`
}

// TokenRecord is the administrative view of an issued token.
type TokenRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Blacklisted bool      `json:"blacklisted"`
}

// TokenListResponse is returned from GET /v1/tokens.
type TokenListResponse struct {
	Tokens []TokenRecord `json:"tokens"`
}

// BootstrapRequest creates the initial superuser during first deployment.
// The service only honours it when no users exist and the caller presents
// the bootstrap token configured at startup.
type BootstrapRequest struct {
	BootstrapToken string `json:"bootstrap_token"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
}

// BootstrapResponse confirms the created superuser.
type BootstrapResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// MFAEnrollResponse is returned from POST /v1/mfa/totp/enroll. The secret
// and provisioning URL are shown once; the enrollment stays pending until
// activated with a valid code.
type MFAEnrollResponse struct {
	Secret      string `json:"secret"`
	OTPAuthURL  string `json:"otpauth_url"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// MFAActivateRequest confirms authenticator enrollment with a current code.
type MFAActivateRequest struct {
	Code string `json:"code"`
}

// HealthChecks reports the state of critical dependencies in readiness
// responses.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned from /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
