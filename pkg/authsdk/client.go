package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the inventory auth service. It provides the
// unauthenticated operations and creates authenticated Sessions on login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for an access token and returns an
// authenticated Session. Accounts with an activated authenticator must
// supply the current one-time code.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	return &Session{
		client:      c,
		username:    resp.Username,
		accessToken: resp.Tokens.AccessToken,
		expiresAt:   resp.Tokens.ExpiresAt,
	}, nil
}

// Bootstrap creates the initial superuser on a fresh deployment.
func (c *SDKClient) Bootstrap(ctx context.Context, req BootstrapRequest) (*BootstrapResponse, error) {
	var resp BootstrapResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/bootstrap", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Healthy reports whether the service answers its liveness probe.
func (c *SDKClient) Healthy(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/livez", nil, nil)
}

// Ready reports whether the service can reach its database.
func (c *SDKClient) Ready(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/readyz", nil, nil)
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends an optional JSON body and decodes a JSON response into out.
// A nil out discards the response body. Token is optional; when set it is
// sent as a bearer credential.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	return c.doJSONAuth(ctx, method, path, "", in, out)
}

func (c *SDKClient) doJSONAuth(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseErrorResponse turns a non-2xx response into an APIError or
// ValidationError, falling back to a generic APIError when the body is not
// one of the known shapes.
func parseErrorResponse(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("failed to read error response: %v", err),
		}
	}

	var ve ValidationErrorResponse
	if err := json.Unmarshal(raw, &ve); err == nil && ve.Code == "validation_error" {
		return &ValidationError{
			StatusCode: resp.StatusCode,
			Code:       ve.Code,
			Message:    ve.Message,
			Details:    ve.Details,
		}
	}

	var er ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        er.Error,
			Description: er.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: strings.TrimSpace(string(raw)),
	}
}
