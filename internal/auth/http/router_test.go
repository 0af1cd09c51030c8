package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	authhttp "github.com/renewtech/inventory-auth/internal/auth/http"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/internal/auth/store/drivers/sqlite"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/cryptox"
	"github.com/renewtech/inventory-auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

const testPassword = "Sup3rSecret!pass"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	kc, err := jwtx.NewHS256Keychain(bytes.Repeat([]byte{0x42}, jwtx.MinSecretLength), "inventory-auth")
	require.NoError(t, err)

	users := &service.UserService{Store: st}

	router := authhttp.NewRouter(kc, "test",
		st, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	router.UserService = users
	router.PermissionService = &service.PermissionService{Store: st}
	router.TokenService = &service.TokenService{
		Keychain:      kc,
		Store:         st,
		Issuer:        "inventory-auth",
		AccessTTL:     jwtx.DefaultAccessTokenTTL,
		SingleSession: true,
	}
	router.MFAService = &service.MFAService{Store: st, Issuer: "inventory-auth"}
	router.BootstrapService = &service.BootstrapService{Users: users, Token: "boot-secret"}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	client := authsdk.NewSDKClient(srv.URL)
	ctx := context.Background()

	// Bootstrap the first superuser, then work through the SDK.
	boot, err := client.Bootstrap(ctx, authsdk.BootstrapRequest{
		BootstrapToken: "boot-secret",
		Username:       "root",
		Password:       testPassword,
		Email:          "root@example.org",
	})
	require.NoError(t, err)
	require.Equal(t, "root", boot.Username)

	session, err := client.Login(ctx, authsdk.LoginRequest{
		Username: "root",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "root", session.Username())
	require.NotEmpty(t, session.AccessToken())

	info, err := session.UserInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, "root", info.Username)
	require.True(t, info.Superuser)

	// Register a technician with two capabilities.
	tech, err := session.Register(ctx, authsdk.RegisterRequest{
		Username:     "alice",
		Password:     testPassword,
		Email:        "alice@example.org",
		FirstName:    "Alice",
		LastName:     "Nguyen",
		Role:         "Technician",
		Capabilities: []string{"readDevices", "scanDevices"},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"readDevices", "scanDevices"}, tech.Capabilities)

	aliceSession, err := client.Login(ctx, authsdk.LoginRequest{
		Username: "alice",
		Password: testPassword,
	})
	require.NoError(t, err)

	// Alice is not a superuser, so account administration is denied.
	_, err = aliceSession.ListUsers(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeAccessDenied, apiErr.Code)
	require.Contains(t, apiErr.Description, "Access denied")

	// Logout kills the session.
	require.NoError(t, aliceSession.Logout(ctx))
	_, err = aliceSession.UserInfo(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Contains(t, apiErr.Description, "blacklisted")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := authsdk.NewSDKClient(srv.URL)
	ctx := context.Background()

	_, err := client.Bootstrap(ctx, authsdk.BootstrapRequest{
		BootstrapToken: "boot-secret",
		Username:       "root",
		Password:       testPassword,
		Email:          "root@example.org",
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, authsdk.LoginRequest{Username: "root", Password: "Wrong!Pass1"})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidCredentials, apiErr.Code)

	// Unknown user yields the exact same error code and message.
	_, err = client.Login(ctx, authsdk.LoginRequest{Username: "ghost", Password: "Wrong!Pass1"})
	var apiErr2 *authsdk.APIError
	require.ErrorAs(t, err, &apiErr2)
	require.Equal(t, apiErr.Code, apiErr2.Code)
	require.Equal(t, apiErr.Description, apiErr2.Description)
}

func TestPermissionsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	client := authsdk.NewSDKClient(srv.URL)
	ctx := context.Background()

	_, err := client.Bootstrap(ctx, authsdk.BootstrapRequest{
		BootstrapToken: "boot-secret",
		Username:       "root",
		Password:       testPassword,
		Email:          "root@example.org",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, authsdk.LoginRequest{Username: "root", Password: testPassword})
	require.NoError(t, err)

	_, err = session.Register(ctx, authsdk.RegisterRequest{
		Username:  "bob",
		Password:  testPassword,
		Email:     "bob@example.org",
		FirstName: "Bob",
		LastName:  "Smith",
		Role:      "Volunteer",
	})
	require.NoError(t, err)

	perms, err := session.UpdatePermissions(ctx, "bob", authsdk.PermissionsUpdateRequest{
		Op:           authsdk.PermissionOpAdd,
		Capabilities: []string{"readDevices", "generateQRCodes"},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"readDevices", "generateQRCodes"}, perms.Capabilities)

	// An unknown capability fails the whole request.
	_, err = session.UpdatePermissions(ctx, "bob", authsdk.PermissionsUpdateRequest{
		Op:           authsdk.PermissionOpAdd,
		Capabilities: []string{"manageDonors", "launchMissiles"},
	})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	perms, err = session.GetPermissions(ctx, "bob")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"readDevices", "generateQRCodes"}, perms.Capabilities)

	// Clear empties the set.
	perms, err = session.UpdatePermissions(ctx, "bob", authsdk.PermissionsUpdateRequest{
		Op: authsdk.PermissionOpClear,
	})
	require.NoError(t, err)
	require.Empty(t, perms.Capabilities)
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	client := authsdk.NewSDKClient(srv.URL)
	ctx := context.Background()

	_, err := client.Bootstrap(ctx, authsdk.BootstrapRequest{
		BootstrapToken: "boot-secret",
		Username:       "root",
		Password:       testPassword,
		Email:          "root@example.org",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, authsdk.LoginRequest{Username: "root", Password: testPassword})
	require.NoError(t, err)

	_, err = session.Register(ctx, authsdk.RegisterRequest{
		Username:  "x",
		Password:  "weak",
		Email:     "not-an-email",
		FirstName: "A",
		LastName:  "B",
		Role:      "c",
	})
	var ve *authsdk.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, http.StatusBadRequest, ve.StatusCode)
	for _, field := range []string{"username", "password", "email", "first_name", "last_name", "role"} {
		require.Contains(t, ve.Details, field)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	client := authsdk.NewSDKClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.Healthy(ctx))
	require.NoError(t, client.Ready(ctx))

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var health authsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
