// Package authsdk is the Go client for the inventory auth service.
//
// Unauthenticated operations (login, bootstrap, health probes) hang off
// SDKClient; a successful Login returns a Session that carries the bearer
// token for everything else.
//
//	client := authsdk.NewSDKClient("http://localhost:8080")
//	session, err := client.Login(ctx, authsdk.LoginRequest{
//		Username: "alice",
//		Password: "S3cret!pass",
//	})
//	if err != nil {
//		// *authsdk.APIError or *authsdk.ValidationError
//	}
//	info, err := session.UserInfo(ctx)
//
// The server side reuses the same types: handlers encode responses with the
// structs in types.go and write failures with APIError.WriteError, so the
// wire format has a single definition.
package authsdk
