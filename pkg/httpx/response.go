package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteAccessDenied writes the structured denial response used for every
// authentication and authorization failure. The status code is always 403;
// failures differ in message only so the response shape stays uniform.
func WriteAccessDenied(w http.ResponseWriter, reason string) {
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "access_denied",
		"error_description": "Access denied: " + reason,
	})
}
