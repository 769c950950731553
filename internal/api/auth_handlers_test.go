package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookieFrom(t *testing.T, header http.Header) *http.Cookie {
	t.Helper()
	for _, c := range (&http.Response{Header: header}).Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in %v", SessionCookieName, header.Values("Set-Cookie"))
	return nil
}

func TestAuth_LoginLogout(t *testing.T) {
	ts := setupTestServer(t)
	_, err := ts.auth.CreateUser(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	resp := ts.api.Post("/login", map[string]any{"username": "alice", "password": "correct horse"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"info":{"message":"Login successful!","username":"alice"}}`, resp.Body.String())
	assert.Equal(t, CacheNoStore, resp.Header().Get("Cache-Control"))

	cookie := sessionCookieFrom(t, resp.Header())
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	header := "Cookie: " + SessionCookieName + "=" + cookie.Value
	resp = ts.api.Post("/api/authors", header, lenin())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Post("/logout", header)
	require.Equal(t, http.StatusOK, resp.Code)
	cleared := sessionCookieFrom(t, resp.Header())
	assert.Empty(t, cleared.Value)
	assert.True(t, strings.Contains(resp.Header().Get("Set-Cookie"), "Max-Age=0"))

	resp = ts.api.Post("/api/authors", header, lenin())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuth_LoginFailures(t *testing.T) {
	ts := setupTestServer(t)
	_, err := ts.auth.CreateUser(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"wrong password", map[string]any{"username": "alice", "password": "battery staple"}, http.StatusUnauthorized, "AUTHENTICATION"},
		{"unknown user", map[string]any{"username": "mallory", "password": "battery staple"}, http.StatusUnauthorized, "AUTHENTICATION"},
		{"short password", map[string]any{"username": "alice", "password": "short"}, http.StatusBadRequest, "VALIDATION"},
		{"missing fields", map[string]any{}, http.StatusBadRequest, "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/login", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, resp).Code)
			assert.Empty(t, resp.Header().Values("Set-Cookie"))
		})
	}
}

func TestAuth_LogoutWithoutSession(t *testing.T) {
	ts := setupTestServer(t)

	for _, args := range [][]any{nil, {"Cookie: token=unknown"}} {
		resp := ts.api.Post("/logout", args...)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"info":{}}`, resp.Body.String())
	}
}
