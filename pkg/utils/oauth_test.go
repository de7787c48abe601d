package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/furnace-rank/internal/config"
)

func testOAuthClient() *config.OAuthClientConfig {
	return &config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:                "client-id.apps.googleusercontent.com",
			ProjectID:               "hornos",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}
}

func TestGetOAuthConfig(t *testing.T) {
	cfg, err := GetOAuthConfig(testOAuthClient())
	require.NoError(t, err)

	assert.Equal(t, []string{ScopeSheetsReadonly}, cfg.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", cfg.RedirectURL)
	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.ClientID)
}

func TestMissingScopes(t *testing.T) {
	assert.Empty(t, missingScopes("openid "+ScopeSheetsReadonly))
	assert.Equal(t, []string{ScopeSheetsReadonly}, missingScopes("https://www.googleapis.com/auth/gmail.send"))
	assert.Equal(t, []string{ScopeSheetsReadonly}, missingScopes(""))
}

func TestValidateTokenScopes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") == "good" {
			w.Write([]byte(`{"scope": "` + ScopeSheetsReadonly + `"}`))
			return
		}
		w.Write([]byte(`{"scope": "openid"}`))
	}))
	defer server.Close()

	orig := tokenInfoEndpoint
	tokenInfoEndpoint = server.URL
	defer func() { tokenInfoEndpoint = orig }()

	ctx := context.Background()
	assert.NoError(t, validateTokenScopes(ctx, &oauth2.Token{AccessToken: "good"}))
	assert.ErrorContains(t, validateTokenScopes(ctx, &oauth2.Token{AccessToken: "bad"}), "missing required scopes")
}

func TestTokenFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	token, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, token)

	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, SaveTokenToFile("test", &oauth2.Token{AccessToken: "abc", RefreshToken: "def", Expiry: expiry}))

	path := filepath.Join(home, ".furnace-rank", "tokens", "token-test.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	token, err = LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, "def", token.RefreshToken)
	assert.True(t, expiry.Equal(token.Expiry))

	require.NoError(t, DeleteTokenFile("test"))
	require.NoError(t, DeleteTokenFile("test"))

	token, err = LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestCallbackHandler(t *testing.T) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)
	handler := callbackHandler("state-1", codeChan, errChan)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=other&code=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, codeChan)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=state-1&code=the-code", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the-code", <-codeChan)

	// A repeated callback must not block
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=state-1&code=again", nil))
	handler(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=state-1&code=third", nil))
	assert.Equal(t, "again", <-codeChan)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/oauth/callback?state=state-1&error=access_denied", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ErrorContains(t, <-errChan, "access_denied")
}

func TestReuseStoredToken_RefreshWithSameAccessToken(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Some providers return the same access token with a new expiry
		w.Write([]byte(`{"access_token": "same", "token_type": "Bearer", "expires_in": 3600}`))
	})
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scope": "` + ScopeSheetsReadonly + `"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	orig := tokenInfoEndpoint
	tokenInfoEndpoint = server.URL + "/tokeninfo"
	defer func() { tokenInfoEndpoint = orig }()

	expired := &oauth2.Token{AccessToken: "same", RefreshToken: "refresh", Expiry: time.Now().Add(-time.Hour)}
	require.NoError(t, SaveTokenToFile("test", expired))

	oauthConfig := &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: server.URL + "/token"},
	}

	token := reuseStoredToken(context.Background(), oauthConfig, "test")
	require.NotNil(t, token)
	assert.Equal(t, "same", token.AccessToken)
	assert.True(t, token.Valid())

	saved, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.True(t, saved.Expiry.After(time.Now()))
	assert.Equal(t, "refresh", saved.RefreshToken)
}
