package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestGoogle(t *testing.T, info map[string]any) *Google {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok", "token_type": "Bearer", "expires_in": 3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	g := NewGoogle("client", "secret", "http://localhost/callback")
	g.oauth.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"
	return g
}

func TestGoogleExchange(t *testing.T) {
	g := newTestGoogle(t, map[string]any{
		"sub": "1234", "email": "alice@gmail.com", "email_verified": true, "name": "Alice", "picture": "https://pic",
	})

	profile, err := g.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "1234", profile.ExternalID)
	assert.Equal(t, "alice@gmail.com", profile.Email)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.Equal(t, "https://pic", profile.AvatarURL)
}

func TestGoogleExchange_Unverified(t *testing.T) {
	g := newTestGoogle(t, map[string]any{"sub": "1234", "email": "alice@gmail.com", "email_verified": false})

	_, err := g.Exchange(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrUnverifiedProfile)
}

func TestGoogleAuthCodeURL(t *testing.T) {
	g := NewGoogle("client", "secret", "http://localhost/callback")
	assert.True(t, g.Enabled())

	u, err := url.Parse(g.AuthCodeURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))

	assert.False(t, NewGoogle("", "", "").Enabled())
}
