package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var ErrUnverifiedProfile = errors.New("provider returned an incomplete profile")

// Google runs the OpenID Connect authorization code flow.
type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Enabled reports whether client credentials are configured.
func (g *Google) Enabled() bool {
	return g.oauth.ClientID != "" && g.oauth.ClientSecret != ""
}

func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

type userInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades the callback code for a token and fetches the userinfo document.
func (g *Google) Exchange(ctx context.Context, code string) (usecase.FederatedProfile, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return usecase.FederatedProfile{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return usecase.FederatedProfile{}, err
	}
	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return usecase.FederatedProfile{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return usecase.FederatedProfile{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return usecase.FederatedProfile{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Sub == "" || info.Email == "" || (info.EmailVerified != nil && !*info.EmailVerified) {
		return usecase.FederatedProfile{}, ErrUnverifiedProfile
	}

	return usecase.FederatedProfile{
		ExternalID:  info.Sub,
		Email:       info.Email,
		DisplayName: info.Name,
		AvatarURL:   info.Picture,
	}, nil
}
