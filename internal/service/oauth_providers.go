package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	githubauth "golang.org/x/oauth2/github"
	googleauth "golang.org/x/oauth2/google"
)

// ProviderIdentity is what the engine trusts from a completed provider
// flow: an address the provider itself has verified.
type ProviderIdentity struct {
	Email string
	Name  string
}

// OAuthProvider wraps one provider's code exchange and identity fetch.
type OAuthProvider struct {
	Name   string
	config *oauth2.Config
	fetch  func(ctx context.Context, client *http.Client) (ProviderIdentity, error)
}

func NewGoogleProvider(clientID string, clientSecret string, redirectURL string) *OAuthProvider {
	return &OAuthProvider{
		Name: "google",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleauth.Endpoint,
		},
		fetch: fetchGoogleIdentity,
	}
}

func NewGithubProvider(clientID string, clientSecret string, redirectURL string) *OAuthProvider {
	return &OAuthProvider{
		Name: "github",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubauth.Endpoint,
		},
		fetch: fetchGithubIdentity,
	}
}

func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and resolves the verified
// identity behind it.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (ProviderIdentity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return ProviderIdentity{}, fmt.Errorf("%s code exchange: %w", p.Name, err)
	}
	return p.fetch(ctx, p.config.Client(ctx, token))
}

func fetchGoogleIdentity(ctx context.Context, client *http.Client) (ProviderIdentity, error) {
	var info struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &info); err != nil {
		return ProviderIdentity{}, err
	}
	if info.Email == "" || !info.VerifiedEmail {
		return ProviderIdentity{}, ErrProviderEmail
	}
	name := info.Name
	if name == "" {
		name = "Google User"
	}
	return ProviderIdentity{Email: info.Email, Name: name}, nil
}

// GitHub hides the address behind /user/emails; only a primary, verified
// entry is accepted.
func fetchGithubIdentity(ctx context.Context, client *http.Client) (ProviderIdentity, error) {
	var profile struct {
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user", &profile); err != nil {
		return ProviderIdentity{}, err
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
		return ProviderIdentity{}, err
	}

	var primary string
	for _, e := range emails {
		if e.Primary && e.Verified {
			primary = e.Email
			break
		}
	}
	if primary == "" {
		return ProviderIdentity{}, ErrProviderEmail
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	return ProviderIdentity{Email: primary, Name: name}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("provider request %s failed with status %d", url, response.StatusCode)
	}
	return json.NewDecoder(response.Body).Decode(target)
}
