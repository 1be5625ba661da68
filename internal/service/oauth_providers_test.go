package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonClient(responses map[string]string) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body, ok := responses[r.URL.String()]
			status := http.StatusOK
			if !ok {
				status = http.StatusNotFound
				body = "{}"
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		}),
	}
}

func TestFetchGoogleIdentity(t *testing.T) {
	client := jsonClient(map[string]string{
		"https://www.googleapis.com/oauth2/v2/userinfo": `{"email":"a@x.com","name":"Al Ice","verified_email":true}`,
	})

	identity, err := fetchGoogleIdentity(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, "Al Ice", identity.Name)
}

func TestFetchGoogleIdentityUnverifiedEmail(t *testing.T) {
	client := jsonClient(map[string]string{
		"https://www.googleapis.com/oauth2/v2/userinfo": `{"email":"a@x.com","verified_email":false}`,
	})

	_, err := fetchGoogleIdentity(context.Background(), client)
	assert.ErrorIs(t, err, ErrProviderEmail)
}

func TestFetchGithubIdentityPicksPrimaryVerifiedEmail(t *testing.T) {
	client := jsonClient(map[string]string{
		"https://api.github.com/user": `{"name":"","login":"alice"}`,
		"https://api.github.com/user/emails": `[
			{"email":"old@x.com","primary":false,"verified":true},
			{"email":"a@x.com","primary":true,"verified":true}
		]`,
	})

	identity, err := fetchGithubIdentity(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, "alice", identity.Name)
}

func TestFetchGithubIdentityNoVerifiedPrimary(t *testing.T) {
	client := jsonClient(map[string]string{
		"https://api.github.com/user":        `{"name":"Al","login":"alice"}`,
		"https://api.github.com/user/emails": `[{"email":"a@x.com","primary":true,"verified":false}]`,
	})

	_, err := fetchGithubIdentity(context.Background(), client)
	assert.ErrorIs(t, err, ErrProviderEmail)
}
