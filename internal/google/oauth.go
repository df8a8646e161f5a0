package google

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthConfig returns the OAuth2 configuration for the credentials
func OAuthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       DefaultOAuthScopes,
	}
}

// TokenSource returns a token source that refreshes access tokens from the
// refresh token on demand
func TokenSource(ctx context.Context, creds Credentials) oauth2.TokenSource {
	return OAuthConfig(creds).TokenSource(ctx, &oauth2.Token{
		RefreshToken: creds.RefreshToken,
	})
}

// NewHTTPClient returns an HTTP client that authenticates every request and
// records a client span per Google API call. The client is configured to use
// HTTP/1.1 to avoid HTTP/2 protocol errors. No request is made until the
// first API call.
func NewHTTPClient(ctx context.Context, creds Credentials) (*http.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	base := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		ForceAttemptHTTP2: false,
	}
	authenticated := &oauth2.Transport{
		Source: oauth2.ReuseTokenSource(nil, TokenSource(ctx, creds)),
		Base:   base,
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(authenticated),
	}, nil
}
