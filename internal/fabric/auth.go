package fabric

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/dadfw/dad/internal/config"
)

// apiScope is the OAuth scope for the Fabric API.
const apiScope = "https://api.fabric.microsoft.com/.default"

// NewTokenSource builds a client-credentials token source for a service
// principal. This is the same AAD flow the Azure pipeline tasks use.
func NewTokenSource(ctx context.Context, auth config.AuthConfig) (oauth2.TokenSource, error) {
	if auth.TenantID == "" || auth.ClientID == "" || auth.ClientSecret == "" {
		return nil, fmt.Errorf("service principal credentials not configured (need auth.tenantId, auth.clientId, auth.clientSecret)")
	}

	cc := clientcredentials.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", auth.TenantID),
		Scopes:       []string{apiScope},
	}
	return cc.TokenSource(ctx), nil
}

// StaticTokenSource wraps a fixed bearer token, for tests and for callers
// that already hold a token.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}
