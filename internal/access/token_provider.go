package access

import (
	"context"
	"net/http"
	"strings"

	"github.com/cashvault/cashcard/internal/security"
)

// ProviderTypeToken identifies the bearer token access provider.
const ProviderTypeToken = "token"

// TokenProvider authenticates requests carrying a bearer JWT.
type TokenProvider struct {
	secret string
	name   string
}

// NewTokenProvider constructs a JWT bearer provider with the signing secret.
func NewTokenProvider(secret string) *TokenProvider {
	return &TokenProvider{secret: secret, name: ProviderTypeToken}
}

// Identifier returns the provider name.
func (p *TokenProvider) Identifier() string { return p.name }

// Authenticate validates a bearer token and extracts principal and roles.
func (p *TokenProvider) Authenticate(_ context.Context, r *http.Request) (*Result, error) {
	if p == nil || r == nil {
		return nil, ErrNotHandled
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrNotHandled
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, NewInvalidCredentialError()
	}

	claims, err := security.ParseToken(p.secret, token)
	if err != nil {
		return nil, NewInvalidCredentialError()
	}

	return &Result{
		Provider:  p.name,
		Principal: claims.Username,
		Roles:     claims.Roles,
	}, nil
}
