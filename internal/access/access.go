// Package access authenticates inbound HTTP requests. Providers inspect a
// request for credentials of their scheme and yield either a verified
// principal with its role set or a typed authentication error; the manager
// tries providers in order until one handles the request.
package access

import (
	"context"
	"errors"
	"net/http"
)

// AuthError codes distinguishing authentication failure classes.
const (
	// AuthErrorCodeNoCredentials indicates no credentials were presented.
	AuthErrorCodeNoCredentials = "no_credentials"
	// AuthErrorCodeInvalidCredential indicates presented credentials failed verification.
	AuthErrorCodeInvalidCredential = "invalid_credential"
	// AuthErrorCodeInternal indicates the authenticator itself failed.
	AuthErrorCodeInternal = "internal"
)

// ErrNotHandled signals that a provider does not recognize the request's
// credential scheme and the next provider should be consulted.
var ErrNotHandled = errors.New("access: not handled")

// Result describes a successfully authenticated request.
type Result struct {
	Provider  string   // Identifier of the provider that authenticated the request.
	Principal string   // Verified principal name.
	Roles     []string // Role set granted to the principal.
}

// AuthError is a typed authentication failure.
type AuthError struct {
	Code    string // One of the AuthErrorCode constants.
	Message string
	Err     error // Underlying cause, if any.
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *AuthError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewNoCredentialsError builds an AuthError for missing credentials.
func NewNoCredentialsError() *AuthError {
	return &AuthError{Code: AuthErrorCodeNoCredentials, Message: "missing credentials"}
}

// NewInvalidCredentialError builds an AuthError for rejected credentials.
func NewInvalidCredentialError() *AuthError {
	return &AuthError{Code: AuthErrorCodeInvalidCredential, Message: "invalid credentials"}
}

// NewInternalAuthError builds an AuthError for authenticator failures.
func NewInternalAuthError(message string, err error) *AuthError {
	return &AuthError{Code: AuthErrorCodeInternal, Message: message, Err: err}
}

// IsAuthErrorCode reports whether err is an AuthError with the given code.
func IsAuthErrorCode(err error, code string) bool {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	return authErr.Code == code
}

// Provider authenticates requests carrying one credential scheme.
type Provider interface {
	// Identifier returns the provider name recorded in results.
	Identifier() string
	// Authenticate verifies the request. It returns ErrNotHandled when the
	// request carries no credentials of this provider's scheme.
	Authenticate(ctx context.Context, r *http.Request) (*Result, error)
}

// Manager runs a provider chain against inbound requests.
type Manager struct {
	providers []Provider
}

// NewManager constructs a Manager over the given providers, tried in order.
func NewManager(providers ...Provider) *Manager {
	return &Manager{providers: providers}
}

// Authenticate consults each provider until one handles the request.
// When no provider recognizes the request's credentials the result is a
// no-credentials AuthError.
func (m *Manager) Authenticate(ctx context.Context, r *http.Request) (*Result, error) {
	if m == nil || len(m.providers) == 0 {
		return nil, NewInternalAuthError("no access providers configured", nil)
	}
	for _, provider := range m.providers {
		result, err := provider.Authenticate(ctx, r)
		if errors.Is(err, ErrNotHandled) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, NewNoCredentialsError()
}
