package access

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/security"
)

// ProviderTypeBasic identifies the HTTP Basic access provider.
const ProviderTypeBasic = "basic"

// BasicProvider authenticates requests with HTTP Basic credentials checked
// against the users table.
type BasicProvider struct {
	db   *gorm.DB
	name string
}

// NewBasicProvider constructs a database-backed Basic auth provider.
func NewBasicProvider(db *gorm.DB) *BasicProvider {
	return &BasicProvider{db: db, name: ProviderTypeBasic}
}

// Identifier returns the provider name.
func (p *BasicProvider) Identifier() string { return p.name }

// Authenticate verifies Basic credentials and loads the user's role set.
func (p *BasicProvider) Authenticate(ctx context.Context, r *http.Request) (*Result, error) {
	if p == nil || p.db == nil || r == nil {
		return nil, ErrNotHandled
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrNotHandled
	}
	if username == "" || password == "" {
		return nil, NewInvalidCredentialError()
	}

	var user models.User
	err := p.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, NewInvalidCredentialError()
	default:
		return nil, NewInternalAuthError("basic provider: query failed", fmt.Errorf("basic provider: %w", err))
	}

	if user.Disabled {
		return nil, NewInvalidCredentialError()
	}
	if !security.CheckPassword(user.Password, password) {
		return nil, NewInvalidCredentialError()
	}

	return &Result{
		Provider:  p.name,
		Principal: user.Username,
		Roles:     user.RoleNames(),
	}, nil
}
