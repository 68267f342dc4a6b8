// Package authz decides whether an authenticated principal may act on card
// records. Role checks gate the endpoint class as a whole; ownership checks
// gate individual records and deliberately collapse "absent" and "owned by
// someone else" into one outcome so record existence never leaks.
package authz

import (
	"github.com/cashvault/cashcard/internal/models"
)

// Decision is the closed outcome set for authorization checks.
type Decision int

const (
	// Allow permits the operation.
	Allow Decision = iota
	// Forbidden rejects the principal for the whole endpoint class.
	Forbidden
	// NotFound hides the record, whether absent or foreign-owned.
	NotFound
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Enforcer evaluates role and ownership rules for card access.
type Enforcer struct {
	requiredRole string
}

// NewEnforcer constructs an Enforcer gating card endpoints on the card-owner role.
func NewEnforcer() *Enforcer {
	return &Enforcer{requiredRole: models.RoleCardOwner}
}

// AuthorizeRole checks whether the role set carries the card-owner
// capability. It runs before any record lookup, so a principal without the
// role is rejected identically for every record id.
func (e *Enforcer) AuthorizeRole(roles []string) Decision {
	for _, role := range roles {
		if role == e.requiredRole {
			return Allow
		}
	}
	return Forbidden
}

// FilterByOwnership checks a lookup result against the requesting principal.
// A nil card and a card owned by a different principal both yield NotFound.
func (e *Enforcer) FilterByOwnership(principal string, card *models.Card) Decision {
	if card == nil {
		return NotFound
	}
	if card.Owner != principal {
		return NotFound
	}
	return Allow
}
