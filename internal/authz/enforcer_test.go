package authz

import (
	"testing"

	"github.com/cashvault/cashcard/internal/models"
)

func TestAuthorizeRoleAllowsCardOwner(t *testing.T) {
	enforcer := NewEnforcer()

	if got := enforcer.AuthorizeRole([]string{models.RoleCardOwner}); got != Allow {
		t.Fatalf("AuthorizeRole(card-owner) = %s, want allow", got)
	}
	if got := enforcer.AuthorizeRole([]string{models.RoleNonOwner, models.RoleCardOwner}); got != Allow {
		t.Fatalf("AuthorizeRole(mixed) = %s, want allow", got)
	}
}

func TestAuthorizeRoleForbidsOtherRoles(t *testing.T) {
	enforcer := NewEnforcer()

	if got := enforcer.AuthorizeRole([]string{models.RoleNonOwner}); got != Forbidden {
		t.Fatalf("AuthorizeRole(non-owner) = %s, want forbidden", got)
	}
	if got := enforcer.AuthorizeRole(nil); got != Forbidden {
		t.Fatalf("AuthorizeRole(nil) = %s, want forbidden", got)
	}
}

func TestFilterByOwnershipAllowsOwnRecord(t *testing.T) {
	enforcer := NewEnforcer()
	card := &models.Card{ID: 99, Amount: 123.45, Owner: "sarah1"}

	if got := enforcer.FilterByOwnership("sarah1", card); got != Allow {
		t.Fatalf("FilterByOwnership(owner) = %s, want allow", got)
	}
}

func TestFilterByOwnershipHidesForeignAndAbsentRecordsAlike(t *testing.T) {
	enforcer := NewEnforcer()
	card := &models.Card{ID: 102, Amount: 200.00, Owner: "kumar2"}

	foreign := enforcer.FilterByOwnership("sarah1", card)
	absent := enforcer.FilterByOwnership("sarah1", nil)

	if foreign != NotFound {
		t.Fatalf("FilterByOwnership(foreign) = %s, want not_found", foreign)
	}
	if absent != NotFound {
		t.Fatalf("FilterByOwnership(absent) = %s, want not_found", absent)
	}
	if foreign != absent {
		t.Fatalf("foreign and absent records must be indistinguishable")
	}
}
