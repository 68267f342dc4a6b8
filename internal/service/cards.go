// Package service implements the card operations. Every operation runs the
// role gate before touching the store, then issues a single ownership-scoped
// store call, so no request can observe or race another principal's records.
package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/cashvault/cashcard/internal/authz"
	"github.com/cashvault/cashcard/internal/cache"
	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/query"
	"github.com/cashvault/cashcard/internal/store"
)

// Operation outcomes surfaced to the transport layer.
var (
	// ErrForbidden indicates the principal lacks the card-owner role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the target card is absent or owned by another
	// principal; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("card not found")
)

// Principal identifies the authenticated caller and its role set.
type Principal struct {
	Name  string
	Roles []string
}

// CardService orchestrates authorization, query resolution, and persistence
// for the five card operations.
type CardService struct {
	cards    store.CardStore
	enforcer *authz.Enforcer
	views    *cache.CardCache
}

// NewCardService constructs a CardService. views may be nil when no cache is
// configured.
func NewCardService(cards store.CardStore, enforcer *authz.Enforcer, views *cache.CardCache) *CardService {
	return &CardService{cards: cards, enforcer: enforcer, views: views}
}

// Create stores a new card owned by the principal and returns it with the
// generated id. The owner always comes from the principal, never the request.
func (s *CardService) Create(ctx context.Context, principal Principal, amount float64) (*models.Card, error) {
	if s.enforcer.AuthorizeRole(principal.Roles) != authz.Allow {
		return nil, ErrForbidden
	}

	card := &models.Card{
		Amount: amount,
		Owner:  principal.Name,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"card_id": card.ID, "owner": card.Owner}).Debug("card created")
	return card, nil
}

// Get returns the principal's card with the given id, or ErrNotFound.
func (s *CardService) Get(ctx context.Context, principal Principal, id uint64) (*models.Card, error) {
	if s.enforcer.AuthorizeRole(principal.Roles) != authz.Allow {
		return nil, ErrForbidden
	}

	if cached := s.views.Get(ctx, principal.Name, id); cached != nil {
		if s.enforcer.FilterByOwnership(principal.Name, cached) == authz.Allow {
			return cached, nil
		}
	}

	card, err := s.cards.FindByIDAndOwner(ctx, id, principal.Name)
	if err != nil {
		return nil, err
	}
	if s.enforcer.FilterByOwnership(principal.Name, card) != authz.Allow {
		return nil, ErrNotFound
	}

	s.views.Set(ctx, card)
	return card, nil
}

// List returns one page of the principal's cards. The raw parameters are
// resolved to a bounded, deterministically ordered query first; malformed
// parameters surface the resolver's error untouched.
func (s *CardService) List(ctx context.Context, principal Principal, raw query.Params) ([]models.Card, error) {
	if s.enforcer.AuthorizeRole(principal.Roles) != authz.Allow {
		return nil, ErrForbidden
	}

	resolved, err := query.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return s.cards.FindByOwner(ctx, principal.Name, resolved)
}

// Update replaces the amount of the principal's card, preserving id and
// owner. Absent and foreign-owned ids both yield ErrNotFound.
func (s *CardService) Update(ctx context.Context, principal Principal, id uint64, amount float64) error {
	if s.enforcer.AuthorizeRole(principal.Roles) != authz.Allow {
		return ErrForbidden
	}

	matched, err := s.cards.UpdateAmount(ctx, id, principal.Name, amount)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}

	s.views.Invalidate(ctx, principal.Name, id)
	log.WithFields(log.Fields{"card_id": id, "owner": principal.Name}).Debug("card updated")
	return nil
}

// Delete removes the principal's card in one scoped statement. Repeating a
// delete yields ErrNotFound.
func (s *CardService) Delete(ctx context.Context, principal Principal, id uint64) error {
	if s.enforcer.AuthorizeRole(principal.Roles) != authz.Allow {
		return ErrForbidden
	}

	matched, err := s.cards.DeleteByIDAndOwner(ctx, id, principal.Name)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}

	s.views.Invalidate(ctx, principal.Name, id)
	log.WithFields(log.Fields{"card_id": id, "owner": principal.Name}).Debug("card deleted")
	return nil
}
