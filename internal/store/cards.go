// Package store persists cash cards. Every read and write that targets a
// single record is scoped to (id, owner) in one statement, so the database's
// per-row atomicity is the only concurrency guard the service needs.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/query"
)

// CardStore defines the persistence operations used by the card service.
type CardStore interface {
	// Create inserts a card and fills in its generated id.
	Create(ctx context.Context, card *models.Card) error
	// FindByIDAndOwner returns the card matching both id and owner, or nil
	// when no such card exists.
	FindByIDAndOwner(ctx context.Context, id uint64, owner string) (*models.Card, error)
	// FindByOwner returns one page of the owner's cards in the resolved order.
	FindByOwner(ctx context.Context, owner string, q query.Resolved) ([]models.Card, error)
	// UpdateAmount replaces the amount of the card matching (id, owner) and
	// reports whether a row matched.
	UpdateAmount(ctx context.Context, id uint64, owner string, amount float64) (bool, error)
	// DeleteByIDAndOwner deletes the card matching (id, owner) and reports
	// whether a row matched.
	DeleteByIDAndOwner(ctx context.Context, id uint64, owner string) (bool, error)
}

// GormCardStore is the GORM-backed CardStore.
type GormCardStore struct {
	db *gorm.DB
}

// NewGormCardStore constructs a card store over the given connection.
func NewGormCardStore(db *gorm.DB) *GormCardStore {
	return &GormCardStore{db: db}
}

// Create inserts a card and fills in its generated id.
func (s *GormCardStore) Create(ctx context.Context, card *models.Card) error {
	if errCreate := s.db.WithContext(ctx).Create(card).Error; errCreate != nil {
		return fmt.Errorf("store: create card: %w", errCreate)
	}
	return nil
}

// FindByIDAndOwner returns the card matching both id and owner, or nil.
func (s *GormCardStore) FindByIDAndOwner(ctx context.Context, id uint64, owner string) (*models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		First(&card).Error
	switch {
	case err == nil:
		return &card, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("store: find card: %w", err)
	}
}

// FindByOwner returns one page of the owner's cards in the resolved order.
func (s *GormCardStore) FindByOwner(ctx context.Context, owner string, q query.Resolved) ([]models.Card, error) {
	cards := make([]models.Card, 0, q.Limit)
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order(q.OrderClause()).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("store: list cards: %w", err)
	}
	return cards, nil
}

// UpdateAmount replaces the amount of the card matching (id, owner).
func (s *GormCardStore) UpdateAmount(ctx context.Context, id uint64, owner string, amount float64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND owner = ?", id, owner).
		Update("amount", amount)
	if result.Error != nil {
		return false, fmt.Errorf("store: update card: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByIDAndOwner deletes the card matching (id, owner).
func (s *GormCardStore) DeleteByIDAndOwner(ctx context.Context, id uint64, owner string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&models.Card{})
	if result.Error != nil {
		return false, fmt.Errorf("store: delete card: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
