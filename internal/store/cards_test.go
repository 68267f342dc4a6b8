package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/query"
)

func setupCardTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:cards_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.Card{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func seedCards(t *testing.T, db *gorm.DB) {
	t.Helper()
	cards := []models.Card{
		{ID: 99, Amount: 123.45, Owner: "sarah1"},
		{ID: 100, Amount: 1.00, Owner: "sarah1"},
		{ID: 101, Amount: 150.00, Owner: "sarah1"},
		{ID: 102, Amount: 200.00, Owner: "kumar2"},
	}
	for i := range cards {
		if errCreate := db.Create(&cards[i]).Error; errCreate != nil {
			t.Fatalf("seed card %d: %v", cards[i].ID, errCreate)
		}
	}
}

func TestCreateAssignsID(t *testing.T) {
	s := NewGormCardStore(setupCardTestDB(t))
	ctx := context.Background()

	card := &models.Card{Amount: 250.00, Owner: "sarah1"}
	if errCreate := s.Create(ctx, card); errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if card.ID == 0 {
		t.Fatalf("expected generated id")
	}

	second := &models.Card{Amount: 250.00, Owner: "sarah1"}
	if errCreate := s.Create(ctx, second); errCreate != nil {
		t.Fatalf("create second: %v", errCreate)
	}
	if second.ID == card.ID {
		t.Fatalf("ids must be unique, both %d", card.ID)
	}
}

func TestFindByIDAndOwnerScopesToOwner(t *testing.T) {
	db := setupCardTestDB(t)
	seedCards(t, db)
	s := NewGormCardStore(db)
	ctx := context.Background()

	card, err := s.FindByIDAndOwner(ctx, 99, "sarah1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if card == nil || card.Amount != 123.45 {
		t.Fatalf("card = %+v, want amount 123.45", card)
	}

	foreign, err := s.FindByIDAndOwner(ctx, 102, "sarah1")
	if err != nil {
		t.Fatalf("find foreign: %v", err)
	}
	if foreign != nil {
		t.Fatalf("expected nil for foreign card, got %+v", foreign)
	}

	absent, err := s.FindByIDAndOwner(ctx, 1000, "sarah1")
	if err != nil {
		t.Fatalf("find absent: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for absent card, got %+v", absent)
	}
}

func TestFindByOwnerDefaultOrder(t *testing.T) {
	db := setupCardTestDB(t)
	seedCards(t, db)
	s := NewGormCardStore(db)

	resolved, errResolve := query.Resolve(query.Params{})
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	cards, err := s.FindByOwner(context.Background(), "sarah1", resolved)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantIDs := []uint64{100, 99, 101}
	if len(cards) != len(wantIDs) {
		t.Fatalf("got %d cards, want %d", len(cards), len(wantIDs))
	}
	for i, want := range wantIDs {
		if cards[i].ID != want {
			t.Fatalf("cards[%d].ID = %d, want %d", i, cards[i].ID, want)
		}
	}
}

func TestFindByOwnerDescendingSinglePage(t *testing.T) {
	db := setupCardTestDB(t)
	seedCards(t, db)
	s := NewGormCardStore(db)

	resolved, errResolve := query.Resolve(query.Params{Page: "0", Size: "1", Sort: "amount,desc"})
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	cards, err := s.FindByOwner(context.Background(), "sarah1", resolved)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].ID != 101 || cards[0].Amount != 150.00 {
		t.Fatalf("card = %+v, want id 101 amount 150.00", cards[0])
	}
}

func TestFindByOwnerTieBreakByID(t *testing.T) {
	db := setupCardTestDB(t)
	s := NewGormCardStore(db)
	ctx := context.Background()

	for _, id := range []uint64{7, 3, 5} {
		if errCreate := db.Create(&models.Card{ID: id, Amount: 10.00, Owner: "sarah1"}).Error; errCreate != nil {
			t.Fatalf("seed card %d: %v", id, errCreate)
		}
	}

	resolved, errResolve := query.Resolve(query.Params{Sort: "amount,desc"})
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	cards, err := s.FindByOwner(ctx, "sarah1", resolved)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantIDs := []uint64{3, 5, 7}
	for i, want := range wantIDs {
		if cards[i].ID != want {
			t.Fatalf("cards[%d].ID = %d, want %d (id tie-break)", i, cards[i].ID, want)
		}
	}
}

func TestUpdateAmountScopedToOwner(t *testing.T) {
	db := setupCardTestDB(t)
	seedCards(t, db)
	s := NewGormCardStore(db)
	ctx := context.Background()

	matched, err := s.UpdateAmount(ctx, 99, "sarah1", 19.99)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !matched {
		t.Fatalf("expected own card update to match")
	}

	card, errFind := s.FindByIDAndOwner(ctx, 99, "sarah1")
	if errFind != nil {
		t.Fatalf("find: %v", errFind)
	}
	if card.Amount != 19.99 {
		t.Fatalf("amount = %v, want 19.99", card.Amount)
	}
	if card.Owner != "sarah1" {
		t.Fatalf("owner changed to %q", card.Owner)
	}

	matched, err = s.UpdateAmount(ctx, 102, "sarah1", 0.01)
	if err != nil {
		t.Fatalf("update foreign: %v", err)
	}
	if matched {
		t.Fatalf("foreign card update must not match")
	}

	kumarCard, errFind := s.FindByIDAndOwner(ctx, 102, "kumar2")
	if errFind != nil {
		t.Fatalf("find kumar card: %v", errFind)
	}
	if kumarCard.Amount != 200.00 {
		t.Fatalf("foreign card amount changed to %v", kumarCard.Amount)
	}
}

func TestDeleteByIDAndOwnerIsIdempotentlyNotFound(t *testing.T) {
	db := setupCardTestDB(t)
	seedCards(t, db)
	s := NewGormCardStore(db)
	ctx := context.Background()

	matched, err := s.DeleteByIDAndOwner(ctx, 99, "sarah1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !matched {
		t.Fatalf("expected first delete to match")
	}

	matched, err = s.DeleteByIDAndOwner(ctx, 99, "sarah1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if matched {
		t.Fatalf("second delete must not match")
	}

	matched, err = s.DeleteByIDAndOwner(ctx, 102, "sarah1")
	if err != nil {
		t.Fatalf("delete foreign: %v", err)
	}
	if matched {
		t.Fatalf("foreign card delete must not match")
	}
}
