// Package store is the only path to persistent storage. Every operation
// takes the acting user's identity and scopes reads and writes to records
// that identity transitively owns.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studydeck/studydeck-api/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DeckFields and CardFields carry partial updates. Only non-nil fields are
// written; validation upstream guarantees at least one is set.
type DeckFields struct {
	Name        *string
	Description *string
}

type CardFields struct {
	Front *string
	Back  *string
}

// ownedDecks returns a subquery selecting the ids of all decks owned by
// ownerID. Card operations embed it in their match condition so the
// ownership check and the write are a single statement.
func (s *Store) ownedDecks(ownerID string) *gorm.DB {
	return s.db.Model(&models.Deck{}).Select("id").Where("owner_id = ?", ownerID)
}

// ListDecks returns the caller's decks, most recently updated first.
func (s *Store) ListDecks(ctx context.Context, ownerID string) ([]models.Deck, error) {
	var decks []models.Deck
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, id DESC").
		Find(&decks).Error
	if err != nil {
		return nil, err
	}
	return decks, nil
}

func (s *Store) GetDeck(ctx context.Context, ownerID string, deckID uint) (*models.Deck, error) {
	var deck models.Deck
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", deckID, ownerID).
		First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// CreateDeck stamps OwnerID from the authenticated caller; payloads never
// carry an owner.
func (s *Store) CreateDeck(ctx context.Context, ownerID, name, description string) (*models.Deck, error) {
	deck := models.Deck{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

// UpdateDeck applies the given fields with the ownership predicate inside
// the write condition. Zero rows affected means the deck is absent or not
// the caller's; both surface as ErrNotFound.
func (s *Store) UpdateDeck(ctx context.Context, ownerID string, deckID uint, fields DeckFields) (*models.Deck, error) {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	res := s.db.WithContext(ctx).
		Model(&models.Deck{}).
		Where("id = ? AND owner_id = ?", deckID, ownerID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetDeck(ctx, ownerID, deckID)
}

// DeleteDeck removes the deck and all of its cards in one transaction.
func (s *Store) DeleteDeck(ctx context.Context, ownerID string, deckID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", deckID, ownerID).Delete(&models.Deck{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("deck_id = ?", deckID).Delete(&models.Card{}).Error
	})
}

// ListCards re-verifies deck ownership itself rather than trusting the
// caller to have checked, then returns the cards in creation order.
func (s *Store) ListCards(ctx context.Context, ownerID string, deckID uint) ([]models.Card, error) {
	if _, err := s.GetDeck(ctx, ownerID, deckID); err != nil {
		return nil, err
	}
	var cards []models.Card
	err := s.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("created_at ASC, id ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) GetCard(ctx context.Context, ownerID string, cardID uint) (*models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).
		Where("id = ? AND deck_id IN (?)", cardID, s.ownedDecks(ownerID)).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCard verifies deck ownership before the insert; an absent or
// foreign deck fails with ErrNotFound.
func (s *Store) CreateCard(ctx context.Context, ownerID string, deckID uint, front, back string) (*models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deck models.Deck
		err := tx.Where("id = ? AND owner_id = ?", deckID, ownerID).First(&deck).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		card = models.Card{DeckID: deckID, Front: front, Back: back}
		return tx.Create(&card).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCards inserts a batch of cards into one deck atomically. Used by
// the generation action.
func (s *Store) CreateCards(ctx context.Context, ownerID string, deckID uint, contents [][2]string) ([]models.Card, error) {
	cards := make([]models.Card, 0, len(contents))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deck models.Deck
		err := tx.Where("id = ? AND owner_id = ?", deckID, ownerID).First(&deck).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		for _, c := range contents {
			cards = append(cards, models.Card{DeckID: deckID, Front: c[0], Back: c[1]})
		}
		return tx.Create(&cards).Error
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) UpdateCard(ctx context.Context, ownerID string, cardID uint, fields CardFields) (*models.Card, error) {
	updates := map[string]interface{}{}
	if fields.Front != nil {
		updates["front"] = *fields.Front
	}
	if fields.Back != nil {
		updates["back"] = *fields.Back
	}

	res := s.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND deck_id IN (?)", cardID, s.ownedDecks(ownerID)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetCard(ctx, ownerID, cardID)
}

func (s *Store) DeleteCard(ctx context.Context, ownerID string, cardID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND deck_id IN (?)", cardID, s.ownedDecks(ownerID)).
		Delete(&models.Card{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
