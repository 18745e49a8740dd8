package models

import (
	"time"
)

// Card is a front/back text pair belonging to exactly one Deck. Cards carry
// no owner field of their own; access is always resolved through the parent
// deck's OwnerID.
type Card struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	DeckID uint   `gorm:"not null;index:idx_cards_deck_created,priority:1" json:"deckId"`
	Front  string `gorm:"not null;size:2000" json:"front"`
	Back   string `gorm:"not null;size:2000" json:"back"`

	CreatedAt time.Time `gorm:"index:idx_cards_deck_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
