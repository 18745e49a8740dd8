package models

import (
	"time"
)

// Deck is a named, user-owned collection of flashcards. OwnerID is the
// external identity issued by the auth provider; it is stamped server-side
// at creation and never taken from a request payload.
type Deck struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     string `gorm:"not null;size:128;index:idx_decks_owner_updated,priority:1" json:"-"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `gorm:"size:1000" json:"description"`

	Cards []Card `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index:idx_decks_owner_updated,priority:2" json:"updatedAt"`
}
