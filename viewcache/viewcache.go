// Package viewcache caches rendered view payloads (the deck list and deck
// detail responses) per owner and carries the invalidation signal mutations
// emit. Cache failures are never fatal: a miss just means the next read
// goes to the repository.
package viewcache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the view-payload cache mutations invalidate and read paths
// consult before hitting the repository.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// DeckListKey is the view key for a user's deck list.
func DeckListKey(ownerID string) string {
	return fmt.Sprintf("views:%s:decks", ownerID)
}

// DeckKey is the view key for a single deck's detail view.
func DeckKey(ownerID string, deckID uint) string {
	return fmt.Sprintf("views:%s:decks:%d", ownerID, deckID)
}
