// Package actions holds the validated entry points for every mutation.
// Each action resolves to exactly one repository operation: it validates
// the raw input, performs the write as the given caller, signals the view
// cache, and returns a uniform Result envelope. Expected failures never
// escape as errors.
package actions

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studydeck/studydeck-api/generate"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/viewcache"
)

type Actions struct {
	store    *store.Store
	cache    viewcache.Cache
	gen      generate.Generator
	log      zerolog.Logger
	validate *validator.Validate
}

func New(st *store.Store, cache viewcache.Cache, gen generate.Generator, log zerolog.Logger) *Actions {
	return &Actions{
		store:    st,
		cache:    cache,
		gen:      gen,
		log:      log,
		validate: newValidator(),
	}
}

// invalidateDeckViews marks the owner's deck list and the affected deck's
// detail view stale after a successful write.
func (a *Actions) invalidateDeckViews(ctx context.Context, ownerID string, deckID uint) {
	a.cache.Invalidate(ctx,
		viewcache.DeckListKey(ownerID),
		viewcache.DeckKey(ownerID, deckID),
	)
}
