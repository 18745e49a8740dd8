package actions

import (
	"context"
	"errors"

	"github.com/studydeck/studydeck-api/store"
)

type GenerateCardsInput struct {
	DeckID uint   `json:"deckId" validate:"required"`
	Topic  string `json:"topic" validate:"required,max=200"`
	Count  int    `json:"count" validate:"required,min=1,max=20"`
}

// GenerateCards asks the generation collaborator for card content and
// inserts the batch into the caller's deck.
func (a *Actions) GenerateCards(ctx context.Context, callerID string, in GenerateCardsInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	contents, err := a.gen.GenerateCards(ctx, in.Topic, in.Count)
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Str("topic", in.Topic).Msg("card generation failed")
		return internal()
	}

	pairs := make([][2]string, 0, len(contents))
	for _, c := range contents {
		pairs = append(pairs, [2]string{c.Front, c.Back})
	}

	cards, err := a.store.CreateCards(ctx, callerID, in.DeckID, pairs)
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("deckId", in.DeckID).Msg("saving generated cards failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, in.DeckID)
	return created(cards, "cards generated")
}
