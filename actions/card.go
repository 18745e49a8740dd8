package actions

import (
	"context"
	"errors"

	"github.com/studydeck/studydeck-api/store"
)

type CreateCardInput struct {
	DeckID uint   `json:"deckId" validate:"required"`
	Front  string `json:"front" validate:"required,max=2000"`
	Back   string `json:"back" validate:"required,max=2000"`
}

type UpdateCardInput struct {
	ID    uint    `json:"id" validate:"required"`
	Front *string `json:"front" validate:"omitempty,min=1,max=2000"`
	Back  *string `json:"back" validate:"omitempty,min=1,max=2000"`
}

type DeleteCardInput struct {
	ID uint `json:"id" validate:"required"`
}

func (a *Actions) CreateCard(ctx context.Context, callerID string, in CreateCardInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	card, err := a.store.CreateCard(ctx, callerID, in.DeckID, in.Front, in.Back)
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("deckId", in.DeckID).Msg("create card failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, in.DeckID)
	return created(card, "card created")
}

func (a *Actions) UpdateCard(ctx context.Context, callerID string, in UpdateCardInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	card, err := a.store.UpdateCard(ctx, callerID, in.ID, store.CardFields{
		Front: in.Front,
		Back:  in.Back,
	})
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("cardId", in.ID).Msg("update card failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, card.DeckID)
	return ok(card, "card updated")
}

func (a *Actions) DeleteCard(ctx context.Context, callerID string, in DeleteCardInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	// Resolve the card first so the parent deck's views can be invalidated
	// after the delete. Ownership is still enforced by the delete itself.
	card, err := a.store.GetCard(ctx, callerID, in.ID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("cardId", in.ID).Msg("delete card lookup failed")
		return internal()
	}

	err = a.store.DeleteCard(ctx, callerID, in.ID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("cardId", in.ID).Msg("delete card failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, card.DeckID)
	return ok(nil, "card deleted")
}
