package actions

import (
	"context"
	"errors"

	"github.com/studydeck/studydeck-api/store"
)

type CreateDeckInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateDeckInput struct {
	ID          uint    `json:"id" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type DeleteDeckInput struct {
	ID uint `json:"id" validate:"required"`
}

func (a *Actions) CreateDeck(ctx context.Context, callerID string, in CreateDeckInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	deck, err := a.store.CreateDeck(ctx, callerID, in.Name, in.Description)
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Msg("create deck failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, deck.ID)
	return created(deck, "deck created")
}

func (a *Actions) UpdateDeck(ctx context.Context, callerID string, in UpdateDeckInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	deck, err := a.store.UpdateDeck(ctx, callerID, in.ID, store.DeckFields{
		Name:        in.Name,
		Description: in.Description,
	})
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("deckId", in.ID).Msg("update deck failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, deck.ID)
	return ok(deck, "deck updated")
}

func (a *Actions) DeleteDeck(ctx context.Context, callerID string, in DeleteDeckInput) Result {
	if fieldErrors := a.checkInput(in); fieldErrors != nil {
		return invalid(fieldErrors)
	}

	err := a.store.DeleteDeck(ctx, callerID, in.ID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		a.log.Error().Err(err).Str("callerId", callerID).Uint("deckId", in.ID).Msg("delete deck failed")
		return internal()
	}

	a.invalidateDeckViews(ctx, callerID, in.ID)
	return ok(nil, "deck deleted")
}
