package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/models"
	"github.com/studydeck/studydeck-api/store"
)

// GET /api/decks/{deckID}/cards
func (api *API) ListCards(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	cards, err := api.Store.ListCards(r.Context(), callerID, deckID)
	if errors.Is(err, store.ErrNotFound) {
		api.writeFailure(w, http.StatusNotFound, actions.MsgNotFound)
		return
	}
	if err != nil {
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("deckId", deckID).Msg("list cards failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}

	api.writeJSON(w, http.StatusOK, actions.Result{Success: true, Data: cards})
}

// GET /api/cards/{cardID}
func (api *API) GetCard(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(r, "cardID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := api.Store.GetCard(r.Context(), callerID, cardID)
	if errors.Is(err, store.ErrNotFound) {
		api.writeFailure(w, http.StatusNotFound, actions.MsgNotFound)
		return
	}
	if err != nil {
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("cardId", cardID).Msg("get card failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	api.writeJSON(w, http.StatusOK, actions.Result{Success: true, Data: card})
}

// POST /api/decks/{deckID}/cards
func (api *API) CreateCard(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var in actions.CreateCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.DeckID = deckID

	api.writeResult(w, api.Actions.CreateCard(r.Context(), callerID, in))
}

// POST /api/decks/{deckID}/generate
func (api *API) GenerateCards(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var in actions.GenerateCardsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.DeckID = deckID

	api.writeResult(w, api.Actions.GenerateCards(r.Context(), callerID, in))
}

// PUT /api/cards/{cardID}
func (api *API) UpdateCard(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(r, "cardID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var in actions.UpdateCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ID = cardID

	api.writeResult(w, api.Actions.UpdateCard(r.Context(), callerID, in))
}

// DELETE /api/cards/{cardID}
func (api *API) DeleteCard(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(r, "cardID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid card id")
		return
	}

	api.writeResult(w, api.Actions.DeleteCard(r.Context(), callerID, actions.DeleteCardInput{ID: cardID}))
}
