package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/models"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/viewcache"
)

// GET /api/decks
func (api *API) ListDecks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}

	key := viewcache.DeckListKey(callerID)
	if cached, hit := api.Cache.Get(r.Context(), key); hit {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(cached)
		return
	}

	decks, err := api.Store.ListDecks(r.Context(), callerID)
	if err != nil {
		api.Log.Error().Err(err).Str("callerId", callerID).Msg("list decks failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}
	if decks == nil {
		decks = []models.Deck{}
	}

	body, err := json.Marshal(actions.Result{Success: true, Data: decks})
	if err != nil {
		api.Log.Error().Err(err).Msg("failed to encode deck list")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}
	api.Cache.Set(r.Context(), key, body, viewTTL)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// GET /api/decks/{deckID}
func (api *API) GetDeck(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	key := viewcache.DeckKey(callerID, deckID)
	if cached, hit := api.Cache.Get(r.Context(), key); hit {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(cached)
		return
	}

	deck, err := api.Store.GetDeck(r.Context(), callerID, deckID)
	if errors.Is(err, store.ErrNotFound) {
		api.writeFailure(w, http.StatusNotFound, actions.MsgNotFound)
		return
	}
	if err != nil {
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("deckId", deckID).Msg("get deck failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	cards, err := api.Store.ListCards(r.Context(), callerID, deckID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("deckId", deckID).Msg("list cards failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}
	deck.Cards = cards

	body, err := json.Marshal(actions.Result{Success: true, Data: deck})
	if err != nil {
		api.Log.Error().Err(err).Msg("failed to encode deck")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}
	api.Cache.Set(r.Context(), key, body, viewTTL)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// POST /api/decks
func (api *API) CreateDeck(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}

	var in actions.CreateDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	api.writeResult(w, api.Actions.CreateDeck(r.Context(), callerID, in))
}

// PUT /api/decks/{deckID}
func (api *API) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var in actions.UpdateDeckInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ID = deckID

	api.writeResult(w, api.Actions.UpdateDeck(r.Context(), callerID, in))
}

// DELETE /api/decks/{deckID}
func (api *API) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	api.writeResult(w, api.Actions.DeleteDeck(r.Context(), callerID, actions.DeleteDeckInput{ID: deckID}))
}
