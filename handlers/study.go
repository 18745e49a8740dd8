package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/study"
)

// GET /api/decks/{deckID}/study
//
// Opens a fresh session over the deck's cards and returns its initial
// snapshot. The client keeps the snapshot; nothing is stored server-side.
func (api *API) StartStudy(w http.ResponseWriter, r *http.Request) {
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
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("deckId", deckID).Msg("start study failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	session, err := study.New(cards)
	if errors.Is(err, study.ErrNoCards) {
		api.writeFailure(w, http.StatusBadRequest, "deck has no cards to study")
		return
	}
	if err != nil {
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	api.writeJSON(w, http.StatusOK, actions.Result{Success: true, Data: session.Snapshot()})
}

type studyStepRequest struct {
	Action string         `json:"action"`
	State  study.Snapshot `json:"state"`
}

// POST /api/decks/{deckID}/study/step
//
// Stateless transition evaluator: resumes the session from the client-held
// snapshot against the deck's current cards, applies one action, and
// returns the next snapshot. Blocked transitions come back as 409 with the
// reason; the client's snapshot stays valid.
func (api *API) StudyStep(w http.ResponseWriter, r *http.Request) {
	callerID, ok := api.callerID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathID(r, "deckID")
	if !ok {
		api.writeFailure(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var req studyStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cards, err := api.Store.ListCards(r.Context(), callerID, deckID)
	if errors.Is(err, store.ErrNotFound) {
		api.writeFailure(w, http.StatusNotFound, actions.MsgNotFound)
		return
	}
	if err != nil {
		api.Log.Error().Err(err).Str("callerId", callerID).Uint("deckId", deckID).Msg("study step failed")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	session, err := study.Resume(cards, req.State)
	if err != nil {
		api.writeFailure(w, http.StatusBadRequest, "study session is out of date")
		return
	}

	switch req.Action {
	case "flip":
		err = session.Flip()
	case "advance":
		err = session.Advance()
	case "retreat":
		err = session.Retreat()
	case "restart":
		session.Restart()
	default:
		api.writeFailure(w, http.StatusBadRequest, "unknown study action")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, study.ErrNotRevealed),
		errors.Is(err, study.ErrAtStart),
		errors.Is(err, study.ErrComplete):
		api.writeFailure(w, http.StatusConflict, err.Error())
		return
	default:
		api.writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	api.writeJSON(w, http.StatusOK, actions.Result{Success: true, Data: session.Snapshot()})
}
