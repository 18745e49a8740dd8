// Package handlers is the HTTP surface. Read endpoints authenticate, consult
// the view cache, and render repository data; mutation endpoints decode the
// request and delegate to the actions layer. No handler touches the database
// directly.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/config"
	"github.com/studydeck/studydeck-api/middleware"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/viewcache"
)

// viewTTL bounds staleness if an invalidation signal is ever lost.
const viewTTL = 5 * time.Minute

type API struct {
	Store   *store.Store
	Actions *actions.Actions
	Cache   viewcache.Cache
	Log     zerolog.Logger
	Cfg     config.Config
}

func New(st *store.Store, acts *actions.Actions, cache viewcache.Cache, log zerolog.Logger, cfg config.Config) *API {
	return &API{Store: st, Actions: acts, Cache: cache, Log: log, Cfg: cfg}
}

// Handler assembles the routed API behind the token middleware. /healthz
// and the local-mode dev token endpoint stay outside the auth wall.
func (api *API) Handler(ensureValidToken func(http.Handler) http.Handler) http.Handler {
	apiMux := http.NewServeMux()

	// Deck
	apiMux.HandleFunc("GET /api/decks", api.ListDecks)
	apiMux.HandleFunc("POST /api/decks", api.CreateDeck)
	apiMux.HandleFunc("GET /api/decks/{deckID}", api.GetDeck)
	apiMux.HandleFunc("PUT /api/decks/{deckID}", api.UpdateDeck)
	apiMux.HandleFunc("DELETE /api/decks/{deckID}", api.DeleteDeck)

	// Card
	apiMux.HandleFunc("GET /api/decks/{deckID}/cards", api.ListCards)
	apiMux.HandleFunc("POST /api/decks/{deckID}/cards", api.CreateCard)
	apiMux.HandleFunc("POST /api/decks/{deckID}/generate", api.GenerateCards)
	apiMux.HandleFunc("GET /api/cards/{cardID}", api.GetCard)
	apiMux.HandleFunc("PUT /api/cards/{cardID}", api.UpdateCard)
	apiMux.HandleFunc("DELETE /api/cards/{cardID}", api.DeleteCard)

	// Study
	apiMux.HandleFunc("GET /api/decks/{deckID}/study", api.StartStudy)
	apiMux.HandleFunc("POST /api/decks/{deckID}/study/step", api.StudyStep)

	root := http.NewServeMux()
	root.Handle("/api/", ensureValidToken(apiMux))
	root.HandleFunc("GET /healthz", api.Health)
	if api.Cfg.AuthMode == config.AuthModeLocal {
		root.HandleFunc("POST /api/dev/token", api.DevToken)
	}

	return root
}

func (api *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.Log.Error().Err(err).Msg("failed to encode response")
	}
}

func (api *API) writeResult(w http.ResponseWriter, res actions.Result) {
	api.writeJSON(w, res.Status(), res)
}

func (api *API) writeFailure(w http.ResponseWriter, status int, message string) {
	api.writeJSON(w, status, actions.Result{Success: false, Error: message})
}

// callerID pulls the authenticated identity off the request, failing closed
// with a 401 envelope when it cannot be resolved.
func (api *API) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.CallerID(r)
	if !ok {
		api.writeFailure(w, http.StatusUnauthorized, "unauthenticated")
		return "", false
	}
	return id, true
}

func pathID(r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
