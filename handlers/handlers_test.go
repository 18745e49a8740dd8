package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/auth"
	"github.com/studydeck/studydeck-api/config"
	"github.com/studydeck/studydeck-api/generate"
	"github.com/studydeck/studydeck-api/handlers"
	"github.com/studydeck/studydeck-api/middleware"
	"github.com/studydeck/studydeck-api/models"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/study"
	"github.com/studydeck/studydeck-api/viewcache"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Success     bool                `json:"success"`
	Data        json.RawMessage     `json:"data"`
	Message     string              `json:"message"`
	Error       string              `json:"error"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		DatabaseDriver: "sqlite",
		DatabaseURL:    filepath.Join(t.TempDir(), "test.db"),
		AuthMode:       config.AuthModeLocal,
		JWTSecretKey:   testSecret,
	}

	db, err := config.OpenDatabase(cfg)
	require.NoError(t, err)

	st := store.New(db)
	cache := viewcache.NewMemory()
	acts := actions.New(st, cache, generate.TemplateGenerator{}, zerolog.Nop())
	api := handlers.New(st, acts, cache, zerolog.Nop(), cfg)

	ensureValidToken, err := middleware.EnsureValidToken(cfg, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(api.Handler(ensureValidToken))
	t.Cleanup(srv.Close)
	return srv
}

func tokenFor(t *testing.T, subject string) string {
	t.Helper()
	token, err := auth.CreateToken([]byte(testSecret), subject, time.Hour)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestUnauthenticatedRequestsFailClosed(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/api/decks", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, env.Success)

	status, _ = do(t, srv, http.MethodPost, "/api/decks", "", actions.CreateDeckInput{Name: "x"})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestDeckAndCardLifecycle(t *testing.T) {
	srv := newTestServer(t)
	u := tokenFor(t, "auth0|user-u")
	v := tokenFor(t, "auth0|user-v")

	// U creates a deck.
	status, env := do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{
		"name":        "Spanish",
		"description": "core vocab",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var deck models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &deck))
	require.NotZero(t, deck.ID)
	assert.Equal(t, "Spanish", deck.Name)

	// U's list contains it exactly once.
	status, env = do(t, srv, http.MethodGet, "/api/decks", u, nil)
	require.Equal(t, http.StatusOK, status)
	var decks []models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &decks))
	require.Len(t, decks, 1)

	// V cannot see it, and cannot tell whether it exists.
	deckPath := fmt.Sprintf("/api/decks/%d", deck.ID)
	status, env = do(t, srv, http.MethodGet, deckPath, v, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, actions.MsgNotFound, env.Error)

	status, env = do(t, srv, http.MethodGet, "/api/decks", v, nil)
	require.Equal(t, http.StatusOK, status)
	var vDecks []models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &vDecks))
	require.Empty(t, vDecks)

	// U adds a card; the deck detail view picks it up.
	status, env = do(t, srv, http.MethodPost, deckPath+"/cards", u, map[string]string{
		"front": "hola",
		"back":  "hello",
	})
	require.Equal(t, http.StatusCreated, status)
	var card models.Card
	require.NoError(t, json.Unmarshal(env.Data, &card))

	status, env = do(t, srv, http.MethodGet, deckPath, u, nil)
	require.Equal(t, http.StatusOK, status)
	var detail models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Cards, 1)
	assert.Equal(t, "hola", detail.Cards[0].Front)

	// V cannot touch the card either.
	cardPath := fmt.Sprintf("/api/cards/%d", card.ID)
	status, _ = do(t, srv, http.MethodPut, cardPath, v, map[string]string{"front": "mine"})
	require.Equal(t, http.StatusNotFound, status)

	// U updates then deletes; cascades take the cards with the deck.
	status, env = do(t, srv, http.MethodPut, cardPath, u, map[string]string{"back": "hi"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, "hi", card.Back)

	status, _ = do(t, srv, http.MethodDelete, deckPath, u, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodGet, cardPath, u, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestValidationErrorsCarryFields(t *testing.T) {
	srv := newTestServer(t)
	u := tokenFor(t, "auth0|user-u")

	status, env := do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.Contains(t, env.FieldErrors, "name")

	// Update with no fields at all is rejected, not a silent no-op.
	statusCreate, envCreate := do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{"name": "d"})
	require.Equal(t, http.StatusCreated, statusCreate)
	var deck models.Deck
	require.NoError(t, json.Unmarshal(envCreate.Data, &deck))

	status, env = do(t, srv, http.MethodPut, fmt.Sprintf("/api/decks/%d", deck.ID), u, map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, env.FieldErrors)
}

func TestListReflectsMutationsThroughCache(t *testing.T) {
	srv := newTestServer(t)
	u := tokenFor(t, "auth0|user-u")

	// Prime the cached list view.
	status, _ := do(t, srv, http.MethodGet, "/api/decks", u, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{"name": "new deck"})
	require.Equal(t, http.StatusCreated, status)

	// The mutation invalidated the view; the next read sees the new deck.
	status, env := do(t, srv, http.MethodGet, "/api/decks", u, nil)
	require.Equal(t, http.StatusOK, status)
	var decks []models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &decks))
	require.Len(t, decks, 1)
}

func TestStudyFlow(t *testing.T) {
	srv := newTestServer(t)
	u := tokenFor(t, "auth0|user-u")

	_, env := do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{"name": "Greek"})
	var deck models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &deck))
	deckPath := fmt.Sprintf("/api/decks/%d", deck.ID)

	// Studying an empty deck is refused; the view must send the user
	// elsewhere.
	status, env := do(t, srv, http.MethodGet, deckPath+"/study", u, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)

	for _, c := range [][2]string{{"alpha", "A"}, {"beta", "B"}} {
		status, _ = do(t, srv, http.MethodPost, deckPath+"/cards", u, map[string]string{
			"front": c[0], "back": c[1],
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, env = do(t, srv, http.MethodGet, deckPath+"/study", u, nil)
	require.Equal(t, http.StatusOK, status)
	var snap study.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Equal(t, study.StateActive, snap.State)
	require.Equal(t, 0, snap.Position)
	require.False(t, snap.Revealed)
	require.Len(t, snap.Cards, 2)

	step := func(action string, state study.Snapshot) (int, envelope) {
		return do(t, srv, http.MethodPost, deckPath+"/study/step", u, map[string]interface{}{
			"action": action,
			"state":  state,
		})
	}

	// Advancing before revealing is blocked.
	status, _ = step("advance", snap)
	require.Equal(t, http.StatusConflict, status)

	status, env = step("flip", snap)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.True(t, snap.Revealed)

	status, env = step("advance", snap)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Equal(t, 1, snap.Position)
	require.False(t, snap.Revealed)
	require.Len(t, snap.Visited, 1)

	status, env = step("flip", snap)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))

	status, env = step("advance", snap)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Equal(t, study.StateComplete, snap.State)
	require.Len(t, snap.Visited, 2)

	status, env = step("restart", snap)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Equal(t, study.StateActive, snap.State)
	require.Equal(t, 0, snap.Position)
	require.Empty(t, snap.Visited)
}

func TestGenerateCardsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	u := tokenFor(t, "auth0|user-u")

	_, env := do(t, srv, http.MethodPost, "/api/decks", u, map[string]string{"name": "Biology"})
	var deck models.Deck
	require.NoError(t, json.Unmarshal(env.Data, &deck))

	status, env := do(t, srv, http.MethodPost, fmt.Sprintf("/api/decks/%d/generate", deck.ID), u,
		map[string]interface{}{"topic": "Cells", "count": 4})
	require.Equal(t, http.StatusCreated, status)

	var cards []models.Card
	require.NoError(t, json.Unmarshal(env.Data, &cards))
	require.Len(t, cards, 4)
}

func TestDevTokenEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/api/dev/token", "", map[string]string{
		"subject": "auth0|minted",
	})
	require.Equal(t, http.StatusOK, status)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data["token"])

	// The minted token authenticates real API calls.
	status, _ = do(t, srv, http.MethodGet, "/api/decks", data["token"], nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodPost, "/api/dev/token", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
}
