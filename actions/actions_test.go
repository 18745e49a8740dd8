package actions

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studydeck/studydeck-api/generate"
	"github.com/studydeck/studydeck-api/models"
	"github.com/studydeck/studydeck-api/store"
	"github.com/studydeck/studydeck-api/viewcache"
)

func newTestActions(t *testing.T) (*Actions, *store.Store, *viewcache.MemoryCache) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Deck{}, &models.Card{}))

	st := store.New(db)
	cache := viewcache.NewMemory()
	acts := New(st, cache, generate.TemplateGenerator{}, zerolog.Nop())
	return acts, st, cache
}

func TestCreateDeckValidation(t *testing.T) {
	ctx := context.Background()
	acts, _, _ := newTestActions(t)

	res := acts.CreateDeck(ctx, "u", CreateDeckInput{Name: ""})
	require.False(t, res.Success)
	require.Equal(t, 400, res.Status())
	require.Contains(t, res.FieldErrors, "name")

	res = acts.CreateDeck(ctx, "u", CreateDeckInput{Name: strings.Repeat("x", 256)})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "name")

	res = acts.CreateDeck(ctx, "u", CreateDeckInput{Name: strings.Repeat("x", 255)})
	require.True(t, res.Success)
	require.Equal(t, 201, res.Status())

	deck, ok := res.Data.(*models.Deck)
	require.True(t, ok)
	assert.Equal(t, "u", deck.OwnerID)
}

func TestCreateDeckDescriptionBound(t *testing.T) {
	ctx := context.Background()
	acts, _, _ := newTestActions(t)

	res := acts.CreateDeck(ctx, "u", CreateDeckInput{
		Name:        "ok",
		Description: strings.Repeat("d", 1001),
	})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "description")
}

func TestUpdateDeckRequiresAField(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "original", "")
	require.NoError(t, err)

	// A payload with nothing to change is invalid input, even with a
	// valid id.
	res := acts.UpdateDeck(ctx, "u", UpdateDeckInput{ID: deck.ID})
	require.False(t, res.Success)
	require.Equal(t, 400, res.Status())
	require.Contains(t, res.FieldErrors, "name")
	require.Contains(t, res.FieldErrors["name"][0], "at least one field")

	got, err := st.GetDeck(ctx, "u", deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name)
}

func TestUpdateCardRequiresAField(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "d", "")
	require.NoError(t, err)
	card, err := st.CreateCard(ctx, "u", deck.ID, "f", "b")
	require.NoError(t, err)

	res := acts.UpdateCard(ctx, "u", UpdateCardInput{ID: card.ID})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "front")
}

func TestNotFoundAndDeniedCollapse(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "owner", "private", "")
	require.NoError(t, err)

	name := "n"
	missing := acts.UpdateDeck(ctx, "owner", UpdateDeckInput{ID: deck.ID + 1000, Name: &name})
	denied := acts.UpdateDeck(ctx, "stranger", UpdateDeckInput{ID: deck.ID, Name: &name})

	// Identical outward result for "doesn't exist" and "not yours".
	require.Equal(t, missing, denied)
	require.Equal(t, 404, denied.Status())
	require.Equal(t, MsgNotFound, denied.Error)
}

func TestCreateCardValidation(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "d", "")
	require.NoError(t, err)

	res := acts.CreateCard(ctx, "u", CreateCardInput{DeckID: deck.ID, Front: "", Back: "b"})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "front")

	res = acts.CreateCard(ctx, "u", CreateCardInput{DeckID: deck.ID, Front: strings.Repeat("f", 2001), Back: "b"})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "front")

	res = acts.CreateCard(ctx, "u", CreateCardInput{DeckID: deck.ID, Front: "f", Back: "b"})
	require.True(t, res.Success)
}

func TestDeleteDeckCascade(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "d", "")
	require.NoError(t, err)
	card, err := st.CreateCard(ctx, "u", deck.ID, "f", "b")
	require.NoError(t, err)

	res := acts.DeleteDeck(ctx, "u", DeleteDeckInput{ID: deck.ID})
	require.True(t, res.Success)

	_, err = st.GetCard(ctx, "u", card.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMutationInvalidatesViews(t *testing.T) {
	ctx := context.Background()
	acts, st, cache := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "cached", "")
	require.NoError(t, err)

	listKey := viewcache.DeckListKey("u")
	deckKey := viewcache.DeckKey("u", deck.ID)
	cache.Set(ctx, listKey, []byte("stale-list"), time.Minute)
	cache.Set(ctx, deckKey, []byte("stale-deck"), time.Minute)

	name := "fresh"
	res := acts.UpdateDeck(ctx, "u", UpdateDeckInput{ID: deck.ID, Name: &name})
	require.True(t, res.Success)

	_, hit := cache.Get(ctx, listKey)
	assert.False(t, hit)
	_, hit = cache.Get(ctx, deckKey)
	assert.False(t, hit)
}

func TestGenerateCards(t *testing.T) {
	ctx := context.Background()
	acts, st, _ := newTestActions(t)

	deck, err := st.CreateDeck(ctx, "u", "topics", "")
	require.NoError(t, err)

	res := acts.GenerateCards(ctx, "u", GenerateCardsInput{DeckID: deck.ID, Topic: "Photosynthesis", Count: 3})
	require.True(t, res.Success)
	require.Equal(t, 201, res.Status())

	cards, err := st.ListCards(ctx, "u", deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Contains(t, cards[0].Front, "Photosynthesis")

	res = acts.GenerateCards(ctx, "u", GenerateCardsInput{DeckID: deck.ID, Topic: "x", Count: 0})
	require.False(t, res.Success)
	require.Contains(t, res.FieldErrors, "count")

	res = acts.GenerateCards(ctx, "stranger", GenerateCardsInput{DeckID: deck.ID, Topic: "x", Count: 1})
	require.False(t, res.Success)
	require.Equal(t, 404, res.Status())
}
