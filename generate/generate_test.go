package generate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateGenerator(t *testing.T) {
	cards, err := TemplateGenerator{}.GenerateCards(context.Background(), "Rome", 3)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	for _, c := range cards {
		assert.Contains(t, c.Front, "Rome")
		assert.NotEmpty(t, c.Back)
	}

	// Deterministic for identical input.
	again, err := TemplateGenerator{}.GenerateCards(context.Background(), "Rome", 3)
	require.NoError(t, err)
	assert.Equal(t, cards, again)
}

func TestTemplateGeneratorHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TemplateGenerator{Delay: time.Minute}.GenerateCards(ctx, "Rome", 1)
	require.ErrorIs(t, err, context.Canceled)
}
