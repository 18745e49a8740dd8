// Package generate defines the card-content generation collaborator. The
// shipped implementation is a deterministic template; a real inference
// backend can be substituted behind the same interface.
package generate

import (
	"context"
	"fmt"
	"time"
)

type CardContent struct {
	Front string
	Back  string
}

type Generator interface {
	GenerateCards(ctx context.Context, topic string, count int) ([]CardContent, error)
}

// TemplateGenerator produces numbered placeholder cards for a topic. Delay
// simulates backend latency and is zero in tests.
type TemplateGenerator struct {
	Delay time.Duration
}

func (g TemplateGenerator) GenerateCards(ctx context.Context, topic string, count int) ([]CardContent, error) {
	if g.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.Delay):
		}
	}

	cards := make([]CardContent, 0, count)
	for i := 1; i <= count; i++ {
		cards = append(cards, CardContent{
			Front: fmt.Sprintf("%s — key concept %d", topic, i),
			Back:  fmt.Sprintf("A short explanation of concept %d for %s.", i, topic),
		})
	}
	return cards, nil
}
