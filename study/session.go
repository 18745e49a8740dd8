// Package study implements the sequential review session run over a deck's
// cards. A session is transient: it lives for one study view and is never
// persisted. Callers that need to spread a session across requests hold the
// Snapshot themselves and resume from it.
package study

import (
	"errors"

	"github.com/studydeck/studydeck-api/models"
)

var (
	ErrNoCards     = errors.New("study: session requires at least one card")
	ErrNotRevealed = errors.New("study: reveal the back before advancing")
	ErrAtStart     = errors.New("study: already at the first card")
	ErrComplete    = errors.New("study: session is complete")
	ErrBadSnapshot = errors.New("study: snapshot does not match the card list")
)

// State is the session's lifecycle phase.
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

// Session walks an ordered card list one card at a time. The back of the
// current card must be revealed before moving on.
type Session struct {
	cards    []models.Card
	position int
	revealed bool
	state    State
	visited  map[uint]struct{}
}

// New starts a session at the first card, back hidden. The card list must
// be non-empty; the hosting view is responsible for steering the user away
// from empty decks.
func New(cards []models.Card) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return &Session{
		cards:   cards,
		state:   StateActive,
		visited: make(map[uint]struct{}),
	}, nil
}

// Flip toggles visibility of the current card's back.
func (s *Session) Flip() error {
	if s.state == StateComplete {
		return ErrComplete
	}
	s.revealed = !s.revealed
	return nil
}

// Advance moves to the next card, or to Complete from the last one. It is
// only legal once the current card's back has been revealed; the card just
// left is recorded as visited.
func (s *Session) Advance() error {
	if s.state == StateComplete {
		return ErrComplete
	}
	if !s.revealed {
		return ErrNotRevealed
	}
	s.visited[s.cards[s.position].ID] = struct{}{}
	if s.position == len(s.cards)-1 {
		s.state = StateComplete
		return nil
	}
	s.position++
	s.revealed = false
	return nil
}

// Retreat steps back one card with the back hidden. The visited set is left
// untouched.
func (s *Session) Retreat() error {
	if s.state == StateComplete {
		return ErrComplete
	}
	if s.position == 0 {
		return ErrAtStart
	}
	s.position--
	s.revealed = false
	return nil
}

// Restart returns to the first card with nothing revealed and nothing
// visited. Legal from any state.
func (s *Session) Restart() {
	s.position = 0
	s.revealed = false
	s.state = StateActive
	s.visited = make(map[uint]struct{})
}

// Current returns the card under review. ok is false once the session is
// complete.
func (s *Session) Current() (models.Card, bool) {
	if s.state == StateComplete {
		return models.Card{}, false
	}
	return s.cards[s.position], true
}

func (s *Session) State() State   { return s.state }
func (s *Session) Position() int  { return s.position }
func (s *Session) Revealed() bool { return s.revealed }

// Visited returns the ids of cards whose review was completed, in deck
// order.
func (s *Session) Visited() []uint {
	ids := make([]uint, 0, len(s.visited))
	for _, c := range s.cards {
		if _, ok := s.visited[c.ID]; ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Snapshot is the wire form of a session. Clients hold it between requests
// and send it back with the next transition; nothing is kept server-side.
type Snapshot struct {
	State    State         `json:"state"`
	Position int           `json:"position"`
	Revealed bool          `json:"revealed"`
	Visited  []uint        `json:"visited"`
	Cards    []models.Card `json:"cards"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:    s.state,
		Position: s.position,
		Revealed: s.revealed,
		Visited:  s.Visited(),
		Cards:    s.cards,
	}
}

// Resume rebuilds a session over cards from a client-held snapshot. The
// snapshot's position and visited ids are checked against the card list so
// a stale or tampered snapshot cannot index out of range or mark foreign
// cards as visited.
func Resume(cards []models.Card, snap Snapshot) (*Session, error) {
	s, err := New(cards)
	if err != nil {
		return nil, err
	}
	switch snap.State {
	case StateActive:
		if snap.Position < 0 || snap.Position >= len(cards) {
			return nil, ErrBadSnapshot
		}
		s.position = snap.Position
		s.revealed = snap.Revealed
	case StateComplete:
		s.state = StateComplete
		s.position = len(cards) - 1
	default:
		return nil, ErrBadSnapshot
	}

	known := make(map[uint]struct{}, len(cards))
	for _, c := range cards {
		known[c.ID] = struct{}{}
	}
	for _, id := range snap.Visited {
		if _, ok := known[id]; !ok {
			return nil, ErrBadSnapshot
		}
		s.visited[id] = struct{}{}
	}
	return s, nil
}
