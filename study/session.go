package study

import (
	"math/rand"

	"github.com/cardfolio/cardfolio-api/models"
)

// Orientation is which face of the current card is showing.
type Orientation string

const (
	Front Orientation = "front"
	Back  Orientation = "back"
)

// NoContentPlaceholder is rendered for a face that has neither text nor an
// image. The viewer shows it verbatim instead of an empty region.
const NoContentPlaceholder = "(No content available)"

// Keyboard bindings the viewer honors. They are part of the session contract,
// not a UI detail.
const (
	KeyPrevious = "ArrowLeft"
	KeyNext     = "ArrowRight"
	KeySpace    = " "
	KeyEnter    = "Enter"
)

// Face is one side of a rendered card.
type Face struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CardView is what the viewer renders for the current deck position.
type CardView struct {
	CardID  int         `json:"cardId"`
	Index   int         `json:"index"`
	Total   int         `json:"total"`
	Showing Orientation `json:"showing"`
	Front   Face        `json:"front"`
	Back    Face        `json:"back"`
}

// Session drives the flip-card viewer for one open set. It owns a snapshot of
// the set's cards taken when the viewer opened; edits made elsewhere are not
// reflected until a new session starts. Sessions are not safe for concurrent
// use and are not meant to be: one viewer, one session.
type Session struct {
	cards []models.Card
	deck  []models.Card
	rng   *rand.Rand

	index           int
	orientation     Orientation
	definitionFirst bool
	shuffled        bool
	closed          bool
}

// NewSession opens a session over a snapshot of cards. With shuffled set the
// initial deck is already permuted; rng may be nil for a time-seeded source.
func NewSession(cards []models.Card, shuffled bool, rng *rand.Rand) *Session {
	snapshot := make([]models.Card, len(cards))
	copy(snapshot, cards)

	return &Session{
		cards:       snapshot,
		deck:        BuildDeck(snapshot, shuffled, rng),
		rng:         rng,
		orientation: Front,
		shuffled:    shuffled,
	}
}

// Empty reports whether the deck has no cards.
func (s *Session) Empty() bool { return len(s.deck) == 0 }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Len returns the deck length.
func (s *Session) Len() int { return len(s.deck) }

// Index returns the current deck position.
func (s *Session) Index() int { return s.index }

// Shuffled reports the shuffle toggle.
func (s *Session) Shuffled() bool { return s.shuffled }

// DefinitionFirst reports the definition-first toggle.
func (s *Session) DefinitionFirst() bool { return s.definitionFirst }

// Next advances to the following card, wrapping past the end back to the
// first. Showing the new card always starts on the front face.
func (s *Session) Next() {
	if s.closed || s.Empty() {
		return
	}
	s.index = (s.index + 1) % len(s.deck)
	s.orientation = Front
}

// Previous moves to the preceding card, wrapping from the first card to the
// last.
func (s *Session) Previous() {
	if s.closed || s.Empty() {
		return
	}
	s.index = (s.index - 1 + len(s.deck)) % len(s.deck)
	s.orientation = Front
}

// Flip turns the current card over. The index never moves.
func (s *Session) Flip() {
	if s.closed || s.Empty() {
		return
	}
	if s.orientation == Front {
		s.orientation = Back
	} else {
		s.orientation = Front
	}
}

// SetDefinitionFirst changes which logical side counts as the front of every
// card. The position and the showing face stay where they are; only the
// content on each face changes.
func (s *Session) SetDefinitionFirst(v bool) {
	if s.closed {
		return
	}
	s.definitionFirst = v
}

// SetShuffled rebuilds the deck from the snapshot and restarts the pass:
// index back to 0, front face showing.
func (s *Session) SetShuffled(v bool) {
	if s.closed {
		return
	}
	s.shuffled = v
	s.deck = BuildDeck(s.cards, v, s.rng)
	s.index = 0
	s.orientation = Front
}

// Close ends the session. Every later operation is a no-op.
func (s *Session) Close() {
	s.closed = true
}

// HandleKey maps a keyboard event onto a session operation and reports
// whether the key was recognized.
func (s *Session) HandleKey(key string) bool {
	switch key {
	case KeyPrevious:
		s.Previous()
	case KeyNext:
		s.Next()
	case KeySpace, KeyEnter:
		s.Flip()
	default:
		return false
	}
	return true
}

// Current resolves the view for the current card. The second return is false
// when the session is empty or closed.
func (s *Session) Current() (CardView, bool) {
	if s.closed || s.Empty() {
		return CardView{}, false
	}

	card := s.deck[s.index]
	term := Face{Label: "Term", Text: card.Term, ImageURL: card.TermURL}
	definition := Face{Label: "Definition", Text: card.Definition, ImageURL: card.DefinitionURL}

	front, back := term, definition
	if s.definitionFirst {
		front, back = definition, term
	}

	return CardView{
		CardID:  card.ID,
		Index:   s.index,
		Total:   len(s.deck),
		Showing: s.orientation,
		Front:   fillPlaceholder(front),
		Back:    fillPlaceholder(back),
	}, true
}

func fillPlaceholder(f Face) Face {
	if f.Text == "" && f.ImageURL == "" {
		f.Text = NoContentPlaceholder
	}
	return f
}
