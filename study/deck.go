// Package study holds the in-memory core of the flip-card viewer: deck
// assembly and the session state machine. Nothing here touches the database
// or suspends; sessions work on a snapshot of the set taken when the viewer
// opened.
package study

import (
	"math/rand"
	"time"

	"github.com/cardfolio/cardfolio-api/models"
)

// BuildDeck materializes the card sequence for one study pass. Without
// shuffle the stored order is kept; with shuffle the copy is permuted with a
// Fisher-Yates backward swap so every ordering is equally likely. The input
// slice is never mutated.
func BuildDeck(cards []models.Card, shuffled bool, rng *rand.Rand) []models.Card {
	deck := make([]models.Card, len(cards))
	copy(deck, cards)

	if !shuffled {
		return deck
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}
