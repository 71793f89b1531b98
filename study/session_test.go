package study

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfolio/cardfolio-api/models"
)

func TestSession_InitialState(t *testing.T) {
	session := NewSession(makeCards(3), false, nil)

	require.False(t, session.Empty())
	assert.Equal(t, 0, session.Index())
	assert.Equal(t, 3, session.Len())

	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, Front, view.Showing)
	assert.Equal(t, 1, view.CardID)
	assert.Equal(t, 3, view.Total)
}

func TestSession_EmptyDeck(t *testing.T) {
	session := NewSession(nil, false, nil)

	require.True(t, session.Empty())

	_, ok := session.Current()
	assert.False(t, ok)

	// Navigation on an empty session is a no-op
	session.Next()
	session.Previous()
	session.Flip()
	assert.Equal(t, 0, session.Index())
}

func TestSession_NextWrapsCircularly(t *testing.T) {
	session := NewSession(makeCards(4), false, nil)

	for i := 0; i < 4; i++ {
		session.Next()
	}

	assert.Equal(t, 0, session.Index())
}

func TestSession_PreviousWrapsFromFirstToLast(t *testing.T) {
	session := NewSession(makeCards(4), false, nil)

	session.Previous()

	assert.Equal(t, 3, session.Index())
}

func TestSession_NextAndPreviousAreInverse(t *testing.T) {
	session := NewSession(makeCards(5), false, nil)

	for start := 0; start < 5; start++ {
		before := session.Index()
		session.Next()
		session.Previous()
		assert.Equal(t, before, session.Index())

		session.Previous()
		session.Next()
		assert.Equal(t, before, session.Index())

		session.Next()
	}
}

func TestSession_SingleCardDeck(t *testing.T) {
	session := NewSession(makeCards(1), false, nil)

	session.Next()
	assert.Equal(t, 0, session.Index())
	session.Previous()
	assert.Equal(t, 0, session.Index())
}

func TestSession_FlipTogglesOrientationOnly(t *testing.T) {
	session := NewSession(makeCards(3), false, nil)

	session.Flip()
	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, Back, view.Showing)
	assert.Equal(t, 0, view.Index)

	session.Flip()
	view, _ = session.Current()
	assert.Equal(t, Front, view.Showing)
}

func TestSession_NavigationResetsToFront(t *testing.T) {
	session := NewSession(makeCards(3), false, nil)

	session.Flip()
	session.Next()

	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, Front, view.Showing)
}

func TestSession_DefinitionFirstSwapsFaces(t *testing.T) {
	cards := []models.Card{{
		ID:         1,
		Term:       "ephemeral",
		TermURL:    "https://img.example/term.png",
		Definition: "lasting a very short time",
	}}
	session := NewSession(cards, false, nil)

	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "Term", view.Front.Label)
	assert.Equal(t, "ephemeral", view.Front.Text)
	assert.Equal(t, "https://img.example/term.png", view.Front.ImageURL)
	assert.Equal(t, "Definition", view.Back.Label)

	session.SetDefinitionFirst(true)

	view, ok = session.Current()
	require.True(t, ok)
	assert.Equal(t, "Definition", view.Front.Label)
	assert.Equal(t, "lasting a very short time", view.Front.Text)
	assert.Equal(t, "Term", view.Back.Label)
	// Toggling the face contents moves neither the cursor nor the orientation
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, Front, view.Showing)
}

func TestSession_PlaceholderForEmptyFace(t *testing.T) {
	cards := []models.Card{{ID: 1, Term: "bare term"}}
	session := NewSession(cards, false, nil)

	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "bare term", view.Front.Text)
	assert.Equal(t, NoContentPlaceholder, view.Back.Text)
}

func TestSession_ImageOnlyFaceIsNotPlaceholder(t *testing.T) {
	cards := []models.Card{{ID: 1, Term: "t", DefinitionURL: "https://img.example/def.png"}}
	session := NewSession(cards, false, nil)

	view, ok := session.Current()
	require.True(t, ok)
	assert.Empty(t, view.Back.Text)
	assert.Equal(t, "https://img.example/def.png", view.Back.ImageURL)
}

func TestSession_SetShuffledRestartsPass(t *testing.T) {
	session := NewSession(makeCards(6), false, rand.New(rand.NewSource(3)))

	session.Next()
	session.Next()
	session.Flip()
	require.Equal(t, 2, session.Index())

	session.SetShuffled(true)

	assert.True(t, session.Shuffled())
	assert.Equal(t, 0, session.Index())
	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, Front, view.Showing)
	assert.Equal(t, 6, session.Len())
}

func TestSession_SetShuffledFalseRestoresStoredOrder(t *testing.T) {
	session := NewSession(makeCards(5), true, rand.New(rand.NewSource(8)))

	session.SetShuffled(false)

	assert.Equal(t, 0, session.Index())
	for want := 1; want <= 5; want++ {
		view, ok := session.Current()
		require.True(t, ok)
		assert.Equal(t, want, view.CardID)
		session.Next()
	}
}

func TestSession_HandleKey(t *testing.T) {
	session := NewSession(makeCards(3), false, nil)

	assert.True(t, session.HandleKey(KeyNext))
	assert.Equal(t, 1, session.Index())

	assert.True(t, session.HandleKey(KeyPrevious))
	assert.Equal(t, 0, session.Index())

	assert.True(t, session.HandleKey(KeySpace))
	view, _ := session.Current()
	assert.Equal(t, Back, view.Showing)

	assert.True(t, session.HandleKey(KeyEnter))
	view, _ = session.Current()
	assert.Equal(t, Front, view.Showing)

	assert.False(t, session.HandleKey("Escape"))
	assert.Equal(t, 0, session.Index())
}

func TestSession_ClosedSessionRefusesEverything(t *testing.T) {
	session := NewSession(makeCards(3), false, nil)
	session.Next()

	session.Close()

	require.True(t, session.Closed())
	session.Next()
	session.Previous()
	session.Flip()
	session.SetShuffled(true)
	session.SetDefinitionFirst(true)
	assert.Equal(t, 1, session.Index())
	assert.False(t, session.Shuffled())
	assert.False(t, session.DefinitionFirst())

	_, ok := session.Current()
	assert.False(t, ok)
}

func TestSession_SnapshotIgnoresLaterEdits(t *testing.T) {
	cards := makeCards(3)
	session := NewSession(cards, false, nil)

	cards[0].Term = "edited elsewhere"

	view, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "term 1", view.Front.Text)
}
