package poker

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, deck.Remaining())

	seen := make(map[string]bool)
	for _, c := range deck.Cards() {
		seen[c.Code()] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDeterministicWithSameSeed(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(42)))
	d2 := NewDeck(rand.New(rand.NewSource(42)))
	if !cmp.Equal(codes(d1.Cards()), codes(d2.Cards())) {
		t.Errorf("decks with the same seed differ: %s", cmp.Diff(codes(d1.Cards()), codes(d2.Cards())))
	}
}

func TestDeckDraw(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(7)))
	top := codes(deck.Cards()[:8])
	hand := deck.Draw(8)
	assert.Equal(t, top, codes(hand))
	assert.Equal(t, 44, deck.Remaining())

	rest := deck.Draw(100)
	assert.Len(t, rest, 44)
	assert.True(t, deck.Empty())
	assert.Empty(t, deck.Draw(1))
}

func TestDeckStack(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(3)))
	deck.Stack(NewCards("2s", "2h", "2c"))
	assert.Equal(t, 52, deck.Remaining())
	assert.Equal(t, []string{"2s", "2h", "2c"}, codes(deck.Draw(3)))
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("Td")
	require.NoError(t, err)
	assert.Equal(t, Ten, c.Rank)
	assert.Equal(t, Diamonds, c.Suit)
	assert.Equal(t, "10 of Diamonds", c.String())

	_, err = ParseCard("1x")
	assert.Error(t, err)
	_, err = ParseCard("Tdd")
	assert.Error(t, err)
}

func TestRankNextWraps(t *testing.T) {
	assert.Equal(t, Three, Two.Next())
	assert.Equal(t, Ace, King.Next())
	assert.Equal(t, Two, Ace.Next())
}

func TestCardStringWithModifiers(t *testing.T) {
	c := NewCard("Ah")
	c.Enhancement = EnhancementGlass
	c.Edition = EditionFoil
	c.Seal = SealGold
	assert.Equal(t, "Ace of Hearts (Glass, Foil, Gold Seal)", c.String())
}

func TestCardTextRoundTrip(t *testing.T) {
	for _, r := range AllRanks {
		b, err := r.MarshalText()
		require.NoError(t, err)
		var parsed Rank
		require.NoError(t, parsed.UnmarshalText(b))
		assert.Equal(t, r, parsed)
	}
	for _, s := range AllSuits {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var parsed Suit
		require.NoError(t, parsed.UnmarshalText(b))
		assert.Equal(t, s, parsed)
	}
}

func TestSuitSortOrderFollowsNames(t *testing.T) {
	suits := append([]Suit(nil), AllSuits...)
	sort.Slice(suits, func(i, j int) bool { return suits[i].SortOrder() < suits[j].SortOrder() })
	names := make([]string, len(suits))
	for i, s := range suits {
		names[i] = s.String()
	}
	assert.True(t, sort.StringsAreSorted(names), "suits sort as %v", names)
	assert.Equal(t, []Suit{Clubs, Diamonds, Hearts, Spades}, suits)
}
