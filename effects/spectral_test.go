package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
)

func enhanced(hand []*poker.Card) []*poker.Card {
	var cards []*poker.Card
	for _, c := range hand {
		if c.Enhancement != poker.EnhancementNone {
			cards = append(cards, c)
		}
	}
	return cards
}

func TestReplaceWithEnhancedCards(t *testing.T) {
	tests := []struct {
		name  string
		added int
		ranks []poker.Rank
	}{
		{"Familiar", 3, poker.FaceRanks},
		{"Grim", 2, []poker.Rank{poker.Ace}},
		{"Incantation", 4, poker.NumberedRanks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g := newGame(t)
			s := g.State()

			_, err := r.Dispatch(s, find(t, s, content.KindSpectral, tt.name), nil)
			require.NoError(t, err)
			assert.Len(t, s.Player.Hand, 8-1+tt.added)
			added := enhanced(s.Player.Hand)
			require.Len(t, added, tt.added)
			for _, c := range added {
				assert.Contains(t, tt.ranks, c.Rank)
			}
		})
	}
}

func TestWraith(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	s.Player.Money = 12

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Wraith"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Player.Money)
	require.Len(t, s.Player.Jokers, 1)
	assert.Equal(t, content.RarityRare, s.Player.Jokers[0].Rarity)
}

func TestTheSoul(t *testing.T) {
	r, g := newGame(t)
	s := g.State()

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "The Soul"), nil)
	require.NoError(t, err)
	require.Len(t, s.Player.Jokers, 1)
	assert.Equal(t, content.RarityLegendary, s.Player.Jokers[0].Rarity)
}

func TestOuija(t *testing.T) {
	r, g := newGame(t)
	s := g.State()

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Ouija"), nil)
	require.NoError(t, err)
	for _, c := range s.Player.Hand {
		assert.Equal(t, poker.AllRanks[0], c.Rank)
	}
	assert.Equal(t, 7, s.Player.HandSize)
}

func TestEctoplasmCostsMoreEachUse(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	ectoplasm := find(t, s, content.KindSpectral, "Ectoplasm")

	_, err := r.Dispatch(s, ectoplasm, nil)
	assert.True(t, game.IsValidationError(err))
	assert.Equal(t, 8, s.Player.HandSize)
	assert.Equal(t, 0, s.EctoplasmUses)

	j := addJoker(t, r, s, "Joker")
	_, err = r.Dispatch(s, ectoplasm, nil)
	require.NoError(t, err)
	assert.Equal(t, poker.EditionNegative, j.Edition)
	assert.Equal(t, 7, s.Player.HandSize)

	_, err = r.Dispatch(s, ectoplasm, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Player.HandSize)
	assert.Equal(t, 2, s.EctoplasmUses)
	assert.Equal(t, 0, s.Player.JokerSlotsUsed())
}

func TestImmolate(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	money := s.Player.Money

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Immolate"), nil)
	require.NoError(t, err)
	assert.Len(t, s.Player.Hand, 3)
	assert.Equal(t, money+20, s.Player.Money)

	_, err = r.Dispatch(s, find(t, s, content.KindSpectral, "Immolate"), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Player.Hand)
}

func TestAnkh(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	first := addJoker(t, r, s, "Joker")
	first.Edition = poker.EditionNegative
	addJoker(t, r, s, "Cavendish")
	addJoker(t, r, s, "Sly Joker")

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Ankh"), nil)
	require.NoError(t, err)
	require.Len(t, s.Player.Jokers, 2)
	assert.Same(t, first, s.Player.Jokers[0])
	clone := s.Player.Jokers[1]
	assert.Equal(t, "Joker", clone.Name)
	assert.Equal(t, poker.EditionNone, clone.Edition)
	assert.Equal(t, 6.0, clone.ApplyMult(2))
}

func TestHex(t *testing.T) {
	r, g := newGame(t)
	s := g.State()

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Hex"), nil)
	assert.True(t, game.IsValidationError(err))

	first := addJoker(t, r, s, "Baron")
	addJoker(t, r, s, "Stuntman")

	_, err = r.Dispatch(s, find(t, s, content.KindSpectral, "Hex"), nil)
	require.NoError(t, err)
	require.Len(t, s.Player.Jokers, 1)
	assert.Same(t, first, s.Player.Jokers[0])
	assert.Equal(t, poker.EditionPolychrome, first.Edition)
}

func TestSpectralWithoutJokersStaysInInventory(t *testing.T) {
	_, g := newGame(t)
	s := g.State()
	s.Player.SpectralCards = append(s.Player.SpectralCards, content.NewConsumable(find(t, s, content.KindSpectral, "Ankh")))

	_, err := g.UseSpectral(0, nil)
	require.Error(t, err)
	assert.Len(t, s.Player.SpectralCards, 1)
}
