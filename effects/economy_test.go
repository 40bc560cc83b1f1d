package effects

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
	"voyager.com/roguepoker/util/random"
)

func TestAddMoney(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	money := s.Player.Money
	def := content.Definition{Name: "Coin", Action: ActionAddMoney, Params: content.Params{"amount": 7}}

	_, err := r.Dispatch(s, def, nil)
	require.NoError(t, err)
	assert.Equal(t, money+7, s.Player.Money)
}

func TestTemperance(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	addJoker(t, r, s, "Joker")
	addJoker(t, r, s, "Cavendish")
	s.Player.Money = 0

	_, err := r.Dispatch(s, find(t, s, content.KindTarot, "Temperance"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Player.Money)
}

func TestTemperanceIsCapped(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	for i := 0; i < 5; i++ {
		addJoker(t, r, s, "Canio")
	}
	s.Player.Money = 0
	def := find(t, s, content.KindTarot, "Temperance")
	def.Params = content.Params{"cap": 30}

	_, err := r.Dispatch(s, def, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, s.Player.Money)
}

func TestAddPlanetCards(t *testing.T) {
	r, g := newGame(t)
	s := g.State()

	desc, err := r.Dispatch(s, find(t, s, content.KindTarot, "The High Priestess"), nil)
	require.NoError(t, err)
	assert.Len(t, s.Player.PlanetCards, 2)
	assert.NotEqual(t, s.Player.PlanetCards[0].Name, s.Player.PlanetCards[1].Name)
	assert.Contains(t, desc, "added")
}

func TestPlanetsWithoutRoomAreUsedImmediately(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	s.Player.ConsumableSlots = 0

	desc, err := r.Dispatch(s, find(t, s, content.KindTarot, "The High Priestess"), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Player.PlanetCards)
	assert.Len(t, s.Player.HandBonuses, 2)
	assert.Contains(t, desc, "used immediately")
}

func TestWheelOfFortune(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	wheel := find(t, s, content.KindTarot, "The Wheel of Fortune")

	_, err := r.Dispatch(s, wheel, nil)
	assert.True(t, game.IsValidationError(err))

	j := addJoker(t, r, s, "Joker")
	_, err = r.Dispatch(s, wheel, nil)
	require.NoError(t, err)
	assert.Equal(t, poker.EditionFoil, j.Edition)
}

func TestWheelOfFortuneMisses(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	j := addJoker(t, r, s, "Joker")
	// every roll is 0.5
	s.Rand = rand.New(random.ConstantSource{V: 1 << 62})

	desc, err := r.Dispatch(s, find(t, s, content.KindTarot, "The Wheel of Fortune"), nil)
	require.NoError(t, err)
	assert.Equal(t, "The Wheel of Fortune used: Nope!", desc)
	assert.Equal(t, poker.EditionNone, j.Edition)
}

func TestAddRandomJoker(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	judgement := find(t, s, content.KindTarot, "Judgement")

	_, err := r.Dispatch(s, judgement, nil)
	require.NoError(t, err)
	require.Len(t, s.Player.Jokers, 1)
	assert.True(t, s.Player.Jokers[0].Bound())

	for i := 1; i < s.Rules.JokerSlots; i++ {
		addJoker(t, r, s, "Joker")
	}
	desc, err := r.Dispatch(s, judgement, nil)
	require.NoError(t, err)
	assert.Contains(t, desc, "no room")
	assert.Len(t, s.Player.Jokers, s.Rules.JokerSlots)
}

func TestFoolRecreatesLastUsedCard(t *testing.T) {
	_, g := newGame(t)
	s := g.State()
	p := s.Player
	fool := content.NewConsumable(find(t, s, content.KindTarot, "The Fool"))

	p.TarotCards = append(p.TarotCards, fool)
	_, err := g.UseTarot(0, nil)
	require.Error(t, err)
	assert.True(t, game.IsValidationError(err))
	require.Len(t, p.TarotCards, 1)

	p.PlanetCards = append(p.PlanetCards, content.NewConsumable(find(t, s, content.KindPlanet, "Pluto")))
	_, err = g.UsePlanet(0)
	require.NoError(t, err)
	assert.Equal(t, scoring.HandBonus{Chips: 10, Mult: 1}, p.HandBonuses["High Card"])

	out, err := g.UseTarot(0, nil)
	require.NoError(t, err)
	assert.Empty(t, p.TarotCards)
	require.Len(t, p.PlanetCards, 1)
	assert.Equal(t, "Pluto", p.PlanetCards[0].Name)
	assert.Equal(t, "Pluto", s.LastUsedCard.Name)
	assert.Equal(t, []string{"The Fool used: created Pluto"}, out.Lines)
}

func TestLevelUpHandNormalizesName(t *testing.T) {
	r, g := newGame(t)
	s := g.State()
	def := content.Definition{Name: "Planet X", Action: ActionLevelUpHand, Params: content.Params{"hand": "three_of_a_kind", "chips": 20, "mult": 2}}

	_, err := r.Dispatch(s, def, nil)
	require.NoError(t, err)
	_, err = r.Dispatch(s, def, nil)
	require.NoError(t, err)
	assert.Equal(t, scoring.HandBonus{Chips: 40, Mult: 4}, s.Player.HandBonuses["Three of a Kind"])

	_, err = r.Dispatch(s, content.Definition{Name: "Planet Y", Action: ActionLevelUpHand}, nil)
	assert.Error(t, err)
}

func TestBlackHole(t *testing.T) {
	r, g := newGame(t)
	s := g.State()

	_, err := r.Dispatch(s, find(t, s, content.KindSpectral, "Black Hole"), nil)
	require.NoError(t, err)
	assert.Len(t, s.Player.HandBonuses, len(poker.AllHandCategories)+2)
	for _, bonus := range s.Player.HandBonuses {
		assert.Equal(t, scoring.HandBonus{Chips: 10, Mult: 1}, bonus)
	}
}
