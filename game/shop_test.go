package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/poker"
)

func TestBuyBeforeShopOpens(t *testing.T) {
	g := newTestGame(t)
	assert.Nil(t, g.Shop())
	_, err := g.Buy(0)
	assert.Equal(t, ErrMsgInvalidShopItem, err.Error())
}

func TestOpenShopOffersOneVoucherPerAnte(t *testing.T) {
	g := newTestGame(t)
	s := g.State()

	shop := g.OpenShop()
	require.Len(t, shop.Items, 3)
	assert.Equal(t, content.KindVoucher, shop.Items[0].Definition.Kind)
	assert.Equal(t, BaseCosts["Voucher"], shop.Items[0].Cost)
	for _, item := range shop.Items[1:] {
		assert.NotEqual(t, content.KindVoucher, item.Definition.Kind)
	}

	s.VoucherPurchased = true
	assert.Len(t, g.OpenShop().Items, 2)
}

func TestBuyVoucher(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, WithEventListener(rec))
	s := g.State()
	p := s.Player
	g.OpenShop()
	voucher := g.Shop().Items[0]

	p.Money = 5
	_, err := g.Buy(0)
	assert.Equal(t, ErrMsgNotEnoughMoney, err.Error())
	assert.Len(t, g.Shop().Items, 3)

	p.Money = 12
	out, err := g.Buy(0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Money)
	assert.True(t, s.VoucherPurchased)
	require.Len(t, p.Vouchers, 1)
	assert.Equal(t, voucher.Definition.Name, p.Vouchers[0].Name)
	assert.Contains(t, out.Lines[0], "Purchased "+voucher.Definition.Name+"!")
	assert.Len(t, g.Shop().Items, 2)
	assert.Equal(t, EventPurchase, rec.events[len(rec.events)-1].Type)

	for _, item := range g.OpenShop().Items {
		assert.NotEqual(t, content.KindVoucher, item.Definition.Kind)
	}
}

func TestBuyJokerNeedsRoom(t *testing.T) {
	g := newTestGame(t)
	s := g.State()
	p := s.Player
	def, ok := s.Catalog.Find(content.KindJoker, "Joker")
	require.True(t, ok)
	g.shop = &Shop{Items: []ShopItem{{Definition: def, Cost: 5}}}
	p.Money = 20

	for i := 0; i < s.Rules.JokerSlots; i++ {
		s.AddJoker(g.NewJoker(def))
	}
	_, err := g.Buy(0)
	assert.Equal(t, "No room for more Jokers", err.Error())
	assert.Equal(t, 20, p.Money)

	p.Jokers = p.Jokers[:1]
	out, err := g.Buy(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Purchased Joker! Added to your Jokers."}, out.Lines)
	assert.Equal(t, 15, p.Money)
	assert.Len(t, p.Jokers, 2)
	assert.Equal(t, 5, p.Jokers[1].Cost)
}

func TestBuyConsumableNeedsRoom(t *testing.T) {
	g := newTestGame(t)
	s := g.State()
	p := s.Player
	def, ok := s.Catalog.Find(content.KindPlanet, "Mars")
	require.True(t, ok)
	g.shop = &Shop{Items: []ShopItem{{Definition: def, Cost: 3}, {Definition: def, Cost: 3}, {Definition: def, Cost: 3}}}
	p.Money = 10

	_, err := g.Buy(0)
	require.NoError(t, err)
	_, err = g.Buy(0)
	require.NoError(t, err)
	_, err = g.Buy(0)
	assert.Equal(t, "No room for more consumables", err.Error())
	assert.Len(t, p.PlanetCards, 2)
	assert.Equal(t, 4, p.Money)
}

func TestNegativeJokersTakeNoSlot(t *testing.T) {
	g := newTestGame(t)
	s := g.State()
	def, ok := s.Catalog.Find(content.KindJoker, "Joker")
	require.True(t, ok)
	for i := 0; i < s.Rules.JokerSlots; i++ {
		require.True(t, s.AddJoker(g.NewJoker(def)))
	}
	assert.False(t, s.AddJoker(g.NewJoker(def)))
	assert.Equal(t, 0, s.JokerSlotsFree())

	negative := g.NewJoker(def)
	negative.Edition = poker.EditionNegative
	assert.True(t, s.AddJoker(negative))
	assert.Equal(t, s.Rules.JokerSlots, s.Player.JokerSlotsUsed())
}
