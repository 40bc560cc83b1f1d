package game

import (
	"fmt"

	"voyager.com/roguepoker/content"
)

// Base prices of shop items.
var BaseCosts = map[string]int{
	"Joker (Common)":    5,
	"Joker (Uncommon)":  8,
	"Joker (Rare)":      10,
	"Joker (Legendary)": 20,
	"Tarot Card":        3,
	"Planet Card":       3,
	"Voucher":           10,
}

func jokerCost(r content.Rarity) int {
	if cost, ok := BaseCosts[fmt.Sprintf("Joker (%s)", r)]; ok {
		return cost
	}
	return BaseCosts["Joker (Common)"]
}

type ShopItem struct {
	Definition content.Definition
	Cost       int
}

func (i ShopItem) String() string {
	return fmt.Sprintf("%s - Cost: $%d - %s", i.Definition.Name, i.Cost, i.Definition.Description)
}

type Shop struct {
	Items []ShopItem
}

// OpenShop stocks the shop with random singles and, once per ante, a voucher the player does not own.
func (g *Game) OpenShop() *Shop {
	s := g.state
	shop := &Shop{}

	if !s.VoucherPurchased {
		var vouchers []content.Definition
		for _, v := range s.Catalog.Pool(content.KindVoucher) {
			if !s.Player.HasVoucher(v.Name) {
				vouchers = append(vouchers, v)
			}
		}
		if len(vouchers) > 0 {
			def := vouchers[s.Rand.Intn(len(vouchers))]
			shop.Items = append(shop.Items, ShopItem{Definition: def, Cost: BaseCosts["Voucher"]})
		}
	}

	kinds := []content.Kind{content.KindJoker, content.KindTarot, content.KindPlanet}
	for n := 0; n < s.Rules.ShopItems; n++ {
		kind := kinds[s.Rand.Intn(len(kinds))]
		pool := s.Catalog.Pool(kind)
		if len(pool) == 0 {
			continue
		}
		def := pool[s.Rand.Intn(len(pool))]
		item := ShopItem{Definition: def}
		switch kind {
		case content.KindJoker:
			item.Cost = jokerCost(def.Rarity)
		case content.KindTarot:
			item.Cost = BaseCosts["Tarot Card"]
		case content.KindPlanet:
			item.Cost = BaseCosts["Planet Card"]
		}
		shop.Items = append(shop.Items, item)
	}

	g.shop = shop
	return shop
}

// Shop returns the current shop offering. It is nil before the first blind is cleared.
func (g *Game) Shop() *Shop {
	return g.shop
}

// Buy purchases the shop item at index.
func (g *Game) Buy(index int) (Outcome, error) {
	var outcome Outcome
	s := g.state
	p := s.Player
	if s.GameOver() {
		return outcome, invalid(ErrMsgGameOver)
	}
	if g.shop == nil || index < 0 || index >= len(g.shop.Items) {
		return outcome, invalid(ErrMsgInvalidShopItem)
	}
	item := g.shop.Items[index]
	if p.Money < item.Cost {
		return outcome, invalid(ErrMsgNotEnoughMoney)
	}

	def := item.Definition
	switch def.Kind {
	case content.KindJoker:
		joker := g.NewJoker(def)
		joker.Cost = item.Cost
		if s.JokerSlotsFree() == 0 {
			return outcome, invalid(ErrMsgNoRoom, "more Jokers")
		}
		if sticker, ok := g.rollSticker(); ok {
			joker.AddSticker(sticker)
			outcome.add("%s gained a %s Sticker!", joker.Name, sticker)
		}
		s.AddJoker(joker)
		outcome.add("Purchased %s! Added to your Jokers.", def.Name)
	case content.KindVoucher:
		voucher := content.NewVoucher(def)
		voucher.Cost = item.Cost
		p.Vouchers = append(p.Vouchers, voucher)
		s.VoucherPurchased = true
		outcome.add("Purchased %s! %s", def.Name, g.dispatcher.ApplyVoucher(s, voucher, true))
	default:
		if !p.AddConsumable(content.NewConsumable(def)) {
			return outcome, invalid(ErrMsgNoRoom, "more consumables")
		}
		outcome.add("Purchased %s!", def.Name)
	}

	p.Money -= item.Cost
	g.shop.Items = append(g.shop.Items[:index], g.shop.Items[index+1:]...)
	g.publish(EventPurchase, func(e *Event) {
		e.Card = def.Name
	})
	return outcome, nil
}

// rollSticker gives late-ante jokers a chance at a sticker.
func (g *Game) rollSticker() (content.StickerType, bool) {
	s := g.state
	ante := s.Ante()
	switch {
	case ante >= 4 && s.Rand.Float64() < 0.3:
		return content.StickerEternal, true
	case ante >= 7 && s.Rand.Float64() < 0.3:
		return content.StickerPerishable, true
	case ante >= 8 && s.Rand.Float64() < 0.3:
		return content.StickerRental, true
	}
	return "", false
}
