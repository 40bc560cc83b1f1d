package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
)

type DeckType string

const (
	DeckBase   DeckType = "Base"
	DeckRed    DeckType = "Red"
	DeckGreen  DeckType = "Green"
	DeckYellow DeckType = "Yellow"
)

func ParseDeckType(s string) (DeckType, error) {
	for _, d := range []DeckType{DeckBase, DeckRed, DeckGreen, DeckYellow} {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid deck type [%s]", s)
}

type SortBy string

const (
	SortByRank SortBy = "rank"
	SortBySuit SortBy = "suit"
)

func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(s) {
	case "rank", "":
		return SortByRank, nil
	case "suit":
		return SortBySuit, nil
	}
	return "", invalid(ErrMsgInvalidSort, s)
}

type Player struct {
	Hand            []*poker.Card
	Jokers          []*content.Joker
	Vouchers        []*content.Voucher
	TarotCards      []*content.Consumable
	SpectralCards   []*content.Consumable
	PlanetCards     []*content.Consumable
	Money           int
	Hands           int
	Discards        int
	HandSize        int
	Score           int
	SortBy          SortBy
	ConsumableSlots int
	HandBonuses     scoring.Bonuses
	EarnsInterest   bool
}

func newPlayer(rules *config.Rules) *Player {
	return &Player{
		Money:           rules.StartingMoney,
		Hands:           rules.Hands,
		Discards:        rules.Discards,
		HandSize:        rules.HandSize,
		SortBy:          SortByRank,
		ConsumableSlots: rules.ConsumableSlots,
		HandBonuses:     make(scoring.Bonuses),
		EarnsInterest:   true,
	}
}

func (p *Player) TotalConsumables() int {
	return len(p.TarotCards) + len(p.SpectralCards) + len(p.PlanetCards)
}

func (p *Player) HasConsumableSpace() bool {
	return p.TotalConsumables() < p.ConsumableSlots
}

// AddConsumable stores a Tarot, Spectral or Planet card. It returns false when every slot is taken.
func (p *Player) AddConsumable(c *content.Consumable) bool {
	if !p.HasConsumableSpace() {
		return false
	}
	switch c.Kind {
	case content.KindTarot:
		p.TarotCards = append(p.TarotCards, c)
	case content.KindSpectral:
		p.SpectralCards = append(p.SpectralCards, c)
	case content.KindPlanet:
		p.PlanetCards = append(p.PlanetCards, c)
	default:
		return false
	}
	return true
}

func (p *Player) HasVoucher(name string) bool {
	for _, v := range p.Vouchers {
		if v.Name == name {
			return true
		}
	}
	return false
}

func (p *Player) VoucherNames() []string {
	names := make([]string, 0, len(p.Vouchers))
	for _, v := range p.Vouchers {
		names = append(names, v.Name)
	}
	return names
}

func (p *Player) CountJokers(name string) int {
	count := 0
	for _, j := range p.Jokers {
		if j.Name == name {
			count++
		}
	}
	return count
}

// JokerSlotsUsed counts the jokers that occupy a slot. Negative jokers are free.
func (p *Player) JokerSlotsUsed() int {
	used := 0
	for _, j := range p.Jokers {
		if j.Edition != poker.EditionNegative {
			used++
		}
	}
	return used
}

// SortHand orders the hand by rank then suit, or by suit then rank.
func (p *Player) SortHand() {
	bySuit := p.SortBy == SortBySuit
	sort.SliceStable(p.Hand, func(i, j int) bool {
		a, b := p.Hand[i], p.Hand[j]
		if bySuit && a.Suit != b.Suit {
			return a.Suit.SortOrder() < b.Suit.SortOrder()
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Suit.SortOrder() < b.Suit.SortOrder()
	})
}

func (p *Player) ToggleSort() {
	if p.SortBy == SortByRank {
		p.SortBy = SortBySuit
	} else {
		p.SortBy = SortByRank
	}
}

// RemoveFromHand removes the given cards by identity.
func (p *Player) RemoveFromHand(cards ...*poker.Card) {
	kept := p.Hand[:0]
	for _, c := range p.Hand {
		remove := false
		for _, r := range cards {
			if c == r {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(p.Hand); i++ {
		p.Hand[i] = nil
	}
	p.Hand = kept
}

// State is everything an effect may read or mutate.
type State struct {
	GameID           string
	DeckType         DeckType
	Player           *Player
	Deck             *poker.Deck
	Blinds           *Blinds
	Round            int
	EctoplasmUses    int
	RoundEarnings    int
	LastUsedCard     *content.Consumable
	VoucherPurchased bool

	Rand    *rand.Rand
	Catalog *content.Catalog
	Rules   *config.Rules
}

func (s *State) Ante() int {
	return s.Blinds.Ante()
}

func (s *State) GameOver() bool {
	return s.Blinds.GameOver()
}

func (s *State) JokerSlotsFree() int {
	free := s.Rules.JokerSlots - s.Player.JokerSlotsUsed()
	if free < 0 {
		return 0
	}
	return free
}

// AddJoker appends a joker when a slot is free. Negative jokers always fit.
func (s *State) AddJoker(j *content.Joker) bool {
	if j.Edition != poker.EditionNegative && s.JokerSlotsFree() == 0 {
		return false
	}
	s.Player.Jokers = append(s.Player.Jokers, j)
	return true
}

// ScoringContext exposes the random source and hand levels to the scoring engine.
func (s *State) ScoringContext() scoring.Context {
	return scoring.Context{Rand: s.Rand, Bonuses: s.Player.HandBonuses}
}

// DrawHand replaces the hand with a full draw from the deck.
func (s *State) DrawHand() {
	s.Player.Hand = s.Deck.Draw(s.Player.HandSize)
	s.Player.SortHand()
}

// RefillHand draws up to hand size.
func (s *State) RefillHand() {
	need := s.Player.HandSize - len(s.Player.Hand)
	if need > 0 {
		s.Player.Hand = append(s.Player.Hand, s.Deck.Draw(need)...)
		s.Player.SortHand()
	}
}

// RandomCard returns a new card of a random suit from ranks with a random enhancement.
func (s *State) RandomCard(ranks []poker.Rank) *poker.Card {
	return &poker.Card{
		Suit:        poker.AllSuits[s.Rand.Intn(len(poker.AllSuits))],
		Rank:        ranks[s.Rand.Intn(len(ranks))],
		Enhancement: poker.Enhancements[s.Rand.Intn(len(poker.Enhancements))],
	}
}
