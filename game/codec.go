package game

import (
	"fmt"
	"math/rand"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	classTarot    = "TarotCard"
	classSpectral = "SpectralCard"
	classPlanet   = "PlanetCard"
)

var kindClasses = map[content.Kind]string{
	content.KindTarot:    classTarot,
	content.KindSpectral: classSpectral,
	content.KindPlanet:   classPlanet,
}

type jokerWire struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Chips          int               `json:"chips"`
	Mult           int               `json:"mult"`
	MultMultiplier float64           `json:"mult_multiplier"`
	Hand           *string           `json:"hand"`
	Retrigger      int               `json:"retrigger"`
	Stickers       []content.Sticker `json:"stickers"`
	RoundsActive   int               `json:"rounds_active"`
	IsDebuffed     bool              `json:"is_debuffed"`
	Edition        poker.Edition     `json:"edition"`
	Rarity         content.Rarity    `json:"rarity"`
	Cost           int               `json:"cost"`
	Action         string            `json:"action,omitempty"`
}

type consumableWire struct {
	Class         string         `json:"_class"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Cost          int            `json:"cost"`
	Targets       int            `json:"targets,omitempty"`
	Action        string         `json:"action,omitempty"`
	Params        content.Params `json:"params,omitempty"`
	ChipsBonus    int            `json:"chips_bonus,omitempty"`
	MultBonus     int            `json:"mult_bonus,omitempty"`
	PokerHandType string         `json:"poker_hand_type,omitempty"`
}

type playerWire struct {
	Hand            []*poker.Card      `json:"hand"`
	Jokers          []jokerWire        `json:"jokers"`
	Vouchers        []*content.Voucher `json:"vouchers"`
	TarotCards      []consumableWire   `json:"tarot_cards"`
	SpectralCards   []consumableWire   `json:"spectral_cards"`
	PlanetCards     []consumableWire   `json:"planet_cards"`
	Money           int                `json:"money"`
	Hands           int                `json:"hands"`
	Discards        int                `json:"discards"`
	HandSize        int                `json:"hand_size"`
	Score           int                `json:"score"`
	SortBy          string             `json:"sort_by"`
	ConsumableSlots int                `json:"consumable_slots"`
	HandBonuses     scoring.Bonuses    `json:"hand_bonuses"`
}

type stateWire struct {
	GameID            string          `json:"game_id"`
	DeckType          string          `json:"deck_type"`
	Player            *playerWire     `json:"player"`
	Round             int             `json:"round"`
	Ante              int             `json:"ante"`
	GameOver          bool            `json:"game_over"`
	CurrentBlindIndex int             `json:"current_blind_index"`
	EctoplasmUses     int             `json:"ectoplasm_uses"`
	Deck              []*poker.Card   `json:"deck"`
	RoundEarnings     int             `json:"round_earnings"`
	LastUsedCard      *consumableWire `json:"last_used_card,omitempty"`
	VoucherPurchased  bool            `json:"voucher_purchased"`
}

func encodeJoker(j *content.Joker) jokerWire {
	w := jokerWire{
		Name:           j.Name,
		Description:    j.Description,
		Chips:          j.Chips,
		Mult:           j.Mult,
		MultMultiplier: j.MultMultiplier,
		Retrigger:      j.Retrigger,
		Stickers:       j.Stickers,
		RoundsActive:   j.RoundsActive,
		IsDebuffed:     j.Debuffed,
		Edition:        j.Edition,
		Rarity:         j.Rarity,
		Cost:           j.Cost,
		Action:         j.Action,
	}
	if w.Stickers == nil {
		w.Stickers = []content.Sticker{}
	}
	if j.Hand != poker.HandNone {
		hand := j.Hand.String()
		w.Hand = &hand
	}
	return w
}

func decodeJoker(w jokerWire) (*content.Joker, error) {
	multiplier := w.MultMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	j := &content.Joker{
		Name:           w.Name,
		Description:    w.Description,
		Chips:          w.Chips,
		Mult:           w.Mult,
		MultMultiplier: multiplier,
		Retrigger:      w.Retrigger,
		RoundsActive:   w.RoundsActive,
		Debuffed:       w.IsDebuffed,
		Edition:        w.Edition,
		Rarity:         w.Rarity,
		Cost:           w.Cost,
		Action:         w.Action,
	}
	if len(w.Stickers) > 0 {
		j.Stickers = w.Stickers
	}
	if w.Hand != nil && *w.Hand != "" {
		hand, err := poker.ParseHandCategory(*w.Hand)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid hand of joker [%s]", w.Name)
		}
		j.Hand = hand
	}
	return j, nil
}

func encodeConsumable(c *content.Consumable) consumableWire {
	w := consumableWire{
		Class:       kindClasses[c.Kind],
		Name:        c.Name,
		Description: c.Description,
		Cost:        c.Cost,
		Targets:     c.Targets,
		Action:      c.Action,
		Params:      c.Params,
	}
	if c.Kind == content.KindPlanet {
		w.PokerHandType, w.ChipsBonus, w.MultBonus = c.PlanetHand()
	}
	return w
}

func decodeConsumable(w consumableWire, expected content.Kind) (*content.Consumable, error) {
	var kind content.Kind
	for k, class := range kindClasses {
		if class == w.Class {
			kind = k
		}
	}
	if kind == "" {
		return nil, fmt.Errorf("unknown card class [%s] for [%s]", w.Class, w.Name)
	}
	if expected != "" && kind != expected {
		return nil, fmt.Errorf("card [%s] of class [%s] found in the %s inventory", w.Name, w.Class, expected)
	}
	def := content.Definition{
		Kind:        kind,
		Name:        w.Name,
		Description: w.Description,
		Cost:        w.Cost,
		Targets:     w.Targets,
		Action:      w.Action,
		Params:      w.Params,
	}
	if kind == content.KindPlanet && def.Params == nil && w.PokerHandType != "" {
		def.Params = content.Params{"hand": w.PokerHandType, "chips": w.ChipsBonus, "mult": w.MultBonus}
	}
	return content.NewConsumable(def), nil
}

func encodeConsumables(cards []*content.Consumable) []consumableWire {
	out := make([]consumableWire, 0, len(cards))
	for _, c := range cards {
		out = append(out, encodeConsumable(c))
	}
	return out
}

func decodeConsumables(wires []consumableWire, kind content.Kind) ([]*content.Consumable, error) {
	var out []*content.Consumable
	for _, w := range wires {
		c, err := decodeConsumable(w, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func nonNilCards(cards []*poker.Card) []*poker.Card {
	if cards == nil {
		return []*poker.Card{}
	}
	return cards
}

// EncodeState serializes the state to the save JSON layout.
func EncodeState(s *State) ([]byte, error) {
	p := s.Player
	pw := &playerWire{
		Hand:            nonNilCards(p.Hand),
		Jokers:          make([]jokerWire, 0, len(p.Jokers)),
		Vouchers:        p.Vouchers,
		TarotCards:      encodeConsumables(p.TarotCards),
		SpectralCards:   encodeConsumables(p.SpectralCards),
		PlanetCards:     encodeConsumables(p.PlanetCards),
		Money:           p.Money,
		Hands:           p.Hands,
		Discards:        p.Discards,
		HandSize:        p.HandSize,
		Score:           p.Score,
		SortBy:          string(p.SortBy),
		ConsumableSlots: p.ConsumableSlots,
		HandBonuses:     p.HandBonuses,
	}
	for _, j := range p.Jokers {
		pw.Jokers = append(pw.Jokers, encodeJoker(j))
	}
	if pw.Vouchers == nil {
		pw.Vouchers = []*content.Voucher{}
	}
	if pw.HandBonuses == nil {
		pw.HandBonuses = scoring.Bonuses{}
	}

	w := stateWire{
		GameID:            s.GameID,
		DeckType:          string(s.DeckType),
		Player:            pw,
		Round:             s.Round,
		Ante:              s.Ante(),
		GameOver:          s.GameOver(),
		CurrentBlindIndex: s.Blinds.Index(),
		EctoplasmUses:     s.EctoplasmUses,
		Deck:              nonNilCards(s.Deck.Cards()),
		RoundEarnings:     s.RoundEarnings,
		VoucherPurchased:  s.VoucherPurchased,
	}
	if s.LastUsedCard != nil {
		last := encodeConsumable(s.LastUsedCard)
		w.LastUsedCard = &last
	}

	data, err := json.Marshal(&w)
	if err != nil {
		return nil, errors.Wrap(err, "Could not encode game state")
	}
	return data, nil
}

// DecodeState builds a fresh state from save JSON. Jokers are returned unbound.
func DecodeState(data []byte, rules *config.Rules, catalog *content.Catalog, rnd *rand.Rand) (*State, error) {
	var w stateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}
	if w.Player == nil {
		return nil, errors.New("Could not load game state: missing player")
	}
	deckType, err := ParseDeckType(w.DeckType)
	if err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}
	if w.CurrentBlindIndex < 0 || w.CurrentBlindIndex >= len(blindStates) {
		return nil, fmt.Errorf("Could not load game state: invalid blind index %d", w.CurrentBlindIndex)
	}
	sortBy, err := ParseSortBy(w.Player.SortBy)
	if err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}

	pw := w.Player
	p := newPlayer(rules)
	p.Hand = pw.Hand
	p.Vouchers = pw.Vouchers
	p.Money = pw.Money
	p.Hands = pw.Hands
	p.Discards = pw.Discards
	p.HandSize = pw.HandSize
	p.Score = pw.Score
	p.SortBy = sortBy
	p.EarnsInterest = deckType != DeckGreen
	if pw.ConsumableSlots > 0 {
		p.ConsumableSlots = pw.ConsumableSlots
	}
	if pw.HandBonuses != nil {
		p.HandBonuses = pw.HandBonuses
	}
	for _, jw := range pw.Jokers {
		j, err := decodeJoker(jw)
		if err != nil {
			return nil, errors.Wrap(err, "Could not load game state")
		}
		p.Jokers = append(p.Jokers, j)
	}
	if p.TarotCards, err = decodeConsumables(pw.TarotCards, content.KindTarot); err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}
	if p.SpectralCards, err = decodeConsumables(pw.SpectralCards, content.KindSpectral); err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}
	if p.PlanetCards, err = decodeConsumables(pw.PlanetCards, content.KindPlanet); err != nil {
		return nil, errors.Wrap(err, "Could not load game state")
	}

	s := &State{
		GameID:           w.GameID,
		DeckType:         deckType,
		Player:           p,
		Deck:             poker.NewDeckFromCards(w.Deck, rnd),
		Blinds:           restoreBlinds(rules, w.CurrentBlindIndex, w.Ante, w.GameOver),
		Round:            w.Round,
		EctoplasmUses:    w.EctoplasmUses,
		RoundEarnings:    w.RoundEarnings,
		VoucherPurchased: w.VoucherPurchased,
		Rand:             rnd,
		Catalog:          catalog,
		Rules:            rules,
	}
	if w.LastUsedCard != nil {
		if s.LastUsedCard, err = decodeConsumable(*w.LastUsedCard, ""); err != nil {
			return nil, errors.Wrap(err, "Could not load game state")
		}
	}
	return s, nil
}

// Save serializes the game.
func (g *Game) Save() ([]byte, error) {
	return EncodeState(g.state)
}

// Load restores a game from save JSON. The live game of the caller is never touched on error.
func Load(data []byte, opts ...Option) (*Game, error) {
	o := buildOptions(opts)
	s, err := DecodeState(data, o.rules, o.catalog, rand.New(o.source))
	if err != nil {
		return nil, err
	}
	if s.GameID == "" {
		s.GameID = o.gameID
	}
	g := newGame(s, o)
	for _, j := range s.Player.Jokers {
		g.dispatcher.BindJoker(j)
	}
	return g, nil
}
