package content

import (
	"fmt"
	"strconv"
	"strings"

	"voyager.com/roguepoker/poker"
)

type Kind string

const (
	KindJoker    Kind = "Joker"
	KindTarot    Kind = "Tarot"
	KindSpectral Kind = "Spectral"
	KindPlanet   Kind = "Planet"
	KindVoucher  Kind = "Voucher"
)

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
)

// Params is the action specific parameter bag of a definition.
type Params map[string]interface{}

func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err == nil {
			return i
		}
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func (p Params) String(key string, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Definition is one entry of the content catalog.
type Definition struct {
	Kind           Kind    `json:"kind,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"effect"`
	Cost           int     `json:"cost"`
	Targets        int     `json:"targets"`
	Action         string  `json:"action"`
	Params         Params  `json:"params,omitempty"`
	Rarity         Rarity  `json:"rarity,omitempty"`
	Chips          int     `json:"chips,omitempty"`
	Mult           int     `json:"mult,omitempty"`
	MultMultiplier float64 `json:"mult_multiplier,omitempty"`
	Hand           string  `json:"hand,omitempty"`
	Retrigger      int     `json:"retrigger,omitempty"`
}

type StickerType string

const (
	StickerEternal     StickerType = "Eternal"
	StickerPerishable  StickerType = "Perishable"
	StickerRental      StickerType = "Rental"
	StickerWhiteStake  StickerType = "White Stake"
	StickerRedStake    StickerType = "Red Stake"
	StickerGreenStake  StickerType = "Green Stake"
	StickerBlackStake  StickerType = "Black Stake"
	StickerBlueStake   StickerType = "Blue Stake"
	StickerPurpleStake StickerType = "Purple Stake"
	StickerOrangeStake StickerType = "Orange Stake"
	StickerGoldStake   StickerType = "Gold Stake"
)

var stickerTypes = []StickerType{
	StickerEternal, StickerPerishable, StickerRental,
	StickerWhiteStake, StickerRedStake, StickerGreenStake, StickerBlackStake,
	StickerBlueStake, StickerPurpleStake, StickerOrangeStake, StickerGoldStake,
}

func ParseStickerType(s string) (StickerType, error) {
	for _, t := range stickerTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid sticker type [%s]", s)
}

type Sticker struct {
	Type StickerType `json:"sticker_type"`
}

func (s Sticker) String() string {
	return string(s.Type)
}

// ChipsFunc and MultFunc implement a joker's contribution to a scoring pass.
type ChipsFunc func(j *Joker, chips float64) float64
type MultFunc func(j *Joker, mult float64) float64

type Joker struct {
	Name           string
	Description    string
	Chips          int
	Mult           int
	MultMultiplier float64
	Hand           poker.HandCategory
	Retrigger      int
	Stickers       []Sticker
	RoundsActive   int
	Debuffed       bool
	Edition        poker.Edition
	Rarity         Rarity
	Cost           int
	Action         string

	chipsFn ChipsFunc
	multFn  MultFunc
}

// NewJoker instantiates a joker from its definition. The trigger hand is ignored when it does not parse.
func NewJoker(def Definition) *Joker {
	multiplier := def.MultMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	hand := poker.HandNone
	if def.Hand != "" {
		if h, err := poker.ParseHandCategory(def.Hand); err == nil {
			hand = h
		}
	}
	return &Joker{
		Name:           def.Name,
		Description:    def.Description,
		Chips:          def.Chips,
		Mult:           def.Mult,
		MultMultiplier: multiplier,
		Hand:           hand,
		Retrigger:      def.Retrigger,
		Rarity:         def.Rarity,
		Cost:           def.Cost,
		Action:         def.Action,
	}
}

// Bind sets the behaviour used by ApplyChips and ApplyMult.
func (j *Joker) Bind(chips ChipsFunc, mult MultFunc) {
	j.chipsFn = chips
	j.multFn = mult
}

func (j *Joker) Bound() bool {
	return j.chipsFn != nil || j.multFn != nil
}

// ApplyChips returns the running chips after this joker. A debuffed joker returns 0.
func (j *Joker) ApplyChips(chips float64) float64 {
	if j.Debuffed {
		return 0
	}
	if j.chipsFn != nil {
		return j.chipsFn(j, chips)
	}
	return FlatChips(j, chips)
}

// ApplyMult returns the running mult after this joker. A debuffed joker returns 0.
func (j *Joker) ApplyMult(mult float64) float64 {
	if j.Debuffed {
		return 0
	}
	if j.multFn != nil {
		return j.multFn(j, mult)
	}
	return FlatMult(j, mult)
}

func FlatChips(j *Joker, chips float64) float64 {
	return chips + float64(j.Chips)
}

func FlatMult(j *Joker, mult float64) float64 {
	return (mult + float64(j.Mult)) * j.MultMultiplier
}

// AppliesTo reports whether the joker takes part when the given hand is scored.
func (j *Joker) AppliesTo(hand poker.HandCategory) bool {
	return j.Hand == poker.HandNone || j.Hand == hand
}

func (j *Joker) HasSticker(t StickerType) bool {
	for _, s := range j.Stickers {
		if s.Type == t {
			return true
		}
	}
	return false
}

func (j *Joker) AddSticker(t StickerType) {
	if !j.HasSticker(t) {
		j.Stickers = append(j.Stickers, Sticker{Type: t})
	}
}

// Clone copies the joker including its bound behaviour.
func (j *Joker) Clone() *Joker {
	clone := *j
	if j.Stickers != nil {
		clone.Stickers = make([]Sticker, len(j.Stickers))
		copy(clone.Stickers, j.Stickers)
	}
	return &clone
}

func (j *Joker) String() string {
	var extras []string
	if j.Edition != poker.EditionNone {
		extras = append(extras, j.Edition.String())
	}
	for _, s := range j.Stickers {
		extras = append(extras, s.String())
	}
	if j.Debuffed {
		extras = append(extras, "Debuffed")
	}
	if len(extras) == 0 {
		return fmt.Sprintf("%s: %s", j.Name, j.Description)
	}
	return fmt.Sprintf("%s [%s]: %s", j.Name, strings.Join(extras, ", "), j.Description)
}

// Consumable is a Tarot, Spectral or Planet card held in the player's inventory.
type Consumable struct {
	Definition
}

func NewConsumable(def Definition) *Consumable {
	c := &Consumable{Definition: def}
	if def.Params != nil {
		c.Params = make(Params, len(def.Params))
		for k, v := range def.Params {
			c.Params[k] = v
		}
	}
	return c
}

// PlanetHand returns the hand name a planet levels up, with its chips and mult bonus.
func (c *Consumable) PlanetHand() (string, int, int) {
	return c.Params.String("hand", ""), c.Params.Int("chips", 0), c.Params.Int("mult", 0)
}

func (c *Consumable) String() string {
	return fmt.Sprintf("%s: %s", c.Name, c.Description)
}

type Voucher struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Action      string `json:"action,omitempty"`
}

func NewVoucher(def Definition) *Voucher {
	return &Voucher{Name: def.Name, Description: def.Description, Cost: def.Cost, Action: def.Action}
}

func (v *Voucher) String() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Description)
}
