package poker

import (
	"fmt"
	"strings"
)

type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var AllSuits = []Suit{Hearts, Diamonds, Clubs, Spades}

var (
	suitNames    = [...]string{"Hearts", "Diamonds", "Clubs", "Spades"}
	charSuits    = "hdcs"
	prettySuits  = [...]string{"❤", "♦", "♣", "♠"}
	charRankToRk = map[byte]Rank{}

	// hands sort suits alphabetically by name
	suitSortOrder = [...]int{2, 1, 0, 3}
)

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("Suit(%d)", s)
}

// SortOrder is the position of the suit when a hand is sorted: Clubs, Diamonds, Hearts, Spades.
func (s Suit) SortOrder() int {
	if int(s) < len(suitSortOrder) {
		return suitSortOrder[s]
	}
	return int(s)
}

func (s Suit) MarshalText() ([]byte, error) {
	if int(s) >= len(suitNames) {
		return nil, fmt.Errorf("invalid suit [%d]", s)
	}
	return []byte(suitNames[s]), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	v, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSuit(str string) (Suit, error) {
	for i, name := range suitNames {
		if strings.EqualFold(name, str) {
			return Suit(i), nil
		}
	}
	if len(str) == 1 {
		if idx := strings.IndexByte(charSuits, strings.ToLower(str)[0]); idx >= 0 {
			return Suit(idx), nil
		}
	}
	return 0, fmt.Errorf("invalid suit [%s]", str)
}

// Rank values match the scoring value of the card: 2-10 literal, J=11, Q=12, K=13, A=14.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var AllRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var FaceRanks = []Rank{Jack, Queen, King}

var NumberedRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten}

var (
	strRanks  = "23456789TJQKA"
	rankNames = map[Rank]string{
		Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8",
		Nine: "9", Ten: "10", Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
	}
)

func init() {
	for i := range strRanks {
		charRankToRk[strRanks[i]] = Rank(i + 2)
	}
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) Value() int {
	return int(r)
}

// Next returns the following rank, wrapping from Ace back to Two.
func (r Rank) Next() Rank {
	if r >= Ace {
		return Two
	}
	return r + 1
}

func (r Rank) IsFace() bool {
	return r == Jack || r == Queen || r == King
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", r)
}

func (r Rank) Char() string {
	if !r.Valid() {
		return "?"
	}
	return string(strRanks[r-2])
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rank [%d]", r)
	}
	return []byte(rankNames[r]), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	v, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func ParseRank(str string) (Rank, error) {
	for rank, name := range rankNames {
		if strings.EqualFold(name, str) {
			return rank, nil
		}
	}
	if strings.EqualFold(str, "Ten") {
		return Ten, nil
	}
	if len(str) == 1 {
		if rank, ok := charRankToRk[strings.ToUpper(str)[0]]; ok {
			return rank, nil
		}
	}
	return 0, fmt.Errorf("invalid rank [%s]", str)
}

type Enhancement uint8

const (
	EnhancementNone Enhancement = iota
	EnhancementGlass
	EnhancementSteel
	EnhancementGold
	EnhancementLucky
	EnhancementMult
	EnhancementChip
)

// Enhancements lists every real enhancement, excluding None.
var Enhancements = []Enhancement{
	EnhancementGlass, EnhancementSteel, EnhancementGold, EnhancementLucky, EnhancementMult, EnhancementChip,
}

var enhancementNames = [...]string{"None", "Glass", "Steel", "Gold", "Lucky", "Mult", "Chip"}

func (e Enhancement) String() string {
	if int(e) < len(enhancementNames) {
		return enhancementNames[e]
	}
	return "None"
}

func (e Enhancement) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Enhancement) UnmarshalText(b []byte) error {
	v, err := ParseEnhancement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func ParseEnhancement(str string) (Enhancement, error) {
	if str == "" {
		return EnhancementNone, nil
	}
	for i, name := range enhancementNames {
		if strings.EqualFold(name, str) {
			return Enhancement(i), nil
		}
	}
	return EnhancementNone, fmt.Errorf("invalid enhancement [%s]", str)
}

type Edition uint8

const (
	EditionNone Edition = iota
	EditionFoil
	EditionHolographic
	EditionPolychrome
	EditionNegative
)

var editionNames = [...]string{"None", "Foil", "Holographic", "Polychrome", "Negative"}

func (e Edition) String() string {
	if int(e) < len(editionNames) {
		return editionNames[e]
	}
	return "None"
}

func (e Edition) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Edition) UnmarshalText(b []byte) error {
	v, err := ParseEdition(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func ParseEdition(str string) (Edition, error) {
	if str == "" {
		return EditionNone, nil
	}
	for i, name := range editionNames {
		if strings.EqualFold(name, str) {
			return Edition(i), nil
		}
	}
	return EditionNone, fmt.Errorf("invalid edition [%s]", str)
}

type Seal uint8

const (
	SealNone Seal = iota
	SealGold
	SealRed
	SealBlue
	SealPurple
)

var sealNames = [...]string{"None", "Gold", "Red", "Blue", "Purple"}

func (s Seal) String() string {
	if int(s) < len(sealNames) {
		return sealNames[s]
	}
	return "None"
}

func (s Seal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Seal) UnmarshalText(b []byte) error {
	v, err := ParseSeal(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseSeal(str string) (Seal, error) {
	if str == "" {
		return SealNone, nil
	}
	for i, name := range sealNames {
		if strings.EqualFold(name, str) {
			return Seal(i), nil
		}
	}
	return SealNone, fmt.Errorf("invalid seal [%s]", str)
}

// Card is a playing card. The three modifier axes are independent of each other.
type Card struct {
	Suit        Suit        `json:"suit"`
	Rank        Rank        `json:"rank"`
	Enhancement Enhancement `json:"enhancement"`
	Edition     Edition     `json:"edition"`
	Seal        Seal        `json:"seal"`
}

// ParseCard parses the short form used in scripts and tests: rank char followed by suit char ("Ts", "2h", "Ad").
func ParseCard(s string) (*Card, error) {
	if len(s) != 2 {
		return nil, fmt.Errorf("invalid card [%s]", s)
	}
	rank, err := ParseRank(s[0:1])
	if err != nil {
		return nil, fmt.Errorf("invalid card [%s]: %v", s, err)
	}
	suit, err := ParseSuit(s[1:2])
	if err != nil {
		return nil, fmt.Errorf("invalid card [%s]: %v", s, err)
	}
	return &Card{Suit: suit, Rank: rank}, nil
}

// NewCard is ParseCard for literals known to be valid.
func NewCard(s string) *Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err.Error())
	}
	return c
}

func NewCards(codes ...string) []*Card {
	cards := make([]*Card, len(codes))
	for i, code := range codes {
		cards[i] = NewCard(code)
	}
	return cards
}

func (c *Card) Clone() *Card {
	clone := *c
	return &clone
}

// CopyFrom overwrites every attribute of c with those of src.
func (c *Card) CopyFrom(src *Card) {
	*c = *src
}

func (c *Card) Code() string {
	return c.Rank.Char() + string(charSuits[c.Suit])
}

func (c *Card) PrettyCode() string {
	return c.Rank.Char() + prettySuits[c.Suit]
}

func (c *Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

func (c *Card) Modifiers() []string {
	var modifiers []string
	if c.Enhancement != EnhancementNone {
		modifiers = append(modifiers, c.Enhancement.String())
	}
	if c.Edition != EditionNone {
		modifiers = append(modifiers, c.Edition.String())
	}
	if c.Seal != SealNone {
		modifiers = append(modifiers, c.Seal.String()+" Seal")
	}
	return modifiers
}

func (c *Card) String() string {
	modifiers := c.Modifiers()
	if len(modifiers) == 0 {
		return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
	}
	return fmt.Sprintf("%s of %s (%s)", c.Rank, c.Suit, strings.Join(modifiers, ", "))
}

func CardsToString(cards []*Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.PrettyCode())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func CloneCards(cards []*Card) []*Card {
	if cards == nil {
		return nil
	}
	clones := make([]*Card, len(cards))
	for i, c := range cards {
		clones[i] = c.Clone()
	}
	return clones
}
