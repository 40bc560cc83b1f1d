package scoring

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/poker"
)

var scoringLogger = log.With().Str("logger_name", "scoring::score").Logger()

const (
	LuckyChance   = 0.25
	LuckyMult     = 20
	GoldMoney     = 3
	GoldSealMoney = 3
	SplashJoker   = "Splash"
)

// DefaultSeed seeds Lucky rolls when the caller passes no source.
const DefaultSeed = 1

type BaseScore struct {
	Chips int
	Mult  int
}

var baseScores = map[poker.HandCategory]BaseScore{
	poker.HighCard:      {Chips: 5, Mult: 1},
	poker.Pair:          {Chips: 10, Mult: 2},
	poker.TwoPair:       {Chips: 20, Mult: 2},
	poker.ThreeOfAKind:  {Chips: 30, Mult: 3},
	poker.Straight:      {Chips: 30, Mult: 4},
	poker.Flush:         {Chips: 35, Mult: 4},
	poker.FullHouse:     {Chips: 40, Mult: 4},
	poker.FourOfAKind:   {Chips: 60, Mult: 7},
	poker.StraightFlush: {Chips: 100, Mult: 8},
	poker.FiveOfAKind:   {Chips: 120, Mult: 12},
}

// Base returns the fixed chips and mult of a hand category. Unknown categories score nothing.
func Base(hand poker.HandCategory) BaseScore {
	return baseScores[hand]
}

// HandBonus is the permanent bonus a hand has accumulated from planets and Black Hole.
type HandBonus struct {
	Chips int `json:"chips"`
	Mult  int `json:"mult"`
}

// Bonuses is keyed by hand name so that hands the evaluator never produces (Flush Five) can still be levelled.
type Bonuses map[string]HandBonus

func (b Bonuses) Add(hand string, chips int, mult int) {
	bonus := b[hand]
	bonus.Chips += chips
	bonus.Mult += mult
	b[hand] = bonus
}

func (b Bonuses) Clone() Bonuses {
	clone := make(Bonuses, len(b))
	for k, v := range b {
		clone[k] = v
	}
	return clone
}

// Context carries the run state scoring reads. A nil Rand scores with a fresh
// source seeded by DefaultSeed, so equal inputs always give equal results.
type Context struct {
	Rand    *rand.Rand
	Bonuses Bonuses
}

type Result struct {
	Score float64
	Chips float64
	Mult  float64
	// Money earned from Gold cards and Gold seals, to be credited by the caller.
	Money int
	Trace []string
}

// CardsToScore returns the cards that receive bonuses: the whole played hand when Splash is active, otherwise the evaluated subset.
func CardsToScore(played []*poker.Card, evaluated []*poker.Card, jokers []*content.Joker) []*poker.Card {
	for _, j := range jokers {
		if j.Name == SplashJoker {
			return played
		}
	}
	return evaluated
}

type scorer struct {
	chips  float64
	mult   float64
	result Result
}

func (s *scorer) trace(format string, args ...interface{}) {
	s.result.Trace = append(s.result.Trace, fmt.Sprintf(format, args...))
}

func (s *scorer) addChips(n float64, source string) {
	s.chips += n
	s.trace("+%s Chips (%s) -> %s", formatNum(n), source, formatNum(s.chips))
}

func (s *scorer) addMult(n float64, source string) {
	s.mult += n
	s.trace("+%s Mult (%s) -> %s", formatNum(n), source, formatNum(s.mult))
}

func (s *scorer) timesMult(n float64, source string) {
	s.mult *= n
	s.trace("X%s Mult (%s) -> %s", formatNum(n), source, formatNum(s.mult))
}

// Score computes chips x mult for a played hand. It does not mutate the cards or jokers.
func Score(hand poker.HandCategory, cards []*poker.Card, jokers []*content.Joker, ctx Context) Result {
	rnd := ctx.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(DefaultSeed))
	}

	base := Base(hand)
	s := &scorer{chips: float64(base.Chips), mult: float64(base.Mult)}
	s.trace("Base %s: %d Chips x %d Mult", hand, base.Chips, base.Mult)

	if bonus, ok := ctx.Bonuses[hand.String()]; ok && (bonus.Chips != 0 || bonus.Mult != 0) {
		s.chips += float64(bonus.Chips)
		s.mult += float64(bonus.Mult)
		s.trace("Hand level bonus: +%d Chips, +%d Mult -> %s Chips x %s Mult",
			bonus.Chips, bonus.Mult, formatNum(s.chips), formatNum(s.mult))
	}

	for _, c := range cards {
		s.addChips(float64(c.Rank.Value()), c.String())
	}

	for _, c := range cards {
		switch c.Enhancement {
		case poker.EnhancementGlass:
			s.addMult(2, "Glass "+c.String())
		case poker.EnhancementSteel:
			s.timesMult(1.5, "Steel "+c.String())
		case poker.EnhancementGold:
			s.result.Money += GoldMoney
			s.trace("+$%d (Gold %s)", GoldMoney, c.String())
		case poker.EnhancementLucky:
			if rnd.Float64() < LuckyChance {
				s.addMult(LuckyMult, "Lucky "+c.String())
			}
		case poker.EnhancementMult:
			s.addMult(4, "Mult "+c.String())
		case poker.EnhancementChip:
			s.addChips(10, "Chip "+c.String())
		}
	}

	for _, c := range cards {
		switch c.Edition {
		case poker.EditionFoil:
			s.addChips(50, "Foil "+c.String())
		case poker.EditionHolographic:
			s.addMult(10, "Holographic "+c.String())
		case poker.EditionPolychrome:
			s.timesMult(1.5, "Polychrome "+c.String())
		}
	}

	for _, c := range cards {
		if c.Seal == poker.SealGold {
			s.result.Money += GoldSealMoney
			s.trace("+$%d (Gold Seal %s)", GoldSealMoney, c.String())
		}
	}

	for _, j := range jokers {
		if j.Debuffed {
			s.chips = j.ApplyChips(s.chips)
			s.mult = j.ApplyMult(s.mult)
			s.trace("%s is debuffed: Chips and Mult set to 0", j.Name)
			continue
		}
		if !j.AppliesTo(hand) {
			continue
		}
		chips := j.ApplyChips(s.chips)
		mult := j.ApplyMult(s.mult)
		if chips != s.chips || mult != s.mult {
			s.trace("%s: %s -> %s Chips, %s -> %s Mult", j.Name,
				formatNum(s.chips), formatNum(chips), formatNum(s.mult), formatNum(mult))
		}
		s.chips, s.mult = chips, mult

		switch j.Edition {
		case poker.EditionFoil:
			s.addChips(50, "Foil "+j.Name)
		case poker.EditionHolographic:
			s.addMult(10, "Holographic "+j.Name)
		case poker.EditionPolychrome:
			s.timesMult(1.5, "Polychrome "+j.Name)
		}
	}

	s.result.Chips = s.chips
	s.result.Mult = s.mult
	s.result.Score = s.chips * s.mult
	s.trace("Final: %s Chips x %s Mult = %s", formatNum(s.chips), formatNum(s.mult), formatNum(s.result.Score))

	scoringLogger.Debug().
		Str("hand", hand.String()).
		Float64("chips", s.chips).
		Float64("mult", s.mult).
		Float64("score", s.result.Score).
		Msg("Hand scored")
	return s.result
}

func formatNum(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%.2f", n)
}
