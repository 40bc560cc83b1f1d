package game

import (
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/logging"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
	"voyager.com/roguepoker/util"
)

const (
	RiffRaffJoker  = "Riff-Raff"
	ToTheMoonJoker = "To the Moon"
	TheFoolCard    = "The Fool"

	RentalFee          = 3
	PerishableRounds   = 5
	RiffRaffJokerCount = 2
)

// validateSelection checks that indices pick between 1 and limit distinct cards out of size.
func validateSelection(indices []int, size int, limit int) error {
	if len(indices) == 0 {
		return invalid(ErrMsgNoCardsSelected)
	}
	if len(indices) > limit {
		return invalid(ErrMsgTooManyCards, limit)
	}
	seen := mapset.NewSet()
	for _, i := range indices {
		if i < 0 || i >= size {
			return invalid(ErrMsgInvalidCardIndex, i)
		}
		if !seen.Add(i) {
			return invalid(ErrMsgDuplicateIndices)
		}
	}
	return nil
}

func (g *Game) selectCards(indices []int) []*poker.Card {
	cards := make([]*poker.Card, len(indices))
	for n, i := range indices {
		cards[n] = g.state.Player.Hand[i]
	}
	return cards
}

// Play scores the selected cards, then clears the blind, ends the game or refills the hand.
func (g *Game) Play(indices []int) (Outcome, error) {
	var outcome Outcome
	s := g.state
	p := s.Player
	if s.GameOver() {
		return outcome, invalid(ErrMsgGameOver)
	}
	if p.Hands <= 0 {
		return outcome, invalid(ErrMsgNoHands)
	}
	if err := validateSelection(indices, len(p.Hand), s.Rules.MaxSelected); err != nil {
		return outcome, err
	}

	played := g.selectCards(indices)
	p.RemoveFromHand(played...)

	hand, evaluated := poker.Evaluate(played)
	cards := scoring.CardsToScore(played, evaluated, p.Jokers)
	result := scoring.Score(hand, cards, p.Jokers, s.ScoringContext())
	outcome.Lines = append(outcome.Lines, result.Trace...)

	if result.Money > 0 {
		p.Money += result.Money
		s.RoundEarnings += result.Money
	}
	handScore := util.FloorScore(result.Score)
	p.Score += handScore
	p.Hands--
	outcome.add("Hand played: %s for %d points!", hand, handScore)
	outcome.add("Played %d cards. %d hands remaining.", len(played), p.Hands)

	util.Metrics.HandPlayed(hand.String())
	g.logger.Debug().
		Str(logging.HandKey, hand.String()).
		Int("score", handScore).
		Int("total", p.Score).
		Msg("Hand played")
	g.publish(EventHandPlayed, func(e *Event) {
		e.Hand = hand.String()
	})

	blind := s.Blinds.Current()
	if p.Score >= blind.ScoreRequired {
		g.clearBlind(&outcome)
		return outcome, nil
	}
	if p.Hands == 0 {
		g.failBlind(&outcome)
		return outcome, nil
	}
	s.RefillHand()
	return outcome, nil
}

// Discard throws away the selected cards and draws replacements.
func (g *Game) Discard(indices []int) (Outcome, error) {
	var outcome Outcome
	s := g.state
	p := s.Player
	if s.GameOver() {
		return outcome, invalid(ErrMsgGameOver)
	}
	if p.Discards <= 0 {
		return outcome, invalid(ErrMsgNoDiscards)
	}
	if err := validateSelection(indices, len(p.Hand), s.Rules.MaxSelected); err != nil {
		return outcome, err
	}

	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, i := range sorted {
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	}
	p.Discards--
	p.Hand = append(p.Hand, s.Deck.Draw(len(sorted))...)
	p.SortHand()

	outcome.add("Discarded %d cards. %d discards remaining.", len(sorted), p.Discards)
	g.publish(EventDiscarded, nil)
	return outcome, nil
}

func (g *Game) UseTarot(index int, targets []int) (Outcome, error) {
	return g.useConsumable(&g.state.Player.TarotCards, index, targets, ErrMsgInvalidTarot)
}

func (g *Game) UseSpectral(index int, targets []int) (Outcome, error) {
	return g.useConsumable(&g.state.Player.SpectralCards, index, targets, ErrMsgInvalidSpectral)
}

func (g *Game) UsePlanet(index int) (Outcome, error) {
	return g.useConsumable(&g.state.Player.PlanetCards, index, nil, ErrMsgInvalidPlanet)
}

func (g *Game) useConsumable(inventory *[]*content.Consumable, index int, targets []int, indexErr string) (Outcome, error) {
	var outcome Outcome
	s := g.state
	if s.GameOver() {
		return outcome, invalid(ErrMsgGameOver)
	}
	if index < 0 || index >= len(*inventory) {
		return outcome, invalid(indexErr)
	}
	card := (*inventory)[index]
	var selected []*poker.Card
	if card.Targets > 0 {
		if len(targets) == 0 {
			return outcome, invalid(ErrMsgTargetsRequired, card.Name, card.Targets)
		}
		if err := validateSelection(targets, len(s.Player.Hand), card.Targets); err != nil {
			return outcome, err
		}
		selected = g.selectCards(targets)
	}

	removed := removeConsumable(*inventory, index)
	*inventory = removed
	desc, err := g.dispatcher.Dispatch(s, card.Definition, selected)
	if err != nil {
		// the action rejected the request before mutating anything
		*inventory = insertConsumable(*inventory, index, card)
		return outcome, err
	}
	if card.Kind == content.KindPlanet || (card.Kind == content.KindTarot && card.Name != TheFoolCard) {
		s.LastUsedCard = content.NewConsumable(card.Definition)
	}
	outcome.add("%s", desc)

	util.Metrics.EffectApplied(card.Action)
	g.logger.Debug().
		Str(logging.CardNameKey, card.Name).
		Str(logging.ActionKey, card.Action).
		Msg("Card used")
	g.publish(EventCardUsed, func(e *Event) {
		e.Card = card.Name
	})
	return outcome, nil
}

func removeConsumable(cards []*content.Consumable, index int) []*content.Consumable {
	out := make([]*content.Consumable, 0, len(cards)-1)
	out = append(out, cards[:index]...)
	return append(out, cards[index+1:]...)
}

func insertConsumable(cards []*content.Consumable, index int, c *content.Consumable) []*content.Consumable {
	out := make([]*content.Consumable, 0, len(cards)+1)
	out = append(out, cards[:index]...)
	out = append(out, c)
	return append(out, cards[index:]...)
}

// SortHand sets the sort preference and reorders the hand.
func (g *Game) SortHand(by string) (Outcome, error) {
	var outcome Outcome
	sortBy, err := ParseSortBy(by)
	if err != nil {
		return outcome, err
	}
	g.state.Player.SortBy = sortBy
	g.state.Player.SortHand()
	outcome.add("Hand sorted by %s.", sortBy)
	return outcome, nil
}

func (g *Game) ToggleSort() Outcome {
	var outcome Outcome
	g.state.Player.ToggleSort()
	g.state.Player.SortHand()
	outcome.add("Hand sorted by %s.", g.state.Player.SortBy)
	return outcome
}

// RemainingDeck returns the draw pile, top first.
func (g *Game) RemainingDeck() []*poker.Card {
	return g.state.Deck.Cards()
}

// EndOfRoundWinnings pays the round reward and interest. The returned total also counts money earned during the round.
func (g *Game) EndOfRoundWinnings() int {
	s := g.state
	p := s.Player
	base := s.Rules.RoundBase
	leftover := p.Hands
	p.Money += base + leftover

	interest := 0
	if p.EarnsInterest {
		limit := s.Rules.InterestCapFor(p.VoucherNames())
		per5 := 1 + p.CountJokers(ToTheMoonJoker)
		interest = util.MinInt(limit, util.MaxInt(0, p.Money/5)*per5)
		p.Money += interest
	}

	total := base + leftover + s.RoundEarnings + interest
	g.logger.Debug().
		Int("base", base).
		Int("leftover", leftover).
		Int("earnings", s.RoundEarnings).
		Int("interest", interest).
		Msg("End of round winnings")
	s.RoundEarnings = 0
	p.Hands = 0
	return total
}

// EndOfRoundEffects ages Perishable jokers and charges Rental jokers.
// Rent is charged even when it leaves the player in debt.
func (g *Game) EndOfRoundEffects() []string {
	var lines []string
	p := g.state.Player
	for _, j := range p.Jokers {
		for _, sticker := range j.Stickers {
			switch sticker.Type {
			case content.StickerPerishable:
				j.RoundsActive++
				if j.RoundsActive >= PerishableRounds && !j.Debuffed {
					j.Debuffed = true
					lines = append(lines, j.Name+" has become debuffed due to Perishable Sticker!")
				}
			case content.StickerRental:
				p.Money -= RentalFee
				lines = append(lines, j.Name+" rental fee: -$3")
			}
		}
	}
	return lines
}

// AdvanceBlind moves to the next blind and resets the round.
func (g *Game) AdvanceBlind() []string {
	var lines []string
	s := g.state
	p := s.Player

	anteUp, err := s.Blinds.Clear()
	if err != nil {
		panic(err.Error())
	}
	p.Score = 0
	p.Hands = s.Rules.Hands
	p.Discards = s.Rules.Discards
	if s.DeckType == DeckRed {
		p.Discards++
	}
	for _, v := range p.Vouchers {
		g.dispatcher.ApplyVoucher(s, v, false)
	}
	if anteUp {
		s.VoucherPurchased = false
		lines = append(lines, "All Blinds in Ante Cleared! Advancing to next Ante!")
	}
	blind := s.Blinds.Current()
	lines = append(lines, "Advancing to "+blind.Name+" (Score required: "+strconv.Itoa(blind.ScoreRequired)+")")

	if p.CountJokers(RiffRaffJoker) > 0 {
		lines = append(lines, g.riffRaff())
	}

	s.Round++
	s.Deck.Reset()
	s.DrawHand()
	g.logger.Info().
		Int(logging.AnteKey, s.Ante()).
		Str(logging.BlindKey, blind.Name).
		Msg("Blind advanced")
	return lines
}

func (g *Game) riffRaff() string {
	s := g.state
	commons := s.Catalog.JokersByRarity(content.RarityCommon)
	toCreate := util.MinInt(RiffRaffJokerCount, s.JokerSlotsFree())
	if toCreate <= 0 || len(commons) == 0 {
		return "No room for Riff-Raff to create Jokers."
	}
	for i := 0; i < toCreate; i++ {
		s.AddJoker(g.NewJoker(commons[s.Rand.Intn(len(commons))]))
	}
	if toCreate == 1 {
		return "Riff-Raff created 1 Common Joker."
	}
	return "Riff-Raff created " + strconv.Itoa(toCreate) + " Common Jokers."
}

func (g *Game) clearBlind(outcome *Outcome) {
	s := g.state
	cleared := s.Blinds.Current()
	total := g.EndOfRoundWinnings()
	outcome.add("%s Cleared! You gained $%d!", cleared.Name, total)
	outcome.Lines = append(outcome.Lines, g.EndOfRoundEffects()...)
	outcome.Lines = append(outcome.Lines, g.AdvanceBlind()...)
	g.OpenShop()

	util.Metrics.BlindCleared()
	g.publish(EventBlindCleared, nil)
}

func (g *Game) failBlind(outcome *Outcome) {
	s := g.state
	outcome.add("Failed to clear %s! Game Over!", s.Blinds.Current().Name)
	if err := s.Blinds.Fail(); err != nil {
		panic(err.Error())
	}
	util.Metrics.GameOver()
	g.logger.Info().
		Int(logging.AnteKey, s.Ante()).
		Int("round", s.Round).
		Msg("Game over")
	g.publish(EventGameOver, nil)
}
