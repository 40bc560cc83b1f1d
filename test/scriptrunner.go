package test

import (
	"fmt"
	"strings"

	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/effects"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/gamescript"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/util/random"
)

// scriptRunner drives one game through the steps of a script.
type scriptRunner struct {
	script *gamescript.Script
	result *ScriptTestResult
	game   *game.Game
}

func (r *scriptRunner) run() error {
	err := r.configure()
	if err != nil {
		return err
	}
	for i := range r.script.Steps {
		stepNum := i + 1
		if err := r.runStep(stepNum, r.script.GetStep(stepNum)); err != nil {
			return err
		}
	}
	return nil
}

// configure creates the game and applies the setup section.
func (r *scriptRunner) configure() error {
	gameConfig := r.script.Game
	opts := []game.Option{
		game.WithDispatcher(effects.NewRegistry()),
		game.WithRandSource(random.NewSource(gameConfig.Seed)),
	}
	if gameConfig.Deck != "" {
		deck, err := game.ParseDeckType(gameConfig.Deck)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithDeckType(deck))
	}
	if gameConfig.RulesFile != "" {
		rules, err := config.ParseRules(gameConfig.RulesFile)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithRules(rules))
	}
	r.game = game.New(opts...)

	setup := r.script.Setup
	s := r.game.State()
	p := s.Player
	if len(setup.Hand) > 0 || len(setup.DeckTop) > 0 {
		top, err := parseCards(append(append([]string{}, setup.Hand...), setup.DeckTop...))
		if err != nil {
			return err
		}
		s.Deck.Reset()
		s.Deck.Stack(top)
		p.Hand = s.Deck.Draw(len(setup.Hand))
		s.RefillHand()
		p.SortHand()
	}
	if setup.Money != nil {
		p.Money = *setup.Money
	}
	for _, jokerConfig := range setup.Jokers {
		def, err := find(s.Catalog, content.KindJoker, jokerConfig.Name)
		if err != nil {
			return err
		}
		joker := r.game.NewJoker(def)
		for _, name := range jokerConfig.Stickers {
			sticker, err := content.ParseStickerType(name)
			if err != nil {
				return err
			}
			joker.AddSticker(sticker)
		}
		p.Jokers = append(p.Jokers, joker)
	}
	inventories := []struct {
		kind  content.Kind
		names []string
		cards *[]*content.Consumable
	}{
		{content.KindTarot, setup.TarotCards, &p.TarotCards},
		{content.KindSpectral, setup.SpectralCards, &p.SpectralCards},
		{content.KindPlanet, setup.PlanetCards, &p.PlanetCards},
	}
	for _, inventory := range inventories {
		for _, name := range inventory.names {
			def, err := find(s.Catalog, inventory.kind, name)
			if err != nil {
				return err
			}
			*inventory.cards = append(*inventory.cards, content.NewConsumable(def))
		}
	}
	for _, name := range setup.Vouchers {
		def, err := find(s.Catalog, content.KindVoucher, name)
		if err != nil {
			return err
		}
		voucher := content.NewVoucher(def)
		p.Vouchers = append(p.Vouchers, voucher)
		r.game.Dispatcher().ApplyVoucher(s, voucher, true)
	}
	return nil
}

func (r *scriptRunner) runStep(stepNum int, step gamescript.Step) error {
	var outcome game.Outcome
	var err error
	g := r.game
	switch {
	case step.Play != nil:
		var indices []int
		if indices, err = r.indices(step.Play); err != nil {
			return fmt.Errorf("Step %d: %v", stepNum, err)
		}
		outcome, err = g.Play(indices)
	case step.Discard != nil:
		var indices []int
		if indices, err = r.indices(step.Discard); err != nil {
			return fmt.Errorf("Step %d: %v", stepNum, err)
		}
		outcome, err = g.Discard(indices)
	case step.Use != nil:
		var targets []int
		if targets, err = r.indices(step.Use.Targets); err != nil {
			return fmt.Errorf("Step %d: %v", stepNum, err)
		}
		switch step.Use.Kind {
		case "tarot":
			outcome, err = g.UseTarot(step.Use.Index, targets)
		case "spectral":
			outcome, err = g.UseSpectral(step.Use.Index, targets)
		case "planet":
			outcome, err = g.UsePlanet(step.Use.Index)
		}
	case step.Sort != "":
		outcome, err = g.SortHand(step.Sort)
	case step.OpenShop:
		for _, item := range g.OpenShop().Items {
			outcome.Lines = append(outcome.Lines, item.String())
		}
	case step.Buy != nil:
		outcome, err = g.Buy(*step.Buy)
	case step.EndOfRound:
		outcome.Lines = g.EndOfRoundEffects()
	case step.AdvanceBlind:
		outcome.Lines = g.AdvanceBlind()
	}

	if step.Error != "" {
		if err == nil {
			r.result.addError(fmt.Errorf("Step %d: expected error [%s] but the action succeeded", stepNum, step.Error))
		} else if err.Error() != step.Error {
			r.result.addError(fmt.Errorf("Step %d: expected error [%s] actual [%s]", stepNum, step.Error, err.Error()))
		}
	} else if err != nil {
		return fmt.Errorf("Step %d failed: %v", stepNum, err)
	}

	if step.Verify != nil {
		r.verify(stepNum, step.Verify, outcome)
	}
	return nil
}

// indices resolves card codes to positions in the current hand.
func (r *scriptRunner) indices(codes []string) ([]int, error) {
	indices := make([]int, 0, len(codes))
	hand := r.game.State().Player.Hand
	for _, code := range codes {
		card, err := poker.ParseCard(code)
		if err != nil {
			return nil, err
		}
		index := -1
		for i, c := range hand {
			if c.Suit == card.Suit && c.Rank == card.Rank {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("Card %s is not in hand %s", code, poker.CardsToString(hand))
		}
		indices = append(indices, index)
	}
	return indices, nil
}

func (r *scriptRunner) verify(stepNum int, verify *gamescript.Verify, outcome game.Outcome) {
	s := r.game.State()
	p := s.Player
	checkInt := func(what string, expected *int, actual int) {
		if expected != nil && *expected != actual {
			r.result.addError(fmt.Errorf("Step %d: %s does not match. Expected: %d actual: %d", stepNum, what, *expected, actual))
		}
	}
	checkInt("Score", verify.Score, p.Score)
	checkInt("Money", verify.Money, p.Money)
	checkInt("Hands", verify.Hands, p.Hands)
	checkInt("Discards", verify.Discards, p.Discards)
	checkInt("Hand size", verify.HandSize, len(p.Hand))
	checkInt("Deck remaining", verify.DeckRemaining, s.Deck.Remaining())
	checkInt("Ante", verify.Ante, s.Ante())
	checkInt("Round", verify.Round, s.Round)

	if verify.Blind != "" && verify.Blind != s.Blinds.Current().Name {
		r.result.addError(fmt.Errorf("Step %d: Blind does not match. Expected: %s actual: %s", stepNum, verify.Blind, s.Blinds.Current().Name))
	}
	if verify.GameOver != nil && *verify.GameOver != s.GameOver() {
		r.result.addError(fmt.Errorf("Step %d: Game over does not match. Expected: %v actual: %v", stepNum, *verify.GameOver, s.GameOver()))
	}

	if verify.Jokers != nil {
		var names []string
		for _, j := range p.Jokers {
			names = append(names, j.Name)
		}
		if strings.Join(names, ",") != strings.Join(verify.Jokers, ",") {
			r.result.addError(fmt.Errorf("Step %d: Jokers do not match. Expected: %v actual: %v", stepNum, verify.Jokers, names))
		}
	}
	if verify.DebuffedJokers != nil {
		var names []string
		for _, j := range p.Jokers {
			if j.Debuffed {
				names = append(names, j.Name)
			}
		}
		if strings.Join(names, ",") != strings.Join(verify.DebuffedJokers, ",") {
			r.result.addError(fmt.Errorf("Step %d: Debuffed jokers do not match. Expected: %v actual: %v", stepNum, verify.DebuffedJokers, names))
		}
	}

	for _, expected := range verify.Lines {
		found := false
		for _, line := range outcome.Lines {
			if strings.Contains(line, expected) {
				found = true
				break
			}
		}
		if !found {
			r.result.addError(fmt.Errorf("Step %d: Output does not contain [%s]. Output: %v", stepNum, expected, outcome.Lines))
		}
	}
}

func parseCards(codes []string) ([]*poker.Card, error) {
	cards := make([]*poker.Card, 0, len(codes))
	for _, code := range codes {
		card, err := poker.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func find(catalog *content.Catalog, kind content.Kind, name string) (content.Definition, error) {
	def, ok := catalog.Find(kind, name)
	if !ok {
		return content.Definition{}, fmt.Errorf("Unknown %s [%s]", kind, name)
	}
	return def, nil
}
