package features

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/effects"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
	"voyager.com/roguepoker/util"
	"voyager.com/roguepoker/util/random"
)

type gameTestContext struct {
	game    *game.Game
	loaded  *game.Game
	saved   []byte
	hand    poker.HandCategory
	scored  []*poker.Card
	score   int
	outcome game.Outcome
	err     error
	acted   bool
	target  *poker.Card
	before  poker.Card
}

func (c *gameTestContext) reset() {
	*c = gameTestContext{}
}

func (c *gameTestContext) aNewGameWithSeed(seed int64) error {
	c.game = game.New(game.WithDispatcher(effects.NewRegistry()), game.WithRandSource(random.NewSource(seed)))
	return nil
}

// thePlayerHasMoney sets the money before any action and checks it afterwards.
func (c *gameTestContext) thePlayerHasMoney(money int) error {
	if !c.acted {
		c.game.State().Player.Money = money
		return nil
	}
	if got := c.game.State().Player.Money; got != money {
		return fmt.Errorf("expected $%d, got $%d", money, got)
	}
	return nil
}

func (c *gameTestContext) theJokerWithASticker(name string, sticker string) error {
	s := c.game.State()
	def, ok := s.Catalog.Find(content.KindJoker, name)
	if !ok {
		return fmt.Errorf("unknown joker %s", name)
	}
	stickerType, err := content.ParseStickerType(sticker)
	if err != nil {
		return err
	}
	joker := c.game.NewJoker(def)
	joker.AddSticker(stickerType)
	if !s.AddJoker(joker) {
		return fmt.Errorf("no room for joker %s", name)
	}
	return nil
}

func parseCards(codes string) ([]*poker.Card, error) {
	var cards []*poker.Card
	for _, code := range strings.Fields(codes) {
		card, err := poker.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (c *gameTestContext) iScoreTheCards(codes string) error {
	cards, err := parseCards(codes)
	if err != nil {
		return err
	}
	c.hand, c.scored = poker.Evaluate(cards)
	result := scoring.Score(c.hand, c.scored, nil, scoring.Context{})
	c.score = util.FloorScore(result.Score)
	return nil
}

func (c *gameTestContext) useTarot(name string, targets []int) error {
	s := c.game.State()
	def, ok := s.Catalog.Find(content.KindTarot, name)
	if !ok {
		return fmt.Errorf("unknown tarot card %s", name)
	}
	s.Player.TarotCards = append(s.Player.TarotCards, content.NewConsumable(def))
	c.acted = true
	c.outcome, c.err = c.game.UseTarot(len(s.Player.TarotCards)-1, targets)
	return c.err
}

func (c *gameTestContext) iUseTheTarotCard(name string) error {
	return c.useTarot(name, nil)
}

func (c *gameTestContext) iUseTheTarotCardOnTheCardAt(name string, index int) error {
	hand := c.game.State().Player.Hand
	if index >= len(hand) {
		return fmt.Errorf("no card at %d", index)
	}
	c.target = hand[index]
	c.before = *hand[index]
	return c.useTarot(name, []int{index})
}

func (c *gameTestContext) theRoundEndsTimes(times int) error {
	c.acted = true
	for i := 0; i < times; i++ {
		c.outcome.Lines = append(c.outcome.Lines, c.game.EndOfRoundEffects()...)
	}
	return nil
}

func (c *gameTestContext) iDiscardTheCardsAt(indices string) error {
	selected := []int{}
	for _, field := range strings.Fields(indices) {
		i, err := strconv.Atoi(field)
		if err != nil {
			return err
		}
		selected = append(selected, i)
	}
	c.acted = true
	c.outcome, c.err = c.game.Discard(selected)
	return nil
}

func (c *gameTestContext) iSaveAndLoadTheGame() error {
	if c.err != nil {
		return c.err
	}
	var err error
	c.saved, err = c.game.Save()
	if err != nil {
		return err
	}
	c.loaded, err = game.Load(c.saved, game.WithDispatcher(effects.NewRegistry()))
	return err
}

func (c *gameTestContext) theHandHasCards(n int) error {
	if got := len(c.game.State().Player.Hand); got != n {
		return fmt.Errorf("expected %d cards in hand, got %d", n, got)
	}
	return nil
}

func (c *gameTestContext) theDeckHasCards(n int) error {
	if got := c.game.State().Deck.Remaining(); got != n {
		return fmt.Errorf("expected %d cards in the deck, got %d", n, got)
	}
	return nil
}

func (c *gameTestContext) thePlayerHasHandsAndDiscards(hands int, discards int) error {
	p := c.game.State().Player
	if p.Hands != hands || p.Discards != discards {
		return fmt.Errorf("expected %d hands and %d discards, got %d and %d", hands, discards, p.Hands, p.Discards)
	}
	return nil
}

func sortedCodes(cards []*poker.Card) []string {
	codes := make([]string, len(cards))
	for i, card := range cards {
		codes[i] = card.Code()
	}
	sort.Strings(codes)
	return codes
}

func (c *gameTestContext) theHandIsScoredWith(hand string, codes string) error {
	if c.hand.String() != hand {
		return fmt.Errorf("expected %s, got %s", hand, c.hand)
	}
	expected, err := parseCards(codes)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(sortedCodes(expected), sortedCodes(c.scored)); diff != "" {
		return fmt.Errorf("scored cards differ: %s", diff)
	}
	return nil
}

func (c *gameTestContext) theScoreIs(score int) error {
	if c.score != score {
		return fmt.Errorf("expected score %d, got %d", score, c.score)
	}
	return nil
}

func (c *gameTestContext) theOutputContains(text string) error {
	for _, line := range c.outcome.Lines {
		if strings.Contains(line, text) {
			return nil
		}
	}
	return fmt.Errorf("output %q does not contain %q", c.outcome.Lines, text)
}

func (c *gameTestContext) theCardAtIsUnchanged(index int) error {
	hand := c.game.State().Player.Hand
	if index >= len(hand) || hand[index] != c.target {
		return fmt.Errorf("the card at %d was replaced", index)
	}
	if diff := cmp.Diff(c.before, *c.target); diff != "" {
		return fmt.Errorf("the card at %d changed: %s", index, diff)
	}
	return nil
}

func (c *gameTestContext) findJoker(name string) (*content.Joker, error) {
	for _, j := range c.game.State().Player.Jokers {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("joker %s not found", name)
}

func (c *gameTestContext) theJokerIsNotDebuffed(name string) error {
	j, err := c.findJoker(name)
	if err != nil {
		return err
	}
	if j.Debuffed {
		return fmt.Errorf("joker %s is debuffed after %d rounds", name, j.RoundsActive)
	}
	return nil
}

func (c *gameTestContext) theJokerIsDebuffed(name string) error {
	j, err := c.findJoker(name)
	if err != nil {
		return err
	}
	if !j.Debuffed {
		return fmt.Errorf("joker %s is not debuffed after %d rounds", name, j.RoundsActive)
	}
	return nil
}

func (c *gameTestContext) aPlayedScores(hand string, score int) error {
	cards := poker.NewCards("As", "Ad")
	category, scored := poker.Evaluate(cards)
	if category.String() != hand {
		return fmt.Errorf("expected %s, got %s", hand, category)
	}
	s := c.game.State()
	result := scoring.Score(category, scored, s.Player.Jokers, s.ScoringContext())
	if got := util.FloorScore(result.Score); got != score {
		return fmt.Errorf("expected score %d, got %d", score, got)
	}
	return nil
}

func (c *gameTestContext) theRequestFailsWith(message string) error {
	if c.err == nil {
		return fmt.Errorf("expected error %q, got success", message)
	}
	if c.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, c.err.Error())
	}
	if !game.IsValidationError(c.err) {
		return fmt.Errorf("expected a validation error, got %T", c.err)
	}
	return nil
}

func (c *gameTestContext) theLoadedGameMatchesTheSavedOne() error {
	again, err := c.loaded.Save()
	if err != nil {
		return err
	}
	if diff := cmp.Diff(string(c.saved), string(again)); diff != "" {
		return fmt.Errorf("loaded game differs: %s", diff)
	}
	if c.loaded.GameID() != c.game.GameID() {
		return fmt.Errorf("expected game %s, got %s", c.game.GameID(), c.loaded.GameID())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &gameTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new game with seed (\d+)$`, tc.aNewGameWithSeed)
	ctx.Step(`^the player has \$(\d+)$`, tc.thePlayerHasMoney)
	ctx.Step(`^the joker "([^"]*)" with a "([^"]*)" sticker$`, tc.theJokerWithASticker)

	// When steps
	ctx.Step(`^I score the cards "([^"]*)"$`, tc.iScoreTheCards)
	ctx.Step(`^I use the tarot card "([^"]*)"$`, tc.iUseTheTarotCard)
	ctx.Step(`^I use the tarot card "([^"]*)" on the card at (\d+)$`, tc.iUseTheTarotCardOnTheCardAt)
	ctx.Step(`^the round ends (\d+) times$`, tc.theRoundEndsTimes)
	ctx.Step(`^I discard the cards at "([^"]*)"$`, tc.iDiscardTheCardsAt)
	ctx.Step(`^I save and load the game$`, tc.iSaveAndLoadTheGame)

	// Then steps
	ctx.Step(`^the hand has (\d+) cards$`, tc.theHandHasCards)
	ctx.Step(`^the deck has (\d+) cards$`, tc.theDeckHasCards)
	ctx.Step(`^the player has (\d+) hands and (\d+) discards$`, tc.thePlayerHasHandsAndDiscards)
	ctx.Step(`^the hand is "([^"]*)" scored with "([^"]*)"$`, tc.theHandIsScoredWith)
	ctx.Step(`^the score is (\d+)$`, tc.theScoreIs)
	ctx.Step(`^the output contains "([^"]*)"$`, tc.theOutputContains)
	ctx.Step(`^the card at (\d+) is unchanged$`, tc.theCardAtIsUnchanged)
	ctx.Step(`^the joker "([^"]*)" is not debuffed$`, tc.theJokerIsNotDebuffed)
	ctx.Step(`^the joker "([^"]*)" is debuffed$`, tc.theJokerIsDebuffed)
	ctx.Step(`^a played "([^"]*)" scores (\d+)$`, tc.aPlayedScores)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^the loaded game matches the saved one$`, tc.theLoadedGameMatchesTheSavedOne)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"roguepoker.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
