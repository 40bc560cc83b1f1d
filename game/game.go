package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/logging"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/util"
	"voyager.com/roguepoker/util/random"
)

var gameLogger = log.With().Str("logger_name", "game::game").Logger()

// Dispatcher applies the effect of a used card. It is implemented by the effects registry.
type Dispatcher interface {
	Dispatch(s *State, def content.Definition, selected []*poker.Card) (string, error)
	BindJoker(j *content.Joker)
	// ApplyVoucher applies a voucher. One-off effects only run when purchased is true.
	ApplyVoucher(s *State, v *content.Voucher, purchased bool) string
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(s *State, def content.Definition, selected []*poker.Card) (string, error) {
	return FallbackDescription(def), nil
}

func (nopDispatcher) BindJoker(j *content.Joker) {}

func (nopDispatcher) ApplyVoucher(s *State, v *content.Voucher, purchased bool) string {
	return fmt.Sprintf("%s: %s", v.Name, v.Description)
}

// FallbackDescription is the message of a card whose action is not known.
func FallbackDescription(def content.Definition) string {
	return fmt.Sprintf("%s used: %s (effect not yet implemented)", def.Name, def.Description)
}

// Outcome carries the human readable lines produced by an operation.
type Outcome struct {
	Lines []string
}

func (o *Outcome) add(format string, args ...interface{}) {
	o.Lines = append(o.Lines, fmt.Sprintf(format, args...))
}

type options struct {
	source     rand.Source
	dispatcher Dispatcher
	rules      *config.Rules
	catalog    *content.Catalog
	deckType   DeckType
	gameID     string
	listener   EventListener
}

type Option func(*options)

func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.source = src }
}

// WithDispatcher sets the card and joker behaviours. Without it every consumable
// only reports FallbackDescription and jokers score as flat bonuses.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

func WithRules(r *config.Rules) Option {
	return func(o *options) { o.rules = r }
}

func WithCatalog(c *content.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

func WithDeckType(d DeckType) Option {
	return func(o *options) { o.deckType = d }
}

func WithGameID(id string) Option {
	return func(o *options) { o.gameID = id }
}

func WithEventListener(l EventListener) Option {
	return func(o *options) { o.listener = l }
}

func buildOptions(opts []Option) *options {
	o := &options{deckType: DeckBase}
	for _, opt := range opts {
		opt(o)
	}
	if o.source == nil {
		o.source = random.NewSource(0)
	}
	if o.dispatcher == nil {
		o.dispatcher = nopDispatcher{}
	}
	if o.rules == nil {
		o.rules = config.DefaultRules()
	}
	if o.catalog == nil {
		o.catalog = content.MustLoadCatalog()
	}
	if o.gameID == "" {
		o.gameID = uuid.New().String()
	}
	return o
}

// Game is one single-player run. It is not safe for concurrent use.
type Game struct {
	state      *State
	dispatcher Dispatcher
	listener   EventListener
	shop       *Shop
	logger     zerolog.Logger
}

// New starts a run: a shuffled deck, the starting resources of the chosen deck and a drawn hand.
// Pass WithDispatcher(effects.NewRegistry()) for a playable game; the default dispatcher changes nothing.
func New(opts ...Option) *Game {
	o := buildOptions(opts)
	rnd := rand.New(o.source)
	s := &State{
		GameID:   o.gameID,
		DeckType: o.deckType,
		Player:   newPlayer(o.rules),
		Deck:     poker.NewDeck(rnd),
		Blinds:   NewBlinds(o.rules),
		Round:    1,
		Rand:     rnd,
		Catalog:  o.catalog,
		Rules:    o.rules,
	}
	applyDeckType(s)

	g := newGame(s, o)
	for _, v := range s.Player.Vouchers {
		g.dispatcher.ApplyVoucher(s, v, false)
	}
	s.DrawHand()

	util.Metrics.NewGame()
	g.logger.Info().
		Str("deck", string(s.DeckType)).
		Msg("New game started")
	g.publish(EventNewGame, nil)
	return g
}

func newGame(s *State, o *options) *Game {
	return &Game{
		state:      s,
		dispatcher: o.dispatcher,
		listener:   o.listener,
		logger: gameLogger.With().
			Str(logging.GameIDKey, s.GameID).
			Logger(),
	}
}

func applyDeckType(s *State) {
	switch s.DeckType {
	case DeckRed:
		s.Player.Discards++
	case DeckGreen:
		s.Player.EarnsInterest = false
	case DeckYellow:
		s.Player.Money += 10
	}
}

func (g *Game) State() *State {
	return g.state
}

func (g *Game) GameID() string {
	return g.state.GameID
}

func (g *Game) Dispatcher() Dispatcher {
	return g.dispatcher
}

// NewJoker instantiates a catalog joker with its behaviour bound.
func (g *Game) NewJoker(def content.Definition) *content.Joker {
	j := content.NewJoker(def)
	g.dispatcher.BindJoker(j)
	return j
}

func (g *Game) String() string {
	s := g.state
	p := s.Player
	blind := s.Blinds.Current()
	return fmt.Sprintf("Game(Ante=%d, round=%d, hands=%d, discards=%d, score=%d, money=%d, current_blind=%s)",
		s.Ante(), s.Round, p.Hands, p.Discards, p.Score, p.Money, blind.Name)
}
