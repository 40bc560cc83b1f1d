package effects

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/logging"
	"voyager.com/roguepoker/poker"
)

var registryLogger = log.With().Str("logger_name", "effects::registry").Logger()

// Action mutates the state for a used card and describes what happened.
// An Action that returns an error must not have mutated anything.
type Action func(s *game.State, selected []*poker.Card, params content.Params) (string, error)

// JokerBehaviour is the scoring contribution bound to a joker instance.
type JokerBehaviour struct {
	Chips content.ChipsFunc
	Mult  content.MultFunc
}

// VoucherEffect applies a voucher. PerRound effects are applied again at every blind.
type VoucherEffect struct {
	Apply    func(s *game.State) string
	PerRound bool
}

// Registry resolves card actions, joker behaviours and voucher effects by name.
type Registry struct {
	actions  map[string]Action
	jokers   map[string]JokerBehaviour
	vouchers map[string]VoucherEffect
}

// NewRegistry returns a registry with every built-in action registered.
func NewRegistry() *Registry {
	r := &Registry{
		actions:  make(map[string]Action),
		jokers:   make(map[string]JokerBehaviour),
		vouchers: make(map[string]VoucherEffect),
	}
	r.registerCardActions()
	r.registerEconomyActions()
	r.registerSpectralActions()
	r.registerJokerBehaviours()
	r.registerVoucherEffects()
	return r
}

func (r *Registry) Register(name string, action Action) {
	r.actions[name] = action
}

func (r *Registry) RegisterJoker(key string, behaviour JokerBehaviour) {
	r.jokers[key] = behaviour
}

func (r *Registry) RegisterVoucher(action string, effect VoucherEffect) {
	r.vouchers[action] = effect
}

func (r *Registry) Lookup(name string) (Action, bool) {
	action, ok := r.actions[name]
	return action, ok
}

// Actions lists the registered action names in sorted order.
func (r *Registry) Actions() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the action named by the definition. Unknown actions leave the state untouched.
func (r *Registry) Dispatch(s *game.State, def content.Definition, selected []*poker.Card) (string, error) {
	action, ok := r.actions[def.Action]
	if !ok {
		registryLogger.Debug().
			Str(logging.CardNameKey, def.Name).
			Str(logging.ActionKey, def.Action).
			Msg("No action registered")
		return game.FallbackDescription(def), nil
	}
	desc, err := action(s, selected, def.Params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s used: %s", def.Name, desc), nil
}

// BindJoker attaches the behaviour named by the joker's action. Unknown keys behave as flat jokers.
func (r *Registry) BindJoker(j *content.Joker) {
	behaviour, ok := r.jokers[j.Action]
	if !ok {
		behaviour = r.jokers[JokerFlat]
	}
	j.Bind(behaviour.Chips, behaviour.Mult)
}

// ApplyVoucher applies a voucher effect. One-off effects only run on purchase.
func (r *Registry) ApplyVoucher(s *game.State, v *content.Voucher, purchased bool) string {
	effect, ok := r.vouchers[v.Action]
	if !ok {
		return v.Description
	}
	if !purchased && !effect.PerRound {
		return ""
	}
	return effect.Apply(s)
}

func requireCount(selected []*poker.Card, n int, name string) error {
	if len(selected) != n {
		return game.ValidationError{Msg: fmt.Sprintf("%s requires exactly %d selected card(s)", name, n)}
	}
	return nil
}

func requireSelection(selected []*poker.Card, name string) error {
	if len(selected) == 0 {
		return game.ValidationError{Msg: fmt.Sprintf("%s requires selected cards", name)}
	}
	return nil
}

func requireJokers(s *game.State, name string) error {
	if len(s.Player.Jokers) == 0 {
		return game.ValidationError{Msg: fmt.Sprintf("%s requires at least one Joker", name)}
	}
	return nil
}

var randomEditions = []poker.Edition{poker.EditionFoil, poker.EditionHolographic, poker.EditionPolychrome}

func randomEdition(s *game.State) poker.Edition {
	return randomEditions[s.Rand.Intn(len(randomEditions))]
}

// sample picks up to count distinct definitions from pool.
func sample(s *game.State, pool []content.Definition, count int) []content.Definition {
	if count > len(pool) {
		count = len(pool)
	}
	picked := make([]content.Definition, 0, count)
	for _, i := range s.Rand.Perm(len(pool))[:count] {
		picked = append(picked, pool[i])
	}
	return picked
}
