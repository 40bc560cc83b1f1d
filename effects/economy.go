package effects

import (
	"fmt"
	"strings"

	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/util"
)

const (
	ActionDoubleMoney      = "double_money"
	ActionAddMoney         = "add_money"
	ActionTemperance       = "temperance"
	ActionAddPlanetCards   = "add_planet_cards"
	ActionAddTarotCards    = "add_tarot_cards"
	ActionAddSpectralCards = "add_spectral_cards"
	ActionWheelOfFortune   = "wheel_of_fortune"
	ActionAddRandomJoker   = "add_random_joker"
	ActionFool             = "fool"
	ActionLevelUpHand      = "level_up_hand"
	ActionBlackHole        = "black_hole"

	DefaultMoneyCap = 20
)

func (r *Registry) registerEconomyActions() {
	r.Register(ActionDoubleMoney, doubleMoney)
	r.Register(ActionAddMoney, addMoney)
	r.Register(ActionTemperance, temperance)
	r.Register(ActionAddPlanetCards, r.addConsumables(content.KindPlanet))
	r.Register(ActionAddTarotCards, r.addConsumables(content.KindTarot))
	r.Register(ActionAddSpectralCards, r.addConsumables(content.KindSpectral))
	r.Register(ActionWheelOfFortune, wheelOfFortune)
	r.Register(ActionAddRandomJoker, r.addRandomJoker)
	r.Register(ActionFool, fool)
	r.Register(ActionLevelUpHand, levelUpHand)
	r.Register(ActionBlackHole, blackHole)
}

// doubleMoney sets money to min(money x 2, cap). A debt is left as it is.
func doubleMoney(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	limit := params.Int("cap", DefaultMoneyCap)
	if s.Player.Money > 0 {
		s.Player.Money = util.MinInt(s.Player.Money*2, limit)
	}
	return fmt.Sprintf("money is now $%d", s.Player.Money), nil
}

func addMoney(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	amount := params.Int("amount", 0)
	s.Player.Money += amount
	return fmt.Sprintf("gained $%d", amount), nil
}

// sellValue is half the cost of a joker, at least $1.
func sellValue(j *content.Joker) int {
	return util.MaxInt(1, j.Cost/2)
}

func temperance(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	total := 0
	for _, j := range s.Player.Jokers {
		total += sellValue(j)
	}
	total = util.MinInt(total, params.Int("cap", 50))
	s.Player.Money += total
	return fmt.Sprintf("gained $%d", total), nil
}

// addConsumables samples distinct cards of a kind into the inventory. Cards that do not fit
// and need no target are used immediately, the rest are lost.
func (r *Registry) addConsumables(kind content.Kind) Action {
	return func(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
		picked := sample(s, s.Catalog.Pool(kind), params.Int("count", 1))
		var added, used, lost []string
		for _, def := range picked {
			if s.Player.AddConsumable(content.NewConsumable(def)) {
				added = append(added, def.Name)
				continue
			}
			if def.Targets > 0 {
				lost = append(lost, def.Name)
				continue
			}
			desc, err := r.Dispatch(s, def, nil)
			if err != nil {
				lost = append(lost, def.Name)
				continue
			}
			used = append(used, desc)
		}
		return describeAdded(kind, added, used, lost), nil
	}
}

func describeAdded(kind content.Kind, added, used, lost []string) string {
	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("added %s", strings.Join(added, ", ")))
	}
	if len(used) > 0 {
		parts = append(parts, fmt.Sprintf("no room, used immediately: %s", strings.Join(used, "; ")))
	}
	if len(lost) > 0 {
		parts = append(parts, fmt.Sprintf("no room for %s", strings.Join(lost, ", ")))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("no %s cards available", kind)
	}
	return strings.Join(parts, "; ")
}

func wheelOfFortune(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireJokers(s, ActionWheelOfFortune); err != nil {
		return "", err
	}
	if s.Rand.Float64() >= params.Float("chance", 0.25) {
		return "Nope!", nil
	}
	j := s.Player.Jokers[s.Rand.Intn(len(s.Player.Jokers))]
	j.Edition = randomEdition(s)
	return fmt.Sprintf("%s became %s", j.Name, j.Edition), nil
}

func (r *Registry) newJoker(s *game.State, pool []content.Definition) (*content.Joker, bool) {
	if len(pool) == 0 {
		return nil, false
	}
	j := content.NewJoker(pool[s.Rand.Intn(len(pool))])
	r.BindJoker(j)
	return j, true
}

// addJokerFrom adds a random joker of the pool when a slot is free.
func (r *Registry) addJokerFrom(s *game.State, pool []content.Definition, what string) string {
	if s.JokerSlotsFree() == 0 {
		return "no room for another Joker"
	}
	j, ok := r.newJoker(s, pool)
	if !ok {
		return fmt.Sprintf("no %s available", what)
	}
	s.AddJoker(j)
	return fmt.Sprintf("created %s", j.Name)
}

func (r *Registry) addRandomJoker(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	return r.addJokerFrom(s, s.Catalog.Pool(content.KindJoker), "Jokers"), nil
}

// fool recreates the last Tarot or Planet card used.
func fool(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if s.LastUsedCard == nil {
		return "", game.ValidationError{Msg: "No Tarot or Planet card has been used yet"}
	}
	card := content.NewConsumable(s.LastUsedCard.Definition)
	if !s.Player.AddConsumable(card) {
		return "", game.ValidationError{Msg: "No room for more consumables"}
	}
	return fmt.Sprintf("created %s", card.Name), nil
}

// handName normalizes a hand name to the key used by the scoring bonuses.
func handName(name string) string {
	if h, err := poker.ParseHandCategory(name); err == nil {
		return h.String()
	}
	return name
}

func levelUpHand(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	hand := params.String("hand", "")
	if hand == "" {
		return "", fmt.Errorf("level_up_hand requires a hand")
	}
	hand = handName(hand)
	chips := params.Int("chips", 0)
	mult := params.Int("mult", 0)
	s.Player.HandBonuses.Add(hand, chips, mult)
	return fmt.Sprintf("%s leveled up: +%d Chips, +%d Mult", hand, chips, mult), nil
}

// blackHole levels every poker hand, including the hands only planets name.
func blackHole(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	chips := params.Int("chips", 10)
	mult := params.Int("mult", 1)
	for _, h := range poker.AllHandCategories {
		s.Player.HandBonuses.Add(h.String(), chips, mult)
	}
	s.Player.HandBonuses.Add(poker.FlushHouseName, chips, mult)
	s.Player.HandBonuses.Add(poker.FlushFiveName, chips, mult)
	return fmt.Sprintf("every poker hand gained +%d Chips, +%d Mult", chips, mult), nil
}
