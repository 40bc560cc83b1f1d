package effects

import (
	"fmt"

	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/util"
)

const (
	ActionFamiliar    = "familiar"
	ActionGrim        = "grim"
	ActionIncantation = "incantation"
	ActionWraith      = "wraith"
	ActionOuija       = "ouija"
	ActionEctoplasm   = "ectoplasm"
	ActionImmolate    = "immolate"
	ActionAnkh        = "ankh"
	ActionHex         = "hex"
	ActionTheSoul     = "the_soul"
)

func (r *Registry) registerSpectralActions() {
	r.Register(ActionFamiliar, replaceWithEnhanced(3, poker.FaceRanks, "face cards"))
	r.Register(ActionGrim, replaceWithEnhanced(2, []poker.Rank{poker.Ace}, "Aces"))
	r.Register(ActionIncantation, replaceWithEnhanced(4, poker.NumberedRanks, "numbered cards"))
	r.Register(ActionWraith, r.wraith)
	r.Register(ActionOuija, ouija)
	r.Register(ActionEctoplasm, ectoplasm)
	r.Register(ActionImmolate, immolate)
	r.Register(ActionAnkh, ankh)
	r.Register(ActionHex, hex)
	r.Register(ActionTheSoul, r.theSoul)
}

func removeRandomCard(s *game.State) *poker.Card {
	hand := s.Player.Hand
	if len(hand) == 0 {
		return nil
	}
	c := hand[s.Rand.Intn(len(hand))]
	s.Player.RemoveFromHand(c)
	return c
}

// replaceWithEnhanced destroys one random hand card and adds count random enhanced cards of the given ranks.
func replaceWithEnhanced(count int, ranks []poker.Rank, what string) Action {
	return func(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
		destroyed := removeRandomCard(s)
		added := make([]*poker.Card, count)
		for i := range added {
			added[i] = s.RandomCard(ranks)
		}
		s.Player.Hand = append(s.Player.Hand, added...)
		s.Player.SortHand()
		if destroyed == nil {
			return fmt.Sprintf("added %d enhanced %s: %s", count, what, describeCards(added)), nil
		}
		return fmt.Sprintf("destroyed %s, added %d enhanced %s: %s", destroyed, count, what, describeCards(added)), nil
	}
}

func (r *Registry) wraith(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	desc := r.addJokerFrom(s, s.Catalog.JokersByRarity(content.RarityRare), "Rare Jokers")
	s.Player.Money = 0
	return desc + ", money set to $0", nil
}

func (r *Registry) theSoul(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	return r.addJokerFrom(s, s.Catalog.JokersByRarity(content.RarityLegendary), "Legendary Jokers"), nil
}

func ouija(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	rank := poker.AllRanks[s.Rand.Intn(len(poker.AllRanks))]
	for _, c := range s.Player.Hand {
		c.Rank = rank
	}
	s.Player.HandSize = util.MaxInt(0, s.Player.HandSize-1)
	s.Player.SortHand()
	return fmt.Sprintf("every card in hand is now a %s, hand size %d", rank, s.Player.HandSize), nil
}

// ectoplasm costs one more hand size on every use.
func ectoplasm(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireJokers(s, ActionEctoplasm); err != nil {
		return "", err
	}
	j := s.Player.Jokers[s.Rand.Intn(len(s.Player.Jokers))]
	j.Edition = poker.EditionNegative
	s.Player.HandSize = util.MaxInt(0, s.Player.HandSize-(s.EctoplasmUses+1))
	s.EctoplasmUses++
	return fmt.Sprintf("%s became Negative, hand size %d", j.Name, s.Player.HandSize), nil
}

func immolate(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	hand := s.Player.Hand
	count := util.MinInt(params.Int("count", 5), len(hand))
	doomed := make([]*poker.Card, 0, count)
	for _, i := range s.Rand.Perm(len(hand))[:count] {
		doomed = append(doomed, hand[i])
	}
	s.Player.RemoveFromHand(doomed...)
	money := params.Int("money", 20)
	s.Player.Money += money
	return fmt.Sprintf("destroyed %d cards, gained $%d", len(doomed), money), nil
}

// ankh keeps one random joker and a copy of it. The copy is never Negative.
func ankh(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireJokers(s, ActionAnkh); err != nil {
		return "", err
	}
	j := s.Player.Jokers[s.Rand.Intn(len(s.Player.Jokers))]
	clone := j.Clone()
	if clone.Edition == poker.EditionNegative {
		clone.Edition = poker.EditionNone
	}
	s.Player.Jokers = []*content.Joker{j, clone}
	return fmt.Sprintf("copied %s, every other Joker destroyed", j.Name), nil
}

func hex(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireJokers(s, ActionHex); err != nil {
		return "", err
	}
	j := s.Player.Jokers[s.Rand.Intn(len(s.Player.Jokers))]
	j.Edition = poker.EditionPolychrome
	s.Player.Jokers = []*content.Joker{j}
	return fmt.Sprintf("%s became Polychrome, every other Joker destroyed", j.Name), nil
}
