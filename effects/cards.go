package effects

import (
	"fmt"
	"strings"

	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
)

const (
	ActionApplyEnhancement = "apply_enhancement"
	ActionApplyEdition     = "apply_edition"
	ActionApplySeal        = "apply_seal"
	ActionConvertSuit      = "convert_suit"
	ActionIncreaseRank     = "increase_rank"
	ActionDestroy          = "destroy"
	ActionTransform        = "transform"
	ActionCryptid          = "cryptid"
	ActionSigil            = "sigil"
)

func (r *Registry) registerCardActions() {
	r.Register(ActionApplyEnhancement, applyEnhancement)
	r.Register(ActionApplyEdition, applyEdition)
	r.Register(ActionApplySeal, applySeal)
	r.Register(ActionConvertSuit, convertSuit)
	r.Register(ActionIncreaseRank, increaseRank)
	r.Register(ActionDestroy, destroy)
	r.Register(ActionTransform, transform)
	r.Register(ActionCryptid, cryptid)
	r.Register(ActionSigil, sigil)
}

func describeCards(cards []*poker.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

func applyEnhancement(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionApplyEnhancement); err != nil {
		return "", err
	}
	enhancement, err := poker.ParseEnhancement(params.String("enhancement", ""))
	if err != nil {
		return "", err
	}
	for _, c := range selected {
		c.Enhancement = enhancement
	}
	return fmt.Sprintf("enhanced to %s: %s", enhancement, describeCards(selected)), nil
}

// applyEdition accepts an edition name or "random" for Foil, Holographic or Polychrome per card.
func applyEdition(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionApplyEdition); err != nil {
		return "", err
	}
	name := params.String("edition", "random")
	var edition poker.Edition
	if !strings.EqualFold(name, "random") {
		var err error
		if edition, err = poker.ParseEdition(name); err != nil {
			return "", err
		}
	}
	for _, c := range selected {
		if strings.EqualFold(name, "random") {
			c.Edition = randomEdition(s)
		} else {
			c.Edition = edition
		}
	}
	return "edition applied: " + describeCards(selected), nil
}

func applySeal(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionApplySeal); err != nil {
		return "", err
	}
	seal, err := poker.ParseSeal(params.String("seal", ""))
	if err != nil {
		return "", err
	}
	for _, c := range selected {
		c.Seal = seal
	}
	return fmt.Sprintf("%s Seal added: %s", seal, describeCards(selected)), nil
}

func convertSuit(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionConvertSuit); err != nil {
		return "", err
	}
	suit, err := poker.ParseSuit(params.String("suit", ""))
	if err != nil {
		return "", err
	}
	for _, c := range selected {
		c.Suit = suit
	}
	return fmt.Sprintf("converted to %s: %s", suit, describeCards(selected)), nil
}

func increaseRank(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionIncreaseRank); err != nil {
		return "", err
	}
	for _, c := range selected {
		c.Rank = c.Rank.Next()
	}
	return "rank increased: " + describeCards(selected), nil
}

func destroy(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireSelection(selected, ActionDestroy); err != nil {
		return "", err
	}
	desc := describeCards(selected)
	s.Player.RemoveFromHand(selected...)
	return "destroyed " + desc, nil
}

// transform copies the first selected card onto the second, then removes the first.
func transform(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireCount(selected, 2, ActionTransform); err != nil {
		return "", err
	}
	src, dst := selected[0], selected[1]
	dst.CopyFrom(src)
	s.Player.RemoveFromHand(src)
	return "converted a card into " + dst.String(), nil
}

// cryptid adds count copies of the selected card to the hand.
func cryptid(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	if err := requireCount(selected, 1, ActionCryptid); err != nil {
		return "", err
	}
	count := params.Int("count", 2)
	for i := 0; i < count; i++ {
		s.Player.Hand = append(s.Player.Hand, selected[0].Clone())
	}
	s.Player.SortHand()
	return fmt.Sprintf("created %d copies of %s", count, selected[0]), nil
}

func sigil(s *game.State, selected []*poker.Card, params content.Params) (string, error) {
	suit := poker.AllSuits[s.Rand.Intn(len(poker.AllSuits))]
	for _, c := range s.Player.Hand {
		c.Suit = suit
	}
	s.Player.SortHand()
	return fmt.Sprintf("every card in hand is now %s", suit), nil
}
