package effects

import (
	"fmt"

	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
)

// Joker behaviour keys, taken from the joker's action field.
const (
	JokerFlat       = "flat"
	JokerMultiplier = "multiplier"
	JokerChipsOnly  = "chips_only"
)

// Voucher effect keys.
const (
	VoucherConsumableSlot = "add_consumable_slot"
	VoucherHand           = "add_hand"
	VoucherDiscard        = "add_discard"
)

func keepChips(j *content.Joker, chips float64) float64 {
	return chips
}

func keepMult(j *content.Joker, mult float64) float64 {
	return mult
}

func timesMult(j *content.Joker, mult float64) float64 {
	return mult * j.MultMultiplier
}

func (r *Registry) registerJokerBehaviours() {
	r.RegisterJoker(JokerFlat, JokerBehaviour{Chips: content.FlatChips, Mult: content.FlatMult})
	r.RegisterJoker(JokerMultiplier, JokerBehaviour{Chips: keepChips, Mult: timesMult})
	r.RegisterJoker(JokerChipsOnly, JokerBehaviour{Chips: content.FlatChips, Mult: keepMult})
}

func (r *Registry) registerVoucherEffects() {
	r.RegisterVoucher(VoucherConsumableSlot, VoucherEffect{
		Apply: func(s *game.State) string {
			s.Player.ConsumableSlots++
			return fmt.Sprintf("consumable slots: %d", s.Player.ConsumableSlots)
		},
	})
	r.RegisterVoucher(VoucherHand, VoucherEffect{
		Apply: func(s *game.State) string {
			s.Player.Hands++
			return fmt.Sprintf("hands: %d", s.Player.Hands)
		},
		PerRound: true,
	})
	r.RegisterVoucher(VoucherDiscard, VoucherEffect{
		Apply: func(s *game.State) string {
			s.Player.Discards++
			return fmt.Sprintf("discards: %d", s.Player.Discards)
		},
		PerRound: true,
	})
}
