package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"voyager.com/roguepoker/poker"
	"voyager.com/roguepoker/scoring"
	"voyager.com/roguepoker/util"
)

var evalCmd = &cobra.Command{
	Use:   "eval <card> [card...]",
	Short: "Evaluate and score up to 5 cards",
	Long: `Eval prints the poker hand formed by the cards and how it scores
without jokers or modifiers. Cards are written as rank and suit.

Examples:
  roguepoker eval 2s 2h 2c 8d Ts
  roguepoker eval As Ks Qs Js Ts`,
	Args: cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards := make([]*poker.Card, 0, len(args))
		for _, arg := range args {
			card, err := poker.ParseCard(arg)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		hand, scored := poker.Evaluate(cards)
		result := scoring.Score(hand, scored, nil, scoring.Context{})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", heading.Sprint(hand), poker.CardsToString(scored))
		renderLines(out, result.Trace)
		fmt.Fprintf(out, "Score: %d\n", util.FloorScore(result.Score))
		return nil
	},
}
