package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/poker"
)

var (
	redSuit   = color.New(color.FgRed, color.Bold)
	blackSuit = color.New(color.FgHiWhite, color.Bold)
	modifier  = color.New(color.FgCyan)
	heading   = color.New(color.FgYellow, color.Bold)
	failure   = color.New(color.FgRed)
)

func renderCard(c *poker.Card) string {
	suit := blackSuit
	if c.IsRed() {
		suit = redSuit
	}
	s := suit.Sprint(c.PrettyCode())
	if mods := c.Modifiers(); len(mods) > 0 {
		s += modifier.Sprintf(" (%s)", strings.Join(mods, ", "))
	}
	return s
}

func renderConsumables(w io.Writer, title string, cards []*content.Consumable) {
	if len(cards) == 0 {
		return
	}
	fmt.Fprintln(w, heading.Sprint(title))
	for i, c := range cards {
		fmt.Fprintf(w, "  %d: %s\n", i, c)
	}
}

func renderGame(w io.Writer, g *game.Game) {
	s := g.State()
	p := s.Player
	blind := s.Blinds.Current()

	fmt.Fprintln(w, heading.Sprintf("Ante %d, Round %d - %s (score %d/%d)", s.Ante(), s.Round, blind.Name, p.Score, blind.ScoreRequired))
	fmt.Fprintf(w, "Hands: %d  Discards: %d  Money: $%d  Deck: %d cards\n", p.Hands, p.Discards, p.Money, s.Deck.Remaining())
	if len(p.Jokers) > 0 {
		fmt.Fprintln(w, heading.Sprint("Jokers"))
		for _, j := range p.Jokers {
			fmt.Fprintf(w, "  %s\n", j)
		}
	}
	renderConsumables(w, "Tarot", p.TarotCards)
	renderConsumables(w, "Spectral", p.SpectralCards)
	renderConsumables(w, "Planet", p.PlanetCards)

	fmt.Fprintln(w, heading.Sprintf("Hand (sorted by %s)", p.SortBy))
	for i, c := range p.Hand {
		fmt.Fprintf(w, "  %d: %s\n", i, renderCard(c))
	}
}

func renderShop(w io.Writer, shop *game.Shop) {
	if shop == nil || len(shop.Items) == 0 {
		fmt.Fprintln(w, "The shop is empty.")
		return
	}
	fmt.Fprintln(w, heading.Sprint("Shop"))
	for i, item := range shop.Items {
		fmt.Fprintf(w, "  %d: %s\n", i, item)
	}
}

func renderLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
