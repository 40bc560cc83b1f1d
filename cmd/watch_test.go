package cmd

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"voyager.com/roguepoker/game"
)

func TestFormatEvent(t *testing.T) {
	color.NoColor = true
	e := &game.Event{
		Type:      game.EventHandPlayed,
		GameID:    "g1",
		Ante:      1,
		Round:     1,
		Blind:     "Small Blind",
		Hand:      "Pair",
		Score:     76,
		Money:     4,
		Timestamp: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "10:30:00 hand_played [g1] ante 1 round 1 Small Blind hand: Pair score: 76 money: $4", formatEvent(e))

	e.Hand = ""
	e.Card = "Pluto"
	assert.Contains(t, formatEvent(e), "card: Pluto score: 76")
}

func TestWatchRequiresNatsURL(t *testing.T) {
	t.Setenv("NATS_URL", "")
	_, err := runCommand(t, "watch")
	assert.EqualError(t, err, "No NATS server. Use --nats-url or set NATS_URL.")
}
