package game

import "time"

const (
	EventNewGame      = "NEW_GAME"
	EventHandPlayed   = "HAND_PLAYED"
	EventDiscarded    = "DISCARDED"
	EventCardUsed     = "CARD_USED"
	EventBlindCleared = "BLIND_CLEARED"
	EventGameOver     = "GAME_OVER"
	EventPurchase     = "PURCHASE"
)

// Event describes a state change of a game for outside listeners.
type Event struct {
	Type      string    `json:"type"`
	GameID    string    `json:"gameId"`
	Ante      int       `json:"ante"`
	Round     int       `json:"round"`
	Blind     string    `json:"blind"`
	Hand      string    `json:"hand,omitempty"`
	Card      string    `json:"card,omitempty"`
	Score     int       `json:"score"`
	Money     int       `json:"money"`
	Timestamp time.Time `json:"timestamp"`
}

type EventListener interface {
	GameEvent(e *Event)
}

func (g *Game) publish(eventType string, fill func(e *Event)) {
	if g.listener == nil {
		return
	}
	s := g.state
	e := &Event{
		Type:      eventType,
		GameID:    s.GameID,
		Ante:      s.Ante(),
		Round:     s.Round,
		Blind:     s.Blinds.Current().Name,
		Score:     s.Player.Score,
		Money:     s.Player.Money,
		Timestamp: time.Now().UTC(),
	}
	if fill != nil {
		fill(e)
	}
	g.listener.GameEvent(e)
}
