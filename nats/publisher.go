package nats

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/logging"
)

var natsLogger = log.With().Str("logger_name", "nats::publisher").Logger()

/**
Every game publishes its events on its own subject.
roguepoker.game.<gameId>.new_game
roguepoker.game.<gameId>.hand_played
roguepoker.game.<gameId>.discarded
roguepoker.game.<gameId>.card_used
roguepoker.game.<gameId>.blind_cleared
roguepoker.game.<gameId>.game_over
roguepoker.game.<gameId>.purchase

Listeners that follow every game subscribe to roguepoker.game.>
*/
const SubjectPrefix = "roguepoker.game"

func EventSubject(gameID string, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, gameID, strings.ToLower(eventType))
}

// GameSubject matches every event of one game.
func GameSubject(gameID string) string {
	return fmt.Sprintf("%s.%s.*", SubjectPrefix, gameID)
}

// AllGamesSubject matches every event of every game.
func AllGamesSubject() string {
	return SubjectPrefix + ".>"
}

// Conn is the part of a NATS connection the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// EventPublisher forwards game events to NATS. It implements game.EventListener.
type EventPublisher struct {
	conn Conn
	nc   *natsgo.Conn
}

func NewEventPublisher(url string) (*EventPublisher, error) {
	nc, err := natsgo.Connect(url)
	if err != nil {
		natsLogger.Error().Msg(fmt.Sprintf("Failed to connect to nats server: %v", err))
		return nil, errors.Wrapf(err, "Error connecting to NATS server [%s]", url)
	}
	return &EventPublisher{conn: nc, nc: nc}, nil
}

func NewEventPublisherWithConn(conn Conn) *EventPublisher {
	return &EventPublisher{conn: conn}
}

// GameEvent publishes the event. Failures are logged and never reach the game.
func (p *EventPublisher) GameEvent(e *game.Event) {
	data, err := jsoniter.Marshal(e)
	if err != nil {
		natsLogger.Error().Str(logging.GameIDKey, e.GameID).Msg(fmt.Sprintf("Failed to encode event %s: %v", e.Type, err))
		return
	}
	subject := EventSubject(e.GameID, e.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		natsLogger.Error().Str(logging.GameIDKey, e.GameID).Msg(fmt.Sprintf("Failed to publish to %s: %v", subject, err))
		return
	}
	natsLogger.Debug().Str(logging.GameIDKey, e.GameID).Msg(fmt.Sprintf("Game->NATS: %s", e.Type))
}

func (p *EventPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// DecodeEvent parses an event payload published by EventPublisher.
func DecodeEvent(data []byte) (*game.Event, error) {
	var e game.Event
	if err := jsoniter.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(err, "Invalid game event")
	}
	return &e, nil
}

// Subscribe calls handler for every event published on subject.
// Payloads that do not decode are logged and dropped.
func Subscribe(nc *natsgo.Conn, subject string, handler func(e *game.Event)) (*natsgo.Subscription, error) {
	sub, err := nc.Subscribe(subject, func(msg *natsgo.Msg) {
		e, err := DecodeEvent(msg.Data)
		if err != nil {
			natsLogger.Warn().Msg(fmt.Sprintf("Dropping message on %s: %v", msg.Subject, err))
			return
		}
		handler(e)
	})
	if err != nil {
		natsLogger.Error().Msg(fmt.Sprintf("Failed to subscribe to %s", subject))
		return nil, errors.Wrapf(err, "Error subscribing to [%s]", subject)
	}
	return sub, nil
}
