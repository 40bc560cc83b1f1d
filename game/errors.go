package game

import "fmt"

const (
	ErrMsgGameOver         = "The game is over"
	ErrMsgNoDiscards       = "No discards remaining!"
	ErrMsgNoHands          = "No hands remaining!"
	ErrMsgNoCardsSelected  = "No cards selected"
	ErrMsgTooManyCards     = "You can select at most %d cards"
	ErrMsgInvalidCardIndex = "Invalid card index %d"
	ErrMsgDuplicateIndices = "Duplicate card indices"
	ErrMsgInvalidTarot     = "Invalid Tarot card index"
	ErrMsgInvalidSpectral  = "Invalid Spectral card index"
	ErrMsgInvalidPlanet    = "Invalid Planet card index"
	ErrMsgTargetsRequired  = "%s requires %d selected card(s)"
	ErrMsgInvalidShopItem  = "Invalid item index"
	ErrMsgNotEnoughMoney   = "Not enough money to purchase this item"
	ErrMsgNoRoom           = "No room for %s"
	ErrMsgInvalidSort      = "Invalid sort type [%s]"
)

// ValidationError rejects a player request. The game state is unchanged when it is returned.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...interface{}) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err rejected a request without touching state.
func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

type GameNotFoundError struct {
	GameID string
}

func (e GameNotFoundError) Error() string {
	return fmt.Sprintf("Game state for Game: %s is not found", e.GameID)
}
