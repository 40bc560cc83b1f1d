package game

import (
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/config"
)

var blindLogger = log.With().Str("logger_name", "game::blinds").Logger()

const (
	BlindState__SMALL     = "small_blind"
	BlindState__BIG       = "big_blind"
	BlindState__BOSS      = "boss_blind"
	BlindState__GAME_OVER = "game_over"

	BlindEvent__CLEAR = "clear"
	BlindEvent__FAIL  = "fail"
)

var blindStates = []string{BlindState__SMALL, BlindState__BIG, BlindState__BOSS}

// Blind is the current scoring target.
type Blind struct {
	Name          string
	ScoreRequired int
}

// Blinds tracks the Small -> Big -> Boss progression and the ante.
type Blinds struct {
	sm    *fsm.FSM
	rules *config.Rules
	ante  int
	// blind index kept once the game is over
	lastIndex int
}

func NewBlinds(rules *config.Rules) *Blinds {
	return restoreBlinds(rules, 0, 1, false)
}

func restoreBlinds(rules *config.Rules, index int, ante int, gameOver bool) *Blinds {
	if index < 0 || index >= len(blindStates) {
		index = 0
	}
	if ante < 1 {
		ante = 1
	}
	b := &Blinds{rules: rules, ante: ante}
	b.sm = fsm.NewFSM(
		blindStates[index],
		fsm.Events{
			{
				Name: BlindEvent__CLEAR,
				Src:  []string{BlindState__SMALL},
				Dst:  BlindState__BIG,
			},
			{
				Name: BlindEvent__CLEAR,
				Src:  []string{BlindState__BIG},
				Dst:  BlindState__BOSS,
			},
			{
				Name: BlindEvent__CLEAR,
				Src:  []string{BlindState__BOSS},
				Dst:  BlindState__SMALL,
			},
			{
				Name: BlindEvent__FAIL,
				Src:  []string{BlindState__SMALL, BlindState__BIG, BlindState__BOSS},
				Dst:  BlindState__GAME_OVER,
			},
		},
		fsm.Callbacks{
			"after_" + BlindEvent__CLEAR: func(e *fsm.Event) { b.afterClear(e) },
		},
	)
	if gameOver {
		b.lastIndex = index
		b.sm.SetState(BlindState__GAME_OVER)
	}
	return b
}

func (b *Blinds) afterClear(e *fsm.Event) {
	if e.Src == BlindState__BOSS {
		b.ante++
	}
	blindLogger.Debug().
		Str("from", e.Src).
		Str("to", e.Dst).
		Int("ante", b.ante).
		Msg("Blind cleared")
}

// Index is 0, 1 or 2 for the Small, Big and Boss blind. After a loss it is the blind that was failed.
func (b *Blinds) Index() int {
	for i, s := range blindStates {
		if b.sm.Current() == s {
			return i
		}
	}
	return b.lastIndex
}

func (b *Blinds) Ante() int {
	return b.ante
}

func (b *Blinds) State() string {
	return b.sm.Current()
}

func (b *Blinds) GameOver() bool {
	return b.sm.Current() == BlindState__GAME_OVER
}

func (b *Blinds) Current() Blind {
	index := b.Index()
	return Blind{
		Name:          b.rules.Blinds[index].Name,
		ScoreRequired: b.rules.ScoreRequired(index, b.ante),
	}
}

// Clear advances to the next blind. It returns true when the Boss blind was cleared and the ante went up.
func (b *Blinds) Clear() (bool, error) {
	ante := b.ante
	err := b.sm.Event(BlindEvent__CLEAR)
	if err != nil {
		return false, fmt.Errorf("unable to clear blind in state %s: %v", b.sm.Current(), err)
	}
	return b.ante > ante, nil
}

// Fail ends the game on the current blind.
func (b *Blinds) Fail() error {
	b.lastIndex = b.Index()
	err := b.sm.Event(BlindEvent__FAIL)
	if err != nil {
		return fmt.Errorf("unable to fail blind in state %s: %v", b.sm.Current(), err)
	}
	return nil
}
