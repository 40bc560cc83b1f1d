package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/logging"
)

var sessionLogger = log.With().Str("logger_name", "cmd::session").Logger()

const sessionHelp = `Commands:
  play <i> [i...]            play up to 5 cards from your hand
  discard <i> [i...]         discard up to 5 cards
  tarot <n> [i...]           use Tarot card n on the selected cards
  spectral <n> [i...]        use Spectral card n on the selected cards
  planet <n>                 use Planet card n
  sort rank|suit|toggle      change the hand order
  shop                       show the shop
  buy <n>                    buy shop item n
  deck                       show the remaining deck
  save <slot>                save the game
  load <slot>                load a saved game
  help                       show this help
  quit                       leave the game`

// session is the interactive command loop around one game.
type session struct {
	g     *game.Game
	store game.PersistGameState
	opts  []game.Option
	out   io.Writer
}

func (s *session) run(in io.Reader) error {
	renderGame(s.out, s.g)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if s.execute(scanner.Text()) {
			return nil
		}
	}
}

// execute runs one command line and reports whether the player quit.
func (s *session) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	var outcome game.Outcome
	var err error
	switch command {
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Thanks for playing!")
		return true
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
		return false
	case "play", "discard":
		var indices []int
		if indices, err = parseIndices(args); err == nil {
			if command == "play" {
				outcome, err = s.g.Play(indices)
			} else {
				outcome, err = s.g.Discard(indices)
			}
		}
	case "tarot", "spectral", "planet":
		if len(args) == 0 {
			err = fmt.Errorf("Usage: %s <n> [i...]", command)
			break
		}
		var indices []int
		if indices, err = parseIndices(args); err == nil {
			switch command {
			case "tarot":
				outcome, err = s.g.UseTarot(indices[0], indices[1:])
			case "spectral":
				outcome, err = s.g.UseSpectral(indices[0], indices[1:])
			default:
				outcome, err = s.g.UsePlanet(indices[0])
			}
		}
	case "sort":
		if len(args) == 1 && args[0] == "toggle" {
			outcome = s.g.ToggleSort()
		} else if len(args) == 1 {
			outcome, err = s.g.SortHand(args[0])
		} else {
			err = fmt.Errorf("Usage: sort rank|suit|toggle")
		}
	case "shop":
		renderShop(s.out, s.g.Shop())
		return false
	case "buy":
		var indices []int
		if indices, err = parseIndices(args); err == nil && len(indices) != 1 {
			err = fmt.Errorf("Usage: buy <n>")
		}
		if err == nil {
			outcome, err = s.g.Buy(indices[0])
		}
	case "deck":
		for _, c := range s.g.RemainingDeck() {
			fmt.Fprintf(s.out, "%s ", renderCard(c))
		}
		fmt.Fprintln(s.out)
		return false
	case "save":
		err = s.save(args)
	case "load":
		err = s.load(args)
	default:
		err = fmt.Errorf("Unknown command [%s]. Type help for the list of commands.", command)
	}

	if err != nil {
		fmt.Fprintln(s.out, failure.Sprint(err.Error()))
		if !game.IsValidationError(err) {
			sessionLogger.Debug().Str(logging.GameIDKey, s.g.GameID()).Msg(fmt.Sprintf("Command [%s] failed: %v", line, err))
		}
		return false
	}
	renderLines(s.out, outcome.Lines)
	renderGame(s.out, s.g)
	if s.g.State().GameOver() {
		fmt.Fprintln(s.out, failure.Sprint("Game over. Load a saved game or quit."))
	}
	return false
}

func (s *session) save(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Usage: save <slot>")
	}
	data, err := s.g.Save()
	if err != nil {
		return err
	}
	if err := s.store.Save(args[0], data); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Game saved to slot %s.\n", args[0])
	return nil
}

func (s *session) load(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Usage: load <slot>")
	}
	data, err := s.store.Load(args[0])
	if err != nil {
		return err
	}
	g, err := game.Load(data, s.opts...)
	if err != nil {
		return err
	}
	s.g = g
	fmt.Fprintf(s.out, "Game loaded from slot %s.\n", args[0])
	return nil
}

func parseIndices(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("Invalid index [%s]", arg)
		}
		indices = append(indices, i)
	}
	return indices, nil
}
