package gamescript

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"voyager.com/roguepoker/poker"
)

// Script contains game script YAML content.
type Script struct {
	Description string `yaml:"description"`
	Disabled    bool   `yaml:"disabled"`
	Game        Game   `yaml:"game"`
	Setup       Setup  `yaml:"setup"`
	Steps       []Step `yaml:"steps"`
}

// Game contains game configuration in the game script.
type Game struct {
	Deck      string `yaml:"deck"`
	Seed      int64  `yaml:"seed"`
	RulesFile string `yaml:"rules-file"`
}

/*
  setup:
    hand: [2s, 2h, 2c, 8d, Ts, Kh, Qd, 4c]
    money: 15
    jokers:
      - Joker
      - Gros Michel, Perishable
    tarot-cards: [The Hermit]
*/
type Setup struct {
	Hand          []string      `yaml:"hand"`
	DeckTop       []string      `yaml:"deck-top"`
	Money         *int          `yaml:"money"`
	Jokers        []JokerConfig `yaml:"jokers"`
	TarotCards    []string      `yaml:"tarot-cards"`
	SpectralCards []string      `yaml:"spectral-cards"`
	PlanetCards   []string      `yaml:"planet-cards"`
	Vouchers      []string      `yaml:"vouchers"`
}

type JokerConfig struct {
	Name     string
	Stickers []string
}

// Custom unmarshaller for joker expression.
// Joker
// Gros Michel, Perishable, Rental
func (j *JokerConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	err := unmarshal(&v)
	if err != nil {
		return err
	}
	expr, ok := v.(string)
	if !ok {
		return fmt.Errorf("Cannot parse joker expression [%v] as string", v)
	}
	tokens := strings.Split(expr, ",")
	j.Name = strings.Trim(tokens[0], " ")
	if j.Name == "" {
		return fmt.Errorf("Invalid joker expression string [%v]. Joker name is missing", v)
	}
	j.Stickers = nil
	for _, token := range tokens[1:] {
		j.Stickers = append(j.Stickers, strings.Trim(token, " "))
	}
	return nil
}

// Step is one player action followed by an optional verification.
// A step without an action only verifies.
type Step struct {
	Play         []string `yaml:"play"`
	Discard      []string `yaml:"discard"`
	Use          *Use     `yaml:"use"`
	Sort         string   `yaml:"sort"`
	OpenShop     bool     `yaml:"open-shop"`
	Buy          *int     `yaml:"buy"`
	EndOfRound   bool     `yaml:"end-of-round"`
	AdvanceBlind bool     `yaml:"advance-blind"`
	Error        string   `yaml:"error"`
	Verify       *Verify  `yaml:"verify"`
}

// Actions returns the names of the actions set on the step.
func (s *Step) Actions() []string {
	var actions []string
	if s.Play != nil {
		actions = append(actions, "play")
	}
	if s.Discard != nil {
		actions = append(actions, "discard")
	}
	if s.Use != nil {
		actions = append(actions, "use")
	}
	if s.Sort != "" {
		actions = append(actions, "sort")
	}
	if s.OpenShop {
		actions = append(actions, "open-shop")
	}
	if s.Buy != nil {
		actions = append(actions, "buy")
	}
	if s.EndOfRound {
		actions = append(actions, "end-of-round")
	}
	if s.AdvanceBlind {
		actions = append(actions, "advance-blind")
	}
	return actions
}

type Use struct {
	Kind    string
	Index   int
	Targets []string
}

// Custom unmarshaller for use expression.
// tarot, 0
// tarot, 1, Ah Kd
func (u *Use) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	var err error
	err = unmarshal(&v)
	if err != nil {
		return err
	}
	expr, ok := v.(string)
	if !ok {
		return fmt.Errorf("Cannot parse use expression [%v] as string", v)
	}
	tokens := strings.Split(expr, ",")
	if len(tokens) != 2 && len(tokens) != 3 {
		return fmt.Errorf("Invalid use expression string [%v]. Need 2 or 3 comma-separated tokens", v)
	}

	trimmed := strings.Trim(tokens[1], " ")
	index, err := strconv.Atoi(trimmed)
	if err != nil {
		return errors.Wrapf(err, "Cannot convert second token [%s] to card index", trimmed)
	}

	u.Kind = strings.ToLower(strings.Trim(tokens[0], " "))
	u.Index = index
	u.Targets = nil
	if len(tokens) == 3 {
		u.Targets = strings.Fields(tokens[2])
	}
	return nil
}

type Verify struct {
	Score          *int     `yaml:"score"`
	Money          *int     `yaml:"money"`
	Hands          *int     `yaml:"hands"`
	Discards       *int     `yaml:"discards"`
	HandSize       *int     `yaml:"hand-size"`
	DeckRemaining  *int     `yaml:"deck-remaining"`
	Ante           *int     `yaml:"ante"`
	Round          *int     `yaml:"round"`
	Blind          string   `yaml:"blind"`
	GameOver       *bool    `yaml:"game-over"`
	Jokers         []string `yaml:"jokers"`
	DebuffedJokers []string `yaml:"debuffed-jokers"`
	Lines          []string `yaml:"lines"`
}

var useKinds = mapset.NewSet("tarot", "spectral", "planet")

func ReadGameScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script file [%s]", fileName)
	}

	script, err := ParseGameScript(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "Error loading game script [%s]", fileName)
	}
	return script, nil
}

func ParseGameScript(data []byte) (*Script, error) {
	var script Script
	err := yaml.Unmarshal(data, &script)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing YAML")
	}

	err = script.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "Error validating script")
	}
	return &script, nil
}

func (s *Script) Validate() error {
	// Check the starting cards are real and unique.
	setupCards := mapset.NewSet()
	for _, code := range append(append([]string{}, s.Setup.Hand...), s.Setup.DeckTop...) {
		if _, err := poker.ParseCard(code); err != nil {
			return fmt.Errorf("Invalid card [%s] in setup", code)
		}
		if !setupCards.Add(code) {
			return fmt.Errorf("Duplicate card [%s] in setup", code)
		}
	}

	for i, step := range s.Steps {
		stepNum := i + 1
		actions := step.Actions()
		if len(actions) > 1 {
			return fmt.Errorf("Step %d has more than one action %v", stepNum, actions)
		}
		if len(actions) == 0 && step.Verify == nil {
			return fmt.Errorf("Step %d has no action and nothing to verify", stepNum)
		}
		if len(actions) == 0 && step.Error != "" {
			return fmt.Errorf("Step %d expects an error without an action", stepNum)
		}

		if step.Use != nil && !useKinds.Contains(step.Use.Kind) {
			return fmt.Errorf("Invalid card kind [%s] in step %d", step.Use.Kind, stepNum)
		}

		// Selections may name a card only once.
		for _, selection := range [][]string{step.Play, step.Discard, useTargets(step.Use)} {
			selected := mapset.NewSet()
			for _, code := range selection {
				if _, err := poker.ParseCard(code); err != nil {
					return fmt.Errorf("Invalid card [%s] in step %d", code, stepNum)
				}
				if !selected.Add(code) {
					return fmt.Errorf("Duplicate card [%s] in step %d", code, stepNum)
				}
			}
		}
	}

	return nil
}

func useTargets(u *Use) []string {
	if u == nil {
		return nil
	}
	return u.Targets
}

func (s *Script) GetStep(stepNum int) Step {
	return s.Steps[stepNum-1]
}
