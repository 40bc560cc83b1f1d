package config

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type BlindRule struct {
	Name          string `yaml:"name"`
	ScoreRequired int    `yaml:"scoreRequired"`
}

// Rules holds the tunable numbers of a run.
type Rules struct {
	Blinds              []BlindRule    `yaml:"blinds"`
	AnteMultiplier      float64        `yaml:"anteMultiplier"`
	Hands               int            `yaml:"hands"`
	Discards            int            `yaml:"discards"`
	HandSize            int            `yaml:"handSize"`
	StartingMoney       int            `yaml:"startingMoney"`
	MaxSelected         int            `yaml:"maxSelected"`
	ConsumableSlots     int            `yaml:"consumableSlots"`
	JokerSlots          int            `yaml:"jokerSlots"`
	RoundBase           int            `yaml:"roundBase"`
	InterestCap         int            `yaml:"interestCap"`
	InterestCapVouchers map[string]int `yaml:"interestCapVouchers"`
	ShopItems           int            `yaml:"shopItems"`
}

// DefaultRules returns the rules bundled with the binary.
func DefaultRules() *Rules {
	rules, err := parseRules(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("Invalid embedded rules: %v", err))
	}
	return rules
}

// ParseRules reads a rules file. Keys missing from the file keep their default values.
func ParseRules(rulesFile string) (*Rules, error) {
	bytes, err := ioutil.ReadFile(rulesFile)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Error reading rules file [%s]", rulesFile))
	}
	rules := DefaultRules()
	err = yaml.Unmarshal(bytes, rules)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Error parsing rules YAML file [%s]", rulesFile))
	}
	if err := rules.Validate(); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Invalid rules file [%s]", rulesFile))
	}
	return rules, nil
}

func parseRules(data []byte) (*Rules, error) {
	var rules Rules
	err := yaml.Unmarshal(data, &rules)
	if err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *Rules) Validate() error {
	if len(r.Blinds) == 0 {
		return fmt.Errorf("at least one blind is required")
	}
	for _, b := range r.Blinds {
		if b.ScoreRequired <= 0 {
			return fmt.Errorf("blind [%s] requires a positive score", b.Name)
		}
	}
	if r.AnteMultiplier <= 0 {
		return fmt.Errorf("anteMultiplier must be positive")
	}
	if r.Hands <= 0 || r.HandSize <= 0 || r.MaxSelected <= 0 {
		return fmt.Errorf("hands, handSize and maxSelected must be positive")
	}
	return nil
}

// ScoreRequired returns the threshold of the blind at index for the given ante.
func (r *Rules) ScoreRequired(index int, ante int) int {
	base := r.Blinds[index].ScoreRequired
	if ante <= 1 {
		return base
	}
	return int(math.Floor(float64(base) * math.Pow(r.AnteMultiplier, float64(ante-1))))
}

// InterestCapFor returns the highest interest cap granted by any of the owned vouchers.
func (r *Rules) InterestCapFor(vouchers []string) int {
	limit := r.InterestCap
	for _, v := range vouchers {
		if c, ok := r.InterestCapVouchers[v]; ok && c > limit {
			limit = c
		}
	}
	return limit
}
