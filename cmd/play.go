package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/effects"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/util/random"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive game",
	Long: `Play starts a new run, or continues a saved one with --load.
Saves are written to the save directory of your config file
(XDG_CONFIG_HOME/roguepoker/config.toml).

Examples:
  roguepoker play
  roguepoker play --deck red --seed 42
  roguepoker play --load slot1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")
		seed, _ := cmd.Flags().GetInt64("seed")
		slot, _ := cmd.Flags().GetString("load")

		userConfig, err := config.LoadUserConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}
		color.NoColor = !userConfig.Colorize || !term.IsTerminal(int(os.Stdout.Fd()))

		store, err := game.NewFileGameStore(userConfig.SaveDir)
		if err != nil {
			return err
		}
		opts := []game.Option{game.WithDispatcher(effects.NewRegistry())}
		if userConfig.RulesFile != "" {
			rules, err := config.ParseRules(userConfig.RulesFile)
			if err != nil {
				return err
			}
			opts = append(opts, game.WithRules(rules))
		}

		var g *game.Game
		if slot != "" {
			data, err := store.Load(slot)
			if err != nil {
				return err
			}
			if g, err = game.Load(data, opts...); err != nil {
				return err
			}
		} else {
			if deckFlag == "" {
				deckFlag = userConfig.DefaultDeck
			}
			deck, err := game.ParseDeckType(deckFlag)
			if err != nil {
				return err
			}
			g = game.New(append(opts, game.WithDeckType(deck), game.WithRandSource(random.NewSource(seed)))...)
		}

		s := &session{g: g, store: store, opts: opts, out: cmd.OutOrStdout()}
		return s.run(cmd.InOrStdin())
	},
}

func init() {
	playCmd.Flags().StringP("deck", "d", "", "Deck to play with: Base, Red, Green or Yellow")
	playCmd.Flags().Int64P("seed", "s", 0, "Random seed, 0 picks one")
	playCmd.Flags().StringP("load", "l", "", "Continue the game saved in this slot")
}
