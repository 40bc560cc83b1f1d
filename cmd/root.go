package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"voyager.com/roguepoker/logging"
)

var logLevel string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "roguepoker",
	Short: "Roguelike poker scoring game",
	Long: `roguepoker is a single-player roguelike card game built on poker hands.
Play hands against Small, Big and Boss blinds, collect Jokers, Tarot,
Spectral and Planet cards, and spend your money in the shop between rounds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, os.Stderr)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	RootCmd.AddCommand(playCmd)
	RootCmd.AddCommand(evalCmd)
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(scriptCmd)
	RootCmd.AddCommand(watchCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
