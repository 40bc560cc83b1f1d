package cmd

import (
	"github.com/spf13/cobra"
	"voyager.com/roguepoker/test"
)

var scriptCmd = &cobra.Command{
	Use:   "script [file-or-dir]",
	Short: "Replay YAML game scripts and verify the results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileOrDir := "test/game-scripts"
		if len(args) == 1 {
			fileOrDir = args[0]
		}
		testName, _ := cmd.Flags().GetString("testname")
		return test.RunGameScriptTests(fileOrDir, testName)
	},
}

func init() {
	scriptCmd.Flags().String("testname", "", "Runs only the script with this name")
}
