package main

import (
	"os"

	"voyager.com/roguepoker/cmd"
	"voyager.com/roguepoker/logging"
)

var mainLogger = logging.GetZeroLogger("main::main", os.Stderr)

func main() {
	err := cmd.Execute()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}
