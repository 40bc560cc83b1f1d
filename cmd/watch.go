package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/nats"
	"voyager.com/roguepoker/util"
)

var watchCmd = &cobra.Command{
	Use:   "watch [game id]",
	Short: "Follow game events published by the server",
	Long: `Watch subscribes to the events a server publishes to NATS and prints them.
Without a game id it follows every game.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("nats-url")
		if url == "" {
			url = util.Env.GetNatsURL()
		}
		if url == "" {
			return fmt.Errorf("No NATS server. Use --nats-url or set NATS_URL.")
		}
		subject := nats.AllGamesSubject()
		if len(args) == 1 {
			subject = nats.GameSubject(args[0])
		}
		return watch(cmd.OutOrStdout(), url, subject)
	},
}

func init() {
	watchCmd.Flags().String("nats-url", "", "NATS server URL")
}

func watch(out io.Writer, url string, subject string) error {
	nc, err := natsgo.Connect(url)
	if err != nil {
		return errors.Wrapf(err, "Error connecting to NATS server [%s]", url)
	}
	defer nc.Close()

	events := make(chan *game.Event, 64)
	sub, err := nats.Subscribe(nc, subject, func(e *game.Event) {
		events <- e
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()
	fmt.Fprintf(out, "Watching %s\n", subject)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	for {
		select {
		case e := <-events:
			fmt.Fprintln(out, formatEvent(e))
		case <-stop:
			return nil
		}
	}
}

func formatEvent(e *game.Event) string {
	line := fmt.Sprintf("%s %s [%s] ante %d round %d %s",
		e.Timestamp.Format("15:04:05"), heading.Sprint(strings.ToLower(e.Type)), e.GameID, e.Ante, e.Round, e.Blind)
	if e.Hand != "" {
		line += fmt.Sprintf(" hand: %s", e.Hand)
	}
	if e.Card != "" {
		line += fmt.Sprintf(" card: %s", e.Card)
	}
	return line + fmt.Sprintf(" score: %d money: $%d", e.Score, e.Money)
}
