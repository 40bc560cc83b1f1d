package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"voyager.com/roguepoker/config"
	"voyager.com/roguepoker/content"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/nats"
	"voyager.com/roguepoker/rest"
	"voyager.com/roguepoker/util"
)

var serveLogger = log.With().Str("logger_name", "cmd::serve").Logger()

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over HTTP",
	Long: `Serve runs the REST API. It is configured from the environment:

  PERSIST_METHOD       memory (default), file, redis or postgres
  REDIS_HOST/PORT/PW/DB, POSTGRES_HOST/PORT/DB/USER/PASSWORD/SSL_MODE
  SAVE_ENCRYPTION_KEY  UUID used to encrypt saves
  NATS_URL             publish game events to NATS
  CONTENT_DIR          override the built-in card catalog
  RULES_FILE           override the built-in rules`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		saveDir, _ := cmd.Flags().GetString("save-dir")
		return runServer(addr, saveDir)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("save-dir", "saves", "Directory of the file store")
}

func runServer(addr string, saveDir string) error {
	store, err := newStore(saveDir)
	if err != nil {
		return errors.Wrap(err, "Error while creating game store")
	}

	var opts []game.Option
	if dir := util.Env.GetContentDir(); dir != "" {
		catalog, err := content.LoadCatalogFromDir(dir)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithCatalog(catalog))
	}
	if file := util.Env.GetRulesFile(); file != "" {
		rules, err := config.ParseRules(file)
		if err != nil {
			return errors.Wrap(err, "Error while parsing rules")
		}
		opts = append(opts, game.WithRules(rules))
	}

	var listener game.EventListener
	if natsURL := util.Env.GetNatsURL(); natsURL != "" {
		serveLogger.Info().Msg(fmt.Sprintf("NATS URL: %s", natsURL))
		publisher, err := nats.NewEventPublisher(natsURL)
		if err != nil {
			return err
		}
		defer publisher.Close()
		listener = publisher
	}

	manager, err := rest.NewManager(store, listener, opts...)
	if err != nil {
		return err
	}
	return rest.RunRestServer(manager, addr)
}

func newStore(saveDir string) (game.PersistGameState, error) {
	var store game.PersistGameState
	method := util.Env.GetPersistMethod()
	serveLogger.Info().Msg(fmt.Sprintf("Persisting games with %s", method))
	switch method {
	case "memory":
		store = game.NewMemoryGameStore()
	case "file":
		fileStore, err := game.NewFileGameStore(saveDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case "redis":
		redisURL := fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort())
		store = game.NewRedisGameStore(redisURL, util.Env.GetRedisPW(), util.Env.GetRedisDB())
	case "postgres":
		pgStore, err := game.NewPostgresGameStore(util.Env.GetPostgresConnStr())
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, fmt.Errorf("Invalid persist method [%s]", method)
	}

	if key := util.Env.GetSaveEncryptionKey(); key != "" {
		uuidKey, err := uuid.Parse(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid save encryption key")
		}
		store = game.NewEncryptedGameStore(store, uuidKey)
	}
	return store, nil
}
