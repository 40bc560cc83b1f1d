package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type gameEnvironment struct {
	PersistMethod     string
	RedisHost         string
	RedisPort         string
	RedisPW           string
	RedisDB           string
	PostgresHost      string
	PostgresPort      string
	PostgresDB        string
	PostgresUser      string
	PostgresPW        string
	PostgresSSLMode   string
	NatsURL           string
	SaveEncryptionKey string
	ContentDir        string
	RulesFile         string
}

// Env is a helper object for accessing environment variables.
var Env = &gameEnvironment{
	PersistMethod:     "PERSIST_METHOD",
	RedisHost:         "REDIS_HOST",
	RedisPort:         "REDIS_PORT",
	RedisPW:           "REDIS_PW",
	RedisDB:           "REDIS_DB",
	PostgresHost:      "POSTGRES_HOST",
	PostgresPort:      "POSTGRES_PORT",
	PostgresDB:        "POSTGRES_DB",
	PostgresUser:      "POSTGRES_USER",
	PostgresPW:        "POSTGRES_PASSWORD",
	PostgresSSLMode:   "POSTGRES_SSL_MODE",
	NatsURL:           "NATS_URL",
	SaveEncryptionKey: "SAVE_ENCRYPTION_KEY",
	ContentDir:        "CONTENT_DIR",
	RulesFile:         "RULES_FILE",
}

// GetPersistMethod returns one of memory, redis, postgres. Defaults to memory.
func (g *gameEnvironment) GetPersistMethod() string {
	v := os.Getenv(g.PersistMethod)
	if v == "" {
		return "memory"
	}
	return v
}

func (g *gameEnvironment) GetRedisHost() string {
	host := os.Getenv(g.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", g.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (g *gameEnvironment) GetRedisPort() int {
	return g.requiredInt(g.RedisPort, "Redis port")
}

func (g *gameEnvironment) GetRedisPW() string {
	return os.Getenv(g.RedisPW)
}

func (g *gameEnvironment) GetRedisDB() int {
	if os.Getenv(g.RedisDB) == "" {
		return 0
	}
	return g.requiredInt(g.RedisDB, "Redis db")
}

func (g *gameEnvironment) GetPostgresHost() string {
	return g.withDefault(g.PostgresHost, "localhost")
}

func (g *gameEnvironment) GetPostgresPort() int {
	if os.Getenv(g.PostgresPort) == "" {
		return 5432
	}
	return g.requiredInt(g.PostgresPort, "Postgres port")
}

func (g *gameEnvironment) GetPostgresDB() string {
	return g.withDefault(g.PostgresDB, "roguepoker")
}

func (g *gameEnvironment) GetPostgresUser() string {
	return g.withDefault(g.PostgresUser, "postgres")
}

func (g *gameEnvironment) GetPostgresPW() string {
	return os.Getenv(g.PostgresPW)
}

func (g *gameEnvironment) GetPostgresSSLMode() string {
	return g.withDefault(g.PostgresSSLMode, "disable")
}

// GetPostgresConnStr builds the lib/pq connection string.
func (g *gameEnvironment) GetPostgresConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		g.GetPostgresHost(),
		g.GetPostgresPort(),
		g.GetPostgresUser(),
		g.GetPostgresPW(),
		g.GetPostgresDB(),
		g.GetPostgresSSLMode(),
	)
}

// GetNatsURL returns an empty string when event publishing is disabled.
func (g *gameEnvironment) GetNatsURL() string {
	return os.Getenv(g.NatsURL)
}

func (g *gameEnvironment) GetSaveEncryptionKey() string {
	return os.Getenv(g.SaveEncryptionKey)
}

func (g *gameEnvironment) GetContentDir() string {
	return os.Getenv(g.ContentDir)
}

func (g *gameEnvironment) GetRulesFile() string {
	return os.Getenv(g.RulesFile)
}

func (g *gameEnvironment) withDefault(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func (g *gameEnvironment) requiredInt(key string, what string) int {
	str := os.Getenv(key)
	if str == "" {
		msg := fmt.Sprintf("%s is not defined", key)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	num, err := strconv.Atoi(str)
	if err != nil {
		msg := fmt.Sprintf("Invalid %s %s", what, str)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return num
}
