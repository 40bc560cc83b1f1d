package game

import (
	"context"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const redisKeyPrefix = "roguepoker|game|"

type RedisGameStore struct {
	rdclient *redis.Client
}

func NewRedisGameStore(redisURL string, redisPW string, redisDB int) *RedisGameStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisGameStore{
		rdclient: rdclient,
	}
}

func (r *RedisGameStore) Load(gameID string) ([]byte, error) {
	key := redisKeyPrefix + gameID
	stateBytes, err := r.rdclient.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, GameNotFoundError{GameID: gameID}
	} else if err != nil {
		return nil, errors.Wrapf(err, "Error loading game [%s] from redis", gameID)
	}
	return []byte(stateBytes), nil
}

func (r *RedisGameStore) Save(gameID string, state []byte) error {
	err := r.rdclient.Set(context.Background(), redisKeyPrefix+gameID, state, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "Error saving game [%s] to redis", gameID)
	}
	return nil
}

func (r *RedisGameStore) Remove(gameID string) error {
	err := r.rdclient.Del(context.Background(), redisKeyPrefix+gameID).Err()
	if err != nil {
		return errors.Wrapf(err, "Error removing game [%s] from redis", gameID)
	}
	return nil
}

func (r *RedisGameStore) List() ([]string, error) {
	keys, err := r.rdclient.Keys(context.Background(), redisKeyPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrap(err, "Error listing games in redis")
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, redisKeyPrefix))
	}
	sort.Strings(ids)
	return ids, nil
}
