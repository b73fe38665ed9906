package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/tlsn-go/witnessgen/internal/logger"
)

const redisKeyPrefix = "witnessgen:digest:"

// redisBackend is a Backend shared across process instances via redis.
// Useful when several witness-generator replicas witness the same captured
// traffic and want to share a digest cache.
type redisBackend struct {
	client *redis.Client
	log    *logger.Logger
}

func newRedisBackend(addr string, log *logger.Logger) Backend {
	client := redis.NewClient(&redis.Options{Addr: addr})
	log.Infof("open", "redis digest cache target %s", addr)
	return &redisBackend{client: client, log: log}
}

func (r *redisBackend) Get(key string) ([]byte, bool) {
	val, err := r.client.Get(context.Background(), redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Errorf("get", "redis get error: %v", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisBackend) Set(key string, value []byte) {
	if err := r.client.Set(context.Background(), redisKeyPrefix+key, value, 0).Err(); err != nil {
		r.log.Errorf("set", "redis set error: %v", err)
	}
}

func (r *redisBackend) Delete(key string) {
	if err := r.client.Del(context.Background(), redisKeyPrefix+key).Err(); err != nil {
		r.log.Errorf("delete", "redis delete error: %v", err)
	}
}

func (r *redisBackend) Close() error { return r.client.Close() }
