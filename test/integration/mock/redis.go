package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is an in-memory redis server and a client connected to it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

func NewRedis() *Redis {
	if redisMock == nil {
		redisOnce.Do(
			func() {
				redisMock = openRedis()
			},
		)
	}

	return redisMock
}

func openRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
