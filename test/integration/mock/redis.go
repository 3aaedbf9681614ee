//go:build integration

package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a client connected to a process-wide miniredis server.
func NewRedis() (*redis.Client, *miniredis.Miniredis) {
	redisConnOnce.Do(
		func() {
			redisServer, redisConn = openRedisConn()
		},
	)
	return redisConn, redisServer
}

func openRedisConn() (*miniredis.Miniredis, *redis.Client) {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return miniRedis, conn
}

func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
