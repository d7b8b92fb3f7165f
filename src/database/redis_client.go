package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
	RedisCtx    = context.Background()
)

// InitRedis connects the shared Redis client. Redis backs the asynq queue and
// the schema graph cache; when it is unavailable the API still serves, it just
// loses caching and background dispatch.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI") // e.g. localhost:6379
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     RedisURI,
		Password: "",
		DB:       0,
	})
	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		RedisClient = nil
		return
	}
	log.Println("✅ Redis connected successfully")
}
