package database

import (
	"context"
	"log"

	"grouptracker-backend/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis is fatal on failure: both the session registry and the
// mirror store live in Redis.
func ConnectRedis() {
	opts, err := redis.ParseURL(config.AppConfig.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}

	Redis = redis.NewClient(opts)

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	log.Println("✅ Redis connected successfully")
}
