package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client for the gating cache, or nil when
// REDIS_URL is not configured (the gate then caches in-process).
func ConnectRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("⚠️  REDIS_URL not set - gating cache will run in-process")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, running without Redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed, running without Redis: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("✅ Redis connected successfully!")
	return client
}
