package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr  string
	DBDSN     string
	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogJSON  bool
	LogDebug bool

	// catalog / dialogue
	CatalogCacheTTL time.Duration
	FallbackSearch  bool

	// rabbitMQ
	RabbitURL         string
	RabbitQueue       string
	WorkerConcurrency int
}

func Load() Config {
	// DSN demo：
	// app:apppass@tcp(127.0.0.1:3306)/job_portal?charset=utf8mb4&parseTime=true&loc=Local
	// sqlite:./chatbot.db
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			"app", "apppass", "127.0.0.1", "3306", "job_portal",
		)
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	// empty REDIS_ADDR disables the catalog cache
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	cacheTTL := 30 * time.Second
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cacheTTL = d
		}
	}

	// empty RABBIT_URL disables the async turn endpoints
	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "chatbot_turns"
	}

	return Config{
		HTTPAddr:  addr,
		DBDSN:     dsn,
		JWTSecret: secret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		LogJSON:  boolEnv("LOG_JSON", false),
		LogDebug: boolEnv("LOG_DEBUG", false),

		CatalogCacheTTL: cacheTTL,
		FallbackSearch:  boolEnv("CHATBOT_FALLBACK_SEARCH", true),

		RabbitURL:         os.Getenv("RABBIT_URL"),
		RabbitQueue:       rabbitQueue,
		WorkerConcurrency: workerConcurrency(),
	}
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}
