package main

import (
	"os"

	"github.com/hibiken/asynq"

	"hotel-backend/internal/config"
	"hotel-backend/internal/infrastructure/queue"
	"hotel-backend/pkg/logger"
)

// Config holds what the worker process needs beyond the shared app config.
type Config struct {
	Redis       asynq.RedisClientOpt
	RedisAddr   string
	Queues      map[string]int
	Concurrency int
	HealthAddr  string
}

func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		Redis:       queue.RedisOpt(app.Redis),
		RedisAddr:   app.Redis.Host,
		Queues:      queue.Queues(app.Queue.AuditQueue),
		Concurrency: app.Queue.Concurrency,
		HealthAddr:  os.Getenv("WORKER_HEALTH_ADDR"),
	}
	if cfg.HealthAddr == "" {
		cfg.HealthAddr = ":9999"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}

	logger.Info("[Config] Worker configured", map[string]interface{}{
		"redis":       cfg.RedisAddr,
		"queues":      cfg.Queues,
		"concurrency": cfg.Concurrency,
	})

	return cfg
}
