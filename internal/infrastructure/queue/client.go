package queue

import (
	"github.com/hibiken/asynq"

	"hotel-backend/internal/config"
	"hotel-backend/internal/shared"
)

// RedisOpt points asynq at the same Redis the cache uses.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient returns the producer side used by the API to enqueue tasks.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// Queues lists the worker's queues with their priority weights.
func Queues(auditQueue string) map[string]int {
	queues := map[string]int{
		shared.QueueDefault: 5,
	}
	if auditQueue != "" {
		queues[auditQueue] = 10
	}
	return queues
}
