package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotel-backend/pkg/container"
	"hotel-backend/pkg/logger"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	c *container.Container
}

func startServices(c *container.Container, cfg *Config) error {
	logger.Info("Hotel worker starting", nil)

	checker := &HealthChecker{c: c}
	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.HealthAddr, checker)
	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Postgres Connection", h.checkPostgres},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			logger.Warn("Startup check failed", map[string]interface{}{
				"check": check.name,
				"error": err.Error(),
			})
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Info("Startup check passed", map[string]interface{}{"check": check.name})
	}

	return nil
}

// checkRedis matters here: asynq pulls tasks from the same Redis.
func (h *HealthChecker) checkRedis() error {
	if h.c.Cache == nil {
		return fmt.Errorf("redis not configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.c.Cache.Ping(ctx)
}

func (h *HealthChecker) checkPostgres() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.c.DB.Ping(ctx)
}

func startHealthCheckServer(addr string, checker *HealthChecker) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler(checker))

	logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": addr})
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("[Health] Failed to start", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"hotel-worker"}`))
}

// readyCheckHandler backs the Kubernetes readiness probe.
func readyCheckHandler(checker *HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := checker.checkAll(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	}
}
