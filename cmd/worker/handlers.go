package main

import (
	"github.com/hibiken/asynq"

	promotionJob "hotel-backend/internal/domains/promotion/job"
	"hotel-backend/internal/shared"
	"hotel-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	auditUsage *promotionJob.AuditUsageHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		auditUsage: c.AuditUsageHandler,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeAuditPromotionUsage, h.auditUsage.ProcessTask)
}
