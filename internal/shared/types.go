package shared

import "time"

// Task types and queues shared by the API (producer) and the worker (consumer).
const (
	TypeAuditPromotionUsage = "promotion:audit_usage"

	QueueAudit   = "audit"
	QueueDefault = "default"
)

// AuditUsagePayload is enqueued after an order with a promotion commits.
type AuditUsagePayload struct {
	UsageID     string    `json:"usage_id"`
	CustomerID  string    `json:"customer_id"`
	PromotionID string    `json:"promotion_id"`
	OrderID     string    `json:"order_id"`
	ClientIP    string    `json:"client_ip,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
}
