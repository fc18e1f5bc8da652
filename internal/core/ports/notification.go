package ports

import (
	"context"
	"time"
)

// NotificationGateway delivers feedback-request emails. Failures are reported
// as false, never as a panic or a transport error.
type NotificationGateway interface {
	SendFeedbackRequest(ctx context.Context, managerEmail, employeeName, managerName string) bool
}

// RequestThrottle remembers recent feedback requests so a manager is not
// emailed repeatedly by the same employee.
type RequestThrottle interface {
	Recent(ctx context.Context, employeeID, managerID string) (bool, error)
	Mark(ctx context.Context, employeeID, managerID string, ttl time.Duration) error
}
