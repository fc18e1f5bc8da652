package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RequestThrottle remembers recent feedback requests backed by Redis.
// Key format: feedback-request:<employee_id>:<manager_id>
type RequestThrottle struct {
	client redis.Cmdable
}

// NewRequestThrottle creates a RequestThrottle wrapping the given Redis client.
func NewRequestThrottle(client redis.Cmdable) *RequestThrottle {
	return &RequestThrottle{client: client}
}

// Recent reports whether employeeID already asked managerID within the TTL
// given to the last Mark.
func (t *RequestThrottle) Recent(ctx context.Context, employeeID, managerID string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(employeeID, managerID)).Result()
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n > 0, nil
}

// Mark records a request that expires after ttl.
func (t *RequestThrottle) Mark(ctx context.Context, employeeID, managerID string, ttl time.Duration) error {
	if err := t.client.Set(ctx, t.key(employeeID, managerID), time.Now().UTC().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("throttle mark: %w", err)
	}
	return nil
}

func (t *RequestThrottle) key(employeeID, managerID string) string {
	return fmt.Sprintf("feedback-request:%s:%s", employeeID, managerID)
}
