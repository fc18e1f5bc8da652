package ports

import (
	"context"
	"time"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// FeedbackRepository is the feedback ledger. Lists are newest first and every
// write returns domain.ErrFeedbackNotFound for an unknown id.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	FindByManager(ctx context.Context, managerID string) ([]*domain.Feedback, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]*domain.Feedback, error)
	Update(ctx context.Context, id string, patch domain.FeedbackPatch) (*domain.Feedback, error)
	// Acknowledge marks the record acknowledged. acknowledged_at is stamped
	// only the first time; comment is stored only when non-empty.
	Acknowledge(ctx context.Context, id, comment string, at time.Time) (*domain.Feedback, error)
}
