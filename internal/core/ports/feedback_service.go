package ports

import (
	"context"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// CreateFeedbackInput is the DTO passed from the transport layer to
// FeedbackService.Create.
type CreateFeedbackInput struct {
	EmployeeID   string
	Strengths    string
	Improvements string
	Sentiment    string
	Tags         []string
	Anonymous    bool
}

// UpdateFeedbackInput carries the optional content fields of an edit.
type UpdateFeedbackInput struct {
	EmployeeID   *string
	Strengths    *string
	Improvements *string
	Sentiment    *string
	Tags         *[]string
}

// FeedbackService defines the feedback use cases. Every method enforces the
// access rules in package policy for requester.
type FeedbackService interface {
	Create(ctx context.Context, requester *domain.User, in CreateFeedbackInput) (*domain.FeedbackView, error)
	// List returns what the requester wrote (managers) or received (employees).
	List(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error)
	Received(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error)
	Given(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error)
	Update(ctx context.Context, requester *domain.User, id string, in UpdateFeedbackInput) (*domain.FeedbackView, error)
	Acknowledge(ctx context.Context, requester *domain.User, id, comment string) error
	Stats(ctx context.Context, requester *domain.User) (domain.FeedbackStats, error)
}
