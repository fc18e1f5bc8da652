package ports

import (
	"context"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// DirectoryService answers the read-side questions about users.
type DirectoryService interface {
	Team(ctx context.Context, requester *domain.User) ([]*domain.User, error)
	Managers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, requester *domain.User, id string) (*domain.User, error)
	// RequestFeedback emails the requester's manager and returns that manager.
	RequestFeedback(ctx context.Context, requester *domain.User) (*domain.User, error)
}
