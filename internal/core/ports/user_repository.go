package ports

import (
	"context"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// UserRepository is the user directory.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID.
	// Returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindByManager returns every user whose manager_id equals managerID.
	FindByManager(ctx context.Context, managerID string) ([]*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// Update applies patch and refreshes updated_at.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
