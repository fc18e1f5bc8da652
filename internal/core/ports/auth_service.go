package ports

import (
	"context"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	Role      string
	ManagerID string // optional, employees only
}

// ProfileInput carries the self-service profile fields. Nil means unchanged.
type ProfileInput struct {
	FullName *string
	Email    *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate resolves a bearer token to the requesting user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, requester *domain.User, in ProfileInput) (*domain.User, error)
	// ChangeManager reassigns requester; an empty managerID clears the manager.
	ChangeManager(ctx context.Context, requester *domain.User, managerID string) (*domain.User, error)
}
