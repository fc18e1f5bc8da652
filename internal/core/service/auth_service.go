package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/policy"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

var validate = validator.New()

// AuthService implements registration, login and self-service profile edits.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, domain.Invalid("email, password and full_name are required")
	}
	if err := validEmail(email); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if in.ManagerID != "" {
		if role == domain.RoleManager {
			return nil, domain.Invalid("managers cannot report to a manager")
		}
		if _, err := s.lookupManager(ctx, in.ManagerID); err != nil {
			return nil, err
		}
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		ManagerID:    in.ManagerID,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The account behind a still-valid token is gone.
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, requester *domain.User, in ports.ProfileInput) (*domain.User, error) {
	patch := domain.UserPatch{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.Invalid("full_name cannot be empty")
		}
		patch.FullName = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := validEmail(email); err != nil {
			return nil, err
		}
		if email != requester.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != requester.ID {
				return nil, domain.ErrDuplicateEmail
			} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		patch.Email = &email
	}
	if patch.IsEmpty() {
		return nil, domain.Invalid("no valid fields to update")
	}

	return s.users.Update(ctx, requester.ID, patch)
}

func (s *AuthService) ChangeManager(ctx context.Context, requester *domain.User, managerID string) (*domain.User, error) {
	if err := policy.CanChangeManager(requester, nil); err != nil {
		return nil, err
	}

	var proposed *domain.User
	if managerID != "" {
		m, err := s.users.FindByID(ctx, managerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.Wrap(domain.ErrUserNotFound, "manager not found")
			}
			return nil, err
		}
		proposed = m
	}
	if err := policy.CanChangeManager(requester, proposed); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, requester.ID, domain.UserPatch{ManagerID: &managerID})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", requester.ID).Str("manager_id", managerID).Msg("manager changed")
	return updated, nil
}

// lookupManager resolves id and checks it belongs to a manager.
func (s *AuthService) lookupManager(ctx context.Context, id string) (*domain.User, error) {
	m, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Wrap(domain.ErrUserNotFound, "manager not found")
		}
		return nil, err
	}
	if m.Role != domain.RoleManager {
		return nil, domain.Invalid("selected user is not a manager")
	}
	return m, nil
}

// validEmail accepts a bare addr-spec only; display-name forms are rejected.
func validEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.Invalid("email must be a valid address")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
