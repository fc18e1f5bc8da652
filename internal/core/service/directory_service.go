package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/policy"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

const defaultRequestCooldown = time.Hour

type directoryService struct {
	users    ports.UserRepository
	gateway  ports.NotificationGateway
	throttle ports.RequestThrottle
	cooldown time.Duration
	log      zerolog.Logger
}

// NewDirectoryService returns a DirectoryService implementation. A zero
// cooldown falls back to one hour.
func NewDirectoryService(
	users ports.UserRepository,
	gateway ports.NotificationGateway,
	throttle ports.RequestThrottle,
	cooldown time.Duration,
	log zerolog.Logger,
) ports.DirectoryService {
	if cooldown <= 0 {
		cooldown = defaultRequestCooldown
	}
	return &directoryService{
		users:    users,
		gateway:  gateway,
		throttle: throttle,
		cooldown: cooldown,
		log:      log,
	}
}

func (s *directoryService) Team(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
	team, ok := policy.TeamScope(requester)
	if !ok {
		return []*domain.User{}, nil
	}

	members, err := s.users.FindByManager(ctx, team.ManagerID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.User, 0, len(members))
	for _, m := range members {
		if m.ID == team.ExcludeID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *directoryService) Managers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindByRole(ctx, domain.RoleManager)
}

func (s *directoryService) GetUser(ctx context.Context, requester *domain.User, id string) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewUser(requester, target); err != nil {
		return nil, err
	}
	return target, nil
}

// RequestFeedback emails the requester's manager. The throttle is advisory:
// when Redis is unavailable the request goes through.
func (s *directoryService) RequestFeedback(ctx context.Context, requester *domain.User) (*domain.User, error) {
	if err := policy.CanRequestFeedback(requester); err != nil {
		return nil, err
	}

	manager, err := s.users.FindByID(ctx, requester.ManagerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Wrap(domain.ErrUserNotFound, "manager not found")
		}
		return nil, err
	}

	recent, err := s.throttle.Recent(ctx, requester.ID, manager.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", requester.ID).Msg("throttle check failed, sending anyway")
	} else if recent {
		return nil, domain.ErrRequestThrottled
	}

	if !s.gateway.SendFeedbackRequest(ctx, manager.Email, requester.FullName, manager.FullName) {
		s.log.Error().Str("user_id", requester.ID).Str("manager_id", manager.ID).Msg("feedback request email not sent")
		return nil, domain.ErrGatewayFailure
	}

	if err := s.throttle.Mark(ctx, requester.ID, manager.ID, s.cooldown); err != nil {
		s.log.Warn().Err(err).Str("user_id", requester.ID).Msg("failed to record feedback request")
	}

	s.log.Info().Str("user_id", requester.ID).Str("manager_id", manager.ID).Msg("feedback requested")
	return manager, nil
}
