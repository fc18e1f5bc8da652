package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/policy"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

type feedbackService struct {
	feedback ports.FeedbackRepository
	users    ports.UserRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewFeedbackService returns a FeedbackService implementation.
func NewFeedbackService(
	feedback ports.FeedbackRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.FeedbackService {
	return &feedbackService{
		feedback: feedback,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func (s *feedbackService) Create(ctx context.Context, requester *domain.User, in ports.CreateFeedbackInput) (*domain.FeedbackView, error) {
	sentiment, err := domain.ParseSentiment(in.Sentiment)
	if err != nil {
		return nil, err
	}
	if in.EmployeeID == "" {
		return nil, domain.Invalid("employee_id is required")
	}
	if strings.TrimSpace(in.Strengths) == "" || strings.TrimSpace(in.Improvements) == "" {
		return nil, domain.Invalid("strengths and improvements are required")
	}

	subject, err := s.lookupEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreateFeedback(requester, subject); err != nil {
		return nil, err
	}

	fb, err := s.feedback.Create(ctx, &domain.Feedback{
		ManagerID:    requester.ID,
		EmployeeID:   subject.ID,
		Strengths:    in.Strengths,
		Improvements: in.Improvements,
		Sentiment:    sentiment,
		Tags:         cleanTags(in.Tags),
		Anonymous:    in.Anonymous,
	})
	if err != nil {
		s.log.Error().Err(err).Str("author_id", requester.ID).Msg("failed to create feedback")
		return nil, err
	}

	s.log.Info().
		Str("feedback_id", fb.ID).
		Str("author_id", requester.ID).
		Str("employee_id", subject.ID).
		Str("sentiment", string(sentiment)).
		Msg("feedback created")

	return &domain.FeedbackView{Feedback: fb, Giver: requester, Receiver: subject}, nil
}

func (s *feedbackService) List(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	switch policy.FeedbackListScope(requester) {
	case policy.ByAuthor:
		return s.listBy(ctx, s.feedback.FindByManager, requester.ID)
	default:
		return s.listBy(ctx, s.feedback.FindByEmployee, requester.ID)
	}
}

func (s *feedbackService) Received(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	if err := policy.RequireRole(requester, domain.RoleEmployee); err != nil {
		return nil, domain.Denied(policy.EmployeesOnlyReceived)
	}
	return s.listBy(ctx, s.feedback.FindByEmployee, requester.ID)
}

// Given lists the peer feedback an employee has written. The author is stored
// in manager_id whatever the author's role.
func (s *feedbackService) Given(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	if err := policy.RequireRole(requester, domain.RoleEmployee); err != nil {
		return nil, domain.Denied(policy.EmployeesOnlyGiven)
	}
	return s.listBy(ctx, s.feedback.FindByManager, requester.ID)
}

func (s *feedbackService) Update(ctx context.Context, requester *domain.User, id string, in ports.UpdateFeedbackInput) (*domain.FeedbackView, error) {
	current, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateFeedback(requester, current); err != nil {
		return nil, err
	}

	if blank(in.Strengths) || blank(in.Improvements) {
		return nil, domain.Invalid("strengths and improvements cannot be empty")
	}
	patch := domain.FeedbackPatch{
		Strengths:    in.Strengths,
		Improvements: in.Improvements,
	}
	if in.Sentiment != nil {
		sentiment, err := domain.ParseSentiment(*in.Sentiment)
		if err != nil {
			return nil, err
		}
		patch.Sentiment = &sentiment
	}
	if in.Tags != nil {
		tags := cleanTags(*in.Tags)
		patch.Tags = &tags
	}
	if in.EmployeeID != nil && *in.EmployeeID != current.EmployeeID {
		// Re-targeting must satisfy the same pairing rule as creation.
		subject, err := s.lookupEmployee(ctx, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if err := policy.CanCreateFeedback(requester, subject); err != nil {
			return nil, err
		}
		patch.EmployeeID = &subject.ID
	}

	updated, err := s.feedback.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("feedback_id", id).Str("author_id", requester.ID).Msg("feedback updated")

	views, err := s.join(ctx, []*domain.Feedback{updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *feedbackService) Acknowledge(ctx context.Context, requester *domain.User, id, comment string) error {
	current, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanAcknowledgeFeedback(requester, current); err != nil {
		return err
	}

	if _, err := s.feedback.Acknowledge(ctx, id, strings.TrimSpace(comment), s.now()); err != nil {
		return err
	}

	s.log.Info().Str("feedback_id", id).Str("employee_id", requester.ID).Msg("feedback acknowledged")
	return nil
}

func (s *feedbackService) Stats(ctx context.Context, requester *domain.User) (domain.FeedbackStats, error) {
	var (
		list []*domain.Feedback
		err  error
	)
	switch policy.FeedbackListScope(requester) {
	case policy.ByAuthor:
		list, err = s.feedback.FindByManager(ctx, requester.ID)
	default:
		list, err = s.feedback.FindByEmployee(ctx, requester.ID)
	}
	if err != nil {
		return domain.FeedbackStats{}, err
	}
	return domain.Tally(requester.Role, list), nil
}

func (s *feedbackService) listBy(
	ctx context.Context,
	find func(context.Context, string) ([]*domain.Feedback, error),
	userID string,
) ([]domain.FeedbackView, error) {
	list, err := find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, list)
}

// join attaches giver and receiver records with a single batch lookup.
func (s *feedbackService) join(ctx context.Context, list []*domain.Feedback) ([]domain.FeedbackView, error) {
	views := make([]domain.FeedbackView, 0, len(list))
	if len(list) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(list)*2)
	ids := make([]string, 0, len(list)*2)
	for _, f := range list {
		for _, id := range []string{f.ManagerID, f.EmployeeID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, f := range list {
		views = append(views, domain.FeedbackView{
			Feedback: f,
			Giver:    byID[f.ManagerID],
			Receiver: byID[f.EmployeeID],
		})
	}
	return views, nil
}

func (s *feedbackService) lookupEmployee(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Wrap(domain.ErrUserNotFound, "employee not found")
		}
		return nil, err
	}
	return u, nil
}

// cleanTags trims tags and drops empty ones, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
