package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// add stores u directly, bypassing Create, and returns the stored copy.
func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByManager(_ context.Context, managerID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ManagerID == managerID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.ManagerID != nil {
		u.ManagerID = *patch.ManagerID
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

type stubFeedbackRepo struct {
	items map[string]*domain.Feedback
	seq   int
	clock time.Time
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{
		items: make(map[string]*domain.Feedback),
		clock: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func cloneFeedback(f *domain.Feedback) *domain.Feedback {
	c := *f
	c.Tags = append([]string(nil), f.Tags...)
	if f.AcknowledgedAt != nil {
		at := *f.AcknowledgedAt
		c.AcknowledgedAt = &at
	}
	return &c
}

// tick advances the stub clock so every record gets a distinct timestamp.
func (r *stubFeedbackRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *stubFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	r.seq++
	c := cloneFeedback(fb)
	c.ID = fmt.Sprintf("f%d", r.seq)
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	r.items[c.ID] = c
	return cloneFeedback(c), nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id string) (*domain.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	return cloneFeedback(f), nil
}

func (r *stubFeedbackRepo) filter(match func(*domain.Feedback) bool) []*domain.Feedback {
	out := []*domain.Feedback{}
	for _, f := range r.items {
		if match(f) {
			out = append(out, cloneFeedback(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubFeedbackRepo) FindByManager(_ context.Context, managerID string) ([]*domain.Feedback, error) {
	return r.filter(func(f *domain.Feedback) bool { return f.ManagerID == managerID }), nil
}

func (r *stubFeedbackRepo) FindByEmployee(_ context.Context, employeeID string) ([]*domain.Feedback, error) {
	return r.filter(func(f *domain.Feedback) bool { return f.EmployeeID == employeeID }), nil
}

func (r *stubFeedbackRepo) Update(_ context.Context, id string, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	if patch.Strengths != nil {
		f.Strengths = *patch.Strengths
	}
	if patch.Improvements != nil {
		f.Improvements = *patch.Improvements
	}
	if patch.Sentiment != nil {
		f.Sentiment = *patch.Sentiment
	}
	if patch.Tags != nil {
		f.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.EmployeeID != nil {
		f.EmployeeID = *patch.EmployeeID
	}
	f.UpdatedAt = r.tick()
	return cloneFeedback(f), nil
}

func (r *stubFeedbackRepo) Acknowledge(_ context.Context, id, comment string, at time.Time) (*domain.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	f.Acknowledged = true
	if f.AcknowledgedAt == nil {
		stamp := at
		f.AcknowledgedAt = &stamp
	}
	if comment != "" {
		f.AcknowledgmentComment = comment
	}
	f.UpdatedAt = at
	return cloneFeedback(f), nil
}

// ---------------------------------------------------------------------------
// Notification stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	ok    bool
	calls []string // manager emails
}

func (g *stubGateway) SendFeedbackRequest(_ context.Context, managerEmail, _, _ string) bool {
	g.calls = append(g.calls, managerEmail)
	return g.ok
}

type stubThrottle struct {
	marked map[string]time.Duration
	err    error
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{marked: make(map[string]time.Duration)}
}

func (t *stubThrottle) Recent(_ context.Context, employeeID, managerID string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	_, ok := t.marked[employeeID+":"+managerID]
	return ok, nil
}

func (t *stubThrottle) Mark(_ context.Context, employeeID, managerID string, ttl time.Duration) error {
	if t.err != nil {
		return t.err
	}
	t.marked[employeeID+":"+managerID] = ttl
	return nil
}

var (
	_ ports.UserRepository      = (*stubUserRepo)(nil)
	_ ports.FeedbackRepository  = (*stubFeedbackRepo)(nil)
	_ ports.NotificationGateway = (*stubGateway)(nil)
	_ ports.RequestThrottle     = (*stubThrottle)(nil)
)
