package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feedbackhub/feedback-api/internal/api/middleware"
	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn         func(ctx context.Context, email, password string) (string, *domain.User, error)
	authenticateFn  func(ctx context.Context, token string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, requester *domain.User, in ports.ProfileInput) (*domain.User, error)
	changeManagerFn func(ctx context.Context, requester *domain.User, managerID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, requester *domain.User, in ports.ProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, requester, in)
}

func (s *stubAuthService) ChangeManager(ctx context.Context, requester *domain.User, managerID string) (*domain.User, error) {
	return s.changeManagerFn(ctx, requester, managerID)
}

type stubDirectoryService struct {
	teamFn            func(ctx context.Context, requester *domain.User) ([]*domain.User, error)
	managersFn        func(ctx context.Context) ([]*domain.User, error)
	getUserFn         func(ctx context.Context, requester *domain.User, id string) (*domain.User, error)
	requestFeedbackFn func(ctx context.Context, requester *domain.User) (*domain.User, error)
}

func (s *stubDirectoryService) Team(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
	return s.teamFn(ctx, requester)
}

func (s *stubDirectoryService) Managers(ctx context.Context) ([]*domain.User, error) {
	return s.managersFn(ctx)
}

func (s *stubDirectoryService) GetUser(ctx context.Context, requester *domain.User, id string) (*domain.User, error) {
	return s.getUserFn(ctx, requester, id)
}

func (s *stubDirectoryService) RequestFeedback(ctx context.Context, requester *domain.User) (*domain.User, error) {
	return s.requestFeedbackFn(ctx, requester)
}

type stubFeedbackService struct {
	createFn      func(ctx context.Context, requester *domain.User, in ports.CreateFeedbackInput) (*domain.FeedbackView, error)
	listFn        func(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error)
	updateFn      func(ctx context.Context, requester *domain.User, id string, in ports.UpdateFeedbackInput) (*domain.FeedbackView, error)
	acknowledgeFn func(ctx context.Context, requester *domain.User, id, comment string) error
	statsFn       func(ctx context.Context, requester *domain.User) (domain.FeedbackStats, error)
}

func (s *stubFeedbackService) Create(ctx context.Context, requester *domain.User, in ports.CreateFeedbackInput) (*domain.FeedbackView, error) {
	return s.createFn(ctx, requester, in)
}

func (s *stubFeedbackService) List(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	return s.listFn(ctx, requester)
}

func (s *stubFeedbackService) Received(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	return s.listFn(ctx, requester)
}

func (s *stubFeedbackService) Given(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error) {
	return s.listFn(ctx, requester)
}

func (s *stubFeedbackService) Update(ctx context.Context, requester *domain.User, id string, in ports.UpdateFeedbackInput) (*domain.FeedbackView, error) {
	return s.updateFn(ctx, requester, id, in)
}

func (s *stubFeedbackService) Acknowledge(ctx context.Context, requester *domain.User, id, comment string) error {
	return s.acknowledgeFn(ctx, requester, id, comment)
}

func (s *stubFeedbackService) Stats(ctx context.Context, requester *domain.User) (domain.FeedbackStats, error) {
	return s.statsFn(ctx, requester)
}

var (
	testManager  = &domain.User{ID: "m1", Email: "maria@example.com", FullName: "Maria", Role: domain.RoleManager}
	testEmployee = &domain.User{ID: "e1", Email: "alice@example.com", FullName: "Alice", Role: domain.RoleEmployee, ManagerID: "m1"}
)

// newContext builds an echo context for method/target with an optional JSON
// body and authenticated user.
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return c, rec
}

var (
	_ ports.AuthService      = (*stubAuthService)(nil)
	_ ports.DirectoryService = (*stubDirectoryService)(nil)
	_ ports.FeedbackService  = (*stubFeedbackService)(nil)
)
