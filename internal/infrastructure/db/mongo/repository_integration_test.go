//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// Run with: go test -tags integration ./internal/infrastructure/db/mongo/...
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *mongodb.MongoDBContainer
	client    *mongo.Client
	db        *mongo.Database
	users     *UserRepository
	feedback  *FeedbackRepository
	clock     time.Time
}

func TestRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := mongodb.Run(s.ctx, "mongo:7")
	s.Require().NoError(err, "could not start mongo container")
	s.container = container

	uri, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	client, db, err := Connect(s.ctx, Config{URI: uri, Database: "feedback_test"})
	s.Require().NoError(err)
	s.client = client
	s.db = db
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Drop(s.ctx))

	// Every write advances the clock by a minute so ordering is deterministic.
	s.clock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}

	s.users = NewUserRepository(s.db)
	s.users.now = tick
	s.feedback = NewFeedbackRepository(s.db)
	s.feedback.now = tick

	s.Require().NoError(s.users.EnsureIndexes(s.ctx))
	s.Require().NoError(s.feedback.EnsureIndexes(s.ctx))
}

func (s *RepositoryIntegrationTestSuite) createUser(email string, role domain.Role, managerID string) *domain.User {
	u, err := s.users.Create(s.ctx, &domain.User{
		Email:        email,
		FullName:     email,
		Role:         role,
		ManagerID:    managerID,
		PasswordHash: "hash",
	})
	s.Require().NoError(err)
	return u
}

func (s *RepositoryIntegrationTestSuite) createFeedback(authorID, subjectID, strengths string) *domain.Feedback {
	fb, err := s.feedback.Create(s.ctx, &domain.Feedback{
		ManagerID:    authorID,
		EmployeeID:   subjectID,
		Strengths:    strengths,
		Improvements: "more tests",
		Sentiment:    domain.SentimentPositive,
	})
	s.Require().NoError(err)
	return fb
}

func (s *RepositoryIntegrationTestSuite) TestUsers_DuplicateEmail() {
	s.createUser("dup@example.com", domain.RoleEmployee, "")

	_, err := s.users.Create(s.ctx, &domain.User{
		Email:        "dup@example.com",
		FullName:     "Second",
		Role:         domain.RoleManager,
		PasswordHash: "hash",
	})
	s.ErrorIs(err, domain.ErrDuplicateEmail)

	other := s.createUser("other@example.com", domain.RoleEmployee, "")
	taken := "dup@example.com"
	_, err = s.users.Update(s.ctx, other.ID, domain.UserPatch{Email: &taken})
	s.ErrorIs(err, domain.ErrDuplicateEmail)
}

func (s *RepositoryIntegrationTestSuite) TestUsers_ClearManager() {
	manager := s.createUser("boss@example.com", domain.RoleManager, "")
	employee := s.createUser("worker@example.com", domain.RoleEmployee, manager.ID)
	s.Equal(manager.ID, employee.ManagerID)

	team, err := s.users.FindByManager(s.ctx, manager.ID)
	s.Require().NoError(err)
	s.Len(team, 1)

	empty := ""
	updated, err := s.users.Update(s.ctx, employee.ID, domain.UserPatch{ManagerID: &empty})
	s.Require().NoError(err)
	s.Empty(updated.ManagerID)

	var raw bson.M
	s.Require().NoError(s.db.Collection(collectionUsers).FindOne(s.ctx, bson.M{"email": "worker@example.com"}).Decode(&raw))
	_, present := raw["manager_id"]
	s.False(present, "manager_id must be removed from the document")

	team, err = s.users.FindByManager(s.ctx, manager.ID)
	s.Require().NoError(err)
	s.Empty(team)
}

func (s *RepositoryIntegrationTestSuite) TestFeedback_NewestFirst() {
	manager := s.createUser("m@example.com", domain.RoleManager, "")
	alice := s.createUser("alice@example.com", domain.RoleEmployee, manager.ID)
	bob := s.createUser("bob@example.com", domain.RoleEmployee, manager.ID)

	first := s.createFeedback(manager.ID, alice.ID, "first")
	second := s.createFeedback(manager.ID, bob.ID, "second")
	third := s.createFeedback(manager.ID, alice.ID, "third")

	byAuthor, err := s.feedback.FindByManager(s.ctx, manager.ID)
	s.Require().NoError(err)
	s.Equal([]string{third.ID, second.ID, first.ID}, ids(byAuthor))

	bySubject, err := s.feedback.FindByEmployee(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal([]string{third.ID, first.ID}, ids(bySubject))

	none, err := s.feedback.FindByEmployee(s.ctx, manager.ID)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *RepositoryIntegrationTestSuite) TestFeedback_AcknowledgeStampsOnce() {
	manager := s.createUser("m@example.com", domain.RoleManager, "")
	alice := s.createUser("alice@example.com", domain.RoleEmployee, manager.ID)
	fb := s.createFeedback(manager.ID, alice.ID, "clear writing")
	s.False(fb.Acknowledged)
	s.Nil(fb.AcknowledgedAt)

	firstAt := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	acked, err := s.feedback.Acknowledge(s.ctx, fb.ID, "$thanks", firstAt)
	s.Require().NoError(err)
	s.True(acked.Acknowledged)
	s.Require().NotNil(acked.AcknowledgedAt)
	s.True(firstAt.Equal(*acked.AcknowledgedAt))
	s.Equal("$thanks", acked.AcknowledgmentComment, "comment is stored literally")

	// A repeat without a comment keeps both the first timestamp and comment.
	laterAt := firstAt.Add(time.Hour)
	again, err := s.feedback.Acknowledge(s.ctx, fb.ID, "", laterAt)
	s.Require().NoError(err)
	s.True(firstAt.Equal(*again.AcknowledgedAt))
	s.Equal("$thanks", again.AcknowledgmentComment)
	s.True(laterAt.Equal(again.UpdatedAt))

	// A new comment replaces the old one, the timestamp still does not move.
	replaced, err := s.feedback.Acknowledge(s.ctx, fb.ID, "updated note", laterAt.Add(time.Hour))
	s.Require().NoError(err)
	s.True(firstAt.Equal(*replaced.AcknowledgedAt))
	s.Equal("updated note", replaced.AcknowledgmentComment)

	stored, err := s.feedback.FindByID(s.ctx, fb.ID)
	s.Require().NoError(err)
	s.Equal(replaced.AcknowledgmentComment, stored.AcknowledgmentComment)
	s.Equal("clear writing", stored.Strengths)
}

func (s *RepositoryIntegrationTestSuite) TestFeedback_UpdateAndMissing() {
	manager := s.createUser("m@example.com", domain.RoleManager, "")
	alice := s.createUser("alice@example.com", domain.RoleEmployee, manager.ID)
	fb := s.createFeedback(manager.ID, alice.ID, "draft")

	text := "final"
	tags := []string{"delivery"}
	updated, err := s.feedback.Update(s.ctx, fb.ID, domain.FeedbackPatch{Strengths: &text, Tags: &tags})
	s.Require().NoError(err)
	s.Equal("final", updated.Strengths)
	s.Equal("more tests", updated.Improvements)
	s.Equal([]string{"delivery"}, updated.Tags)
	s.True(updated.UpdatedAt.After(fb.UpdatedAt))

	_, err = s.feedback.FindByID(s.ctx, "0123456789abcdef01234567")
	s.ErrorIs(err, domain.ErrFeedbackNotFound)
	_, err = s.feedback.Acknowledge(s.ctx, "not-hex", "", time.Now())
	s.ErrorIs(err, domain.ErrFeedbackNotFound)
}

func ids(list []*domain.Feedback) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}
