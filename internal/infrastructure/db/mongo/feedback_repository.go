package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

const collectionFeedback = "feedback"

type FeedbackRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{
		col: db.Collection(collectionFeedback),
		now: func() time.Time { return time.Now().UTC() },
	}
}

type mongoFeedback struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	ManagerID             primitive.ObjectID `bson:"manager_id"`
	EmployeeID            primitive.ObjectID `bson:"employee_id"`
	Strengths             string             `bson:"strengths"`
	Improvements          string             `bson:"improvements"`
	Sentiment             string             `bson:"sentiment"`
	Tags                  []string           `bson:"tags"`
	Anonymous             bool               `bson:"anonymous"`
	Acknowledged          bool               `bson:"acknowledged"`
	AcknowledgedAt        *time.Time         `bson:"acknowledged_at,omitempty"`
	AcknowledgmentComment string             `bson:"acknowledgment_comment,omitempty"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
}

func (m *mongoFeedback) toDomain() *domain.Feedback {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	var ackAt *time.Time
	if m.AcknowledgedAt != nil {
		at := m.AcknowledgedAt.UTC()
		ackAt = &at
	}
	return &domain.Feedback{
		ID:                    m.ID.Hex(),
		ManagerID:             m.ManagerID.Hex(),
		EmployeeID:            m.EmployeeID.Hex(),
		Strengths:             m.Strengths,
		Improvements:          m.Improvements,
		Sentiment:             domain.Sentiment(m.Sentiment),
		Tags:                  tags,
		Anonymous:             m.Anonymous,
		Acknowledged:          m.Acknowledged,
		AcknowledgedAt:        ackAt,
		AcknowledgmentComment: m.AcknowledgmentComment,
		CreatedAt:             m.CreatedAt.UTC(),
		UpdatedAt:             m.UpdatedAt.UTC(),
	}
}

// Create inserts a new, unacknowledged feedback record.
func (r *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	author, ok := objectID(fb.ManagerID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	subject, ok := objectID(fb.EmployeeID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now()
	doc := mongoFeedback{
		ID:           primitive.NewObjectID(),
		ManagerID:    author,
		EmployeeID:   subject,
		Strengths:    fb.Strengths,
		Improvements: fb.Improvements,
		Sentiment:    string(fb.Sentiment),
		Tags:         fb.Tags,
		Anonymous:    fb.Anonymous,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFeedback
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByManager lists feedback authored by managerID, newest first.
func (r *FeedbackRepository) FindByManager(ctx context.Context, managerID string) ([]*domain.Feedback, error) {
	return r.findBy(ctx, "manager_id", managerID)
}

// FindByEmployee lists feedback about employeeID, newest first.
func (r *FeedbackRepository) FindByEmployee(ctx context.Context, employeeID string) ([]*domain.Feedback, error) {
	return r.findBy(ctx, "employee_id", employeeID)
}

func (r *FeedbackRepository) Update(ctx context.Context, id string, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}

	set := bson.M{"updated_at": r.now()}
	if patch.Strengths != nil {
		set["strengths"] = *patch.Strengths
	}
	if patch.Improvements != nil {
		set["improvements"] = *patch.Improvements
	}
	if patch.Sentiment != nil {
		set["sentiment"] = string(*patch.Sentiment)
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.EmployeeID != nil {
		subject, ok := objectID(*patch.EmployeeID)
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		set["employee_id"] = subject
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

// Acknowledge runs as a single pipeline update so concurrent acknowledgments
// cannot overwrite the first timestamp.
func (r *FeedbackRepository) Acknowledge(ctx context.Context, id, comment string, at time.Time) (*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}

	set := bson.D{
		{Key: "acknowledged", Value: true},
		{Key: "acknowledged_at", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$acknowledged_at", at}}}},
		{Key: "updated_at", Value: at},
	}
	if comment != "" {
		// $literal keeps a comment starting with "$" from being read as a field path.
		set = append(set, bson.E{Key: "acknowledgment_comment", Value: bson.D{{Key: "$literal", Value: comment}}})
	}

	return r.findOneAndUpdate(ctx, oid, mongo.Pipeline{{{Key: "$set", Value: set}}})
}

// EnsureIndexes creates necessary indexes on the feedback collection.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "manager_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}, {Key: "employee_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *FeedbackRepository) findBy(ctx context.Context, field, id string) ([]*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return []*domain.Feedback{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{field: oid}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFeedback
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	out := make([]*domain.Feedback, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *FeedbackRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update interface{}) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoFeedback
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return doc.toDomain(), nil
}
