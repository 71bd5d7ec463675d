package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstack-art/FormNest/internal/model"
)

// SubmissionRepo handles MongoDB operations for accepted submissions.
// Submissions are immutable once stored; there is no Update.
type SubmissionRepo interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	GetByFormID(ctx context.Context, formID string) ([]*model.Submission, error)
	CountByFormID(ctx context.Context, formID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository.
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid.Hex()
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var submission model.Submission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) GetByFormID(ctx context.Context, formID string) ([]*model.Submission, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID},
		options.Find().SetSort(bson.M{"submittedAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []*model.Submission
	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) CountByFormID(ctx context.Context, formID string) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"formId": formID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *submissionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
