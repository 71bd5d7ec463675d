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

// FormRepo handles MongoDB operations for form schemas.
type FormRepo interface {
	Create(ctx context.Context, form *model.FormSchema) (string, error)
	GetByID(ctx context.Context, id string) (*model.FormSchema, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*model.FormSchema, error)
	Update(ctx context.Context, form *model.FormSchema) error
	Delete(ctx context.Context, id string) error
	// IncrementResponseCount applies a post-acceptance counter delta. The
	// $inc is atomic in Mongo, but the validator's count snapshot is read
	// separately, so transient over-acceptance near the limit is possible.
	IncrementResponseCount(ctx context.Context, id string, delta int) error
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new form repository.
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func (r *formRepo) Create(ctx context.Context, form *model.FormSchema) (string, error) {
	form.CreatedAt = time.Now()
	form.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	form.ID = oid.Hex()
	return form.ID, nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*model.FormSchema, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var form model.FormSchema
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.FormSchema, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []*model.FormSchema
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) Update(ctx context.Context, form *model.FormSchema) error {
	oid, err := primitive.ObjectIDFromHex(form.ID)
	if err != nil {
		return err
	}

	form.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":       form.Title,
		"description": form.Description,
		"fields":      form.Fields,
		"theme":       form.Theme,
		"settings":    form.Settings,
		"updatedAt":   form.UpdatedAt,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *formRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *formRepo) IncrementResponseCount(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"responsesCount": delta}})
	return err
}
