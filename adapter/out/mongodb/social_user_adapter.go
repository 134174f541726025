package mongodb

import (
	"context"
	"errors"
	"fmt"

	"social_server/core/domain"
	"social_server/core/port/out"
	"social_server/pkg/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionUsers = "users"

var _ out.UserRepository = (*UserAdapter)(nil)

// UserAdapter implements out.UserRepository using MongoDB.
type UserAdapter struct {
	collection *mongo.Collection
}

// NewUserAdapter creates a new MongoDB user adapter.
func NewUserAdapter(db *mongo.Database) *UserAdapter {
	return &UserAdapter{collection: db.Collection(collectionUsers)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *UserAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (a *UserAdapter) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := a.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return apperr.DatabaseError("insert user", err)
	}
	return nil
}

func (a *UserAdapter) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"_id": id})
}

func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"email": email})
}

func (a *UserAdapter) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := a.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.DatabaseError("get user", err)
	}
	return &user, nil
}

// GetSummaries loads name and avatar for a batch of users with one $in query.
func (a *UserAdapter) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.UserSummary, error) {
	result := make(map[primitive.ObjectID]*domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "avatar": 1})
	cursor, err := a.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, apperr.DatabaseError("query users", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var s domain.UserSummary
		if err := cursor.Decode(&s); err != nil {
			return nil, apperr.DatabaseError("decode user", err)
		}
		result[s.ID] = &s
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.DatabaseError("iterate users", err)
	}
	return result, nil
}

func (a *UserAdapter) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := a.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperr.DatabaseError("delete user", err)
	}
	return nil
}
