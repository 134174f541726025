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

const collectionPosts = "posts"

var _ out.PostRepository = (*PostAdapter)(nil)

// PostAdapter implements out.PostRepository using MongoDB. Likes and comments
// are embedded in the post document.
type PostAdapter struct {
	collection *mongo.Collection
}

// NewPostAdapter creates a new MongoDB post adapter.
func NewPostAdapter(db *mongo.Database) *PostAdapter {
	return &PostAdapter{collection: db.Collection(collectionPosts)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *PostAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	if _, err := a.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}

func (a *PostAdapter) Create(ctx context.Context, post *domain.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, err := a.collection.InsertOne(ctx, post); err != nil {
		return apperr.DatabaseError("insert post", err)
	}
	return nil
}

func (a *PostAdapter) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := a.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.DatabaseError("get post", err)
	}
	return &p, nil
}

func (a *PostAdapter) List(ctx context.Context) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := a.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.DatabaseError("list posts", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0)
	for cursor.Next(ctx) {
		var p domain.Post
		if err := cursor.Decode(&p); err != nil {
			return nil, apperr.DatabaseError("decode post", err)
		}
		posts = append(posts, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.DatabaseError("iterate posts", err)
	}
	return posts, nil
}

func (a *PostAdapter) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := a.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperr.DatabaseError("delete post", err)
	}
	return nil
}

func (a *PostAdapter) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := a.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, apperr.DatabaseError("delete posts", err)
	}
	return res.DeletedCount, nil
}

func (a *PostAdapter) UpdateLikes(ctx context.Context, id primitive.ObjectID, likes []domain.Like) error {
	return a.setField(ctx, id, "likes", likes)
}

func (a *PostAdapter) UpdateComments(ctx context.Context, id primitive.ObjectID, comments []domain.Comment) error {
	return a.setField(ctx, id, "comments", comments)
}

func (a *PostAdapter) setField(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return apperr.DatabaseError("update post "+field, err)
	}
	return nil
}
