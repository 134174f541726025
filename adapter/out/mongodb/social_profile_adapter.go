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

const collectionProfiles = "profiles"

var _ out.ProfileRepository = (*ProfileAdapter)(nil)

// ProfileAdapter implements out.ProfileRepository using MongoDB.
type ProfileAdapter struct {
	collection *mongo.Collection
}

// NewProfileAdapter creates a new MongoDB profile adapter.
func NewProfileAdapter(db *mongo.Database) *ProfileAdapter {
	return &ProfileAdapter{collection: db.Collection(collectionProfiles)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *ProfileAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}

func (a *ProfileAdapter) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var p domain.Profile
	err := a.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.DatabaseError("get profile", err)
	}
	return &p, nil
}

func (a *ProfileAdapter) List(ctx context.Context) ([]*domain.Profile, error) {
	cursor, err := a.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.DatabaseError("list profiles", err)
	}
	defer cursor.Close(ctx)

	profiles := make([]*domain.Profile, 0)
	for cursor.Next(ctx) {
		var p domain.Profile
		if err := cursor.Decode(&p); err != nil {
			return nil, apperr.DatabaseError("decode profile", err)
		}
		profiles = append(profiles, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.DatabaseError("iterate profiles", err)
	}
	return profiles, nil
}

func (a *ProfileAdapter) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if _, err := a.collection.InsertOne(ctx, profile); err != nil {
		return apperr.DatabaseError("insert profile", err)
	}
	return nil
}

// Update applies a $set built from the non-empty fields of upd.
func (a *ProfileAdapter) Update(ctx context.Context, userID primitive.ObjectID, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Profile
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": updateFields(upd)}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.DatabaseError("update profile", err)
	}
	return &p, nil
}

func updateFields(upd *domain.ProfileUpdate) bson.M {
	set := bson.M{"social": upd.Social}
	scalars := map[string]string{
		"company":        upd.Company,
		"website":        upd.Website,
		"location":       upd.Location,
		"status":         upd.Status,
		"bio":            upd.Bio,
		"githubusername": upd.GitHubUsername,
	}
	for key, v := range scalars {
		if v != "" {
			set[key] = v
		}
	}
	if len(upd.Skills) > 0 {
		set["skills"] = upd.Skills
	}
	return set
}

// Save replaces the stored document.
func (a *ProfileAdapter) Save(ctx context.Context, profile *domain.Profile) error {
	_, err := a.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return apperr.DatabaseError("save profile", err)
	}
	return nil
}

func (a *ProfileAdapter) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := a.collection.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return apperr.DatabaseError("delete profile", err)
	}
	return nil
}
