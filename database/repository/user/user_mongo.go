package userRepo

import (
	"context"
	"fmt"
	"time"

	"skillswap/database"
	"skillswap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("skillswap").Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "skillsOffered", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUID retrieves a profile by uid. Documents written by earlier clients may
// omit availability fields; Normalize fills those before the profile is used.
func (r *MongoUserRepo) GetByUID(uid string) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with uid %s: %w", uid, err)
	}
	user.Normalize()
	return &user, nil
}

// GetAll retrieves all profiles.
func (r *MongoUserRepo) GetAll() ([]models.UserProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.UserProfile
	for cursor.Next(ctx) {
		var u models.UserProfile
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		u.Normalize()
		users = append(users, u)
	}
	return users, nil
}

// Create inserts a new profile document.
func (r *MongoUserRepo) Create(user *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Normalize()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update overwrites an existing profile document.
func (r *MongoUserRepo) Update(user *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"uid": user.UID}
	update := bson.M{"$set": user}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with uid %s: %w", user.UID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with uid %s not found", user.UID)
	}
	return nil
}

// UpdateFields applies a partial field update to a profile.
func (r *MongoUserRepo) UpdateFields(uid string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update fields for uid %s: %w", uid, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with uid %s not found", uid)
	}
	return nil
}

// Delete removes a profile document by uid.
func (r *MongoUserRepo) Delete(uid string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"uid": uid})
	if err != nil {
		return fmt.Errorf("failed to delete user with uid %s: %w", uid, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user with uid %s not found", uid)
	}
	return nil
}
