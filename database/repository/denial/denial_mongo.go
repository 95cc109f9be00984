package denialRepo

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

// MongoDenialRepo implements DenialRepository using MongoDB.
type MongoDenialRepo struct {
	coll *mongo.Collection
}

// NewMongoDenialRepo creates a new instance of DenialRepository using MongoDB.
func NewMongoDenialRepo() DenialRepository {
	coll := database.MongoClient.Database("skillswap").Collection("denials")
	repo := &MongoDenialRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDenialRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "learnerUid", Value: 1}, {Key: "mentorUid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Add records a learner's rejection of a mentor. Re-denying is a no-op.
func (r *MongoDenialRepo) Add(learnerUID, mentorUID, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"learnerUid": learnerUID, "mentorUid": mentorUID}
	denial := models.Denial{
		LearnerUID: learnerUID,
		MentorUID:  mentorUID,
		Reason:     reason,
		DeniedAt:   time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, denial, opts); err != nil {
		return fmt.Errorf("failed to store denial %s -> %s: %w", learnerUID, mentorUID, err)
	}
	return nil
}

// ListDenied retrieves the mentor uids a learner has rejected.
func (r *MongoDenialRepo) ListDenied(learnerUID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"learnerUid": learnerUID})
	if err != nil {
		return nil, fmt.Errorf("failed to list denials for %s: %w", learnerUID, err)
	}
	defer cursor.Close(ctx)

	var denied []string
	for cursor.Next(ctx) {
		var d models.Denial
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode denial: %w", err)
		}
		denied = append(denied, d.MentorUID)
	}
	return denied, nil
}

// DeleteByUser removes denials involving a user in either role.
func (r *MongoDenialRepo) DeleteByUser(uid string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{bson.M{"learnerUid": uid}, bson.M{"mentorUid": uid}}}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete denials for %s: %w", uid, err)
	}
	return nil
}
