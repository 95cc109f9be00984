package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"skillswap/database"
	"skillswap/models"
	"skillswap/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	ratingColl *mongo.Collection
	userColl   *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	db := database.MongoClient.Database("skillswap")
	repo := &MongoRatingRepo{
		ratingColl: db.Collection("session_ratings"),
		userColl:   db.Collection("users"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique compound index backing the one-rating-per-
// mentor-per-session invariant.
func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "mentorUid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.ratingColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// FindBySession retrieves the rating for a (session, mentor) pair.
func (r *MongoRatingRepo) FindBySession(sessionID, mentorUID string) (*models.SessionRating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"sessionId": sessionID, "mentorUid": mentorUID}
	var rating models.SessionRating
	if err := r.ratingColl.FindOne(ctx, filter).Decode(&rating); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rating for session %s: %w", sessionID, err)
	}
	return &rating, nil
}

// RecordRating inserts the rating and the mentor aggregate update atomically.
// The unique (sessionId, mentorUid) index turns a concurrent duplicate into an
// insert failure, which aborts the whole transaction.
func (r *MongoRatingRepo) RecordRating(ctx context.Context, rating *models.SessionRating, newScore float64, newCount, newTotalPoints int) error {
	client := r.ratingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.ratingColl.InsertOne(sc, rating); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return utils.NewConflict("this session has already been rated")
			}
			return fmt.Errorf("insert rating failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"badgeScore":       newScore,
			"badgeCount":       newCount,
			"totalBadgePoints": newTotalPoints,
			"updatedAt":        time.Now(),
		}}
		res, err := r.userColl.UpdateOne(sc, bson.M{"uid": rating.MentorUID}, update)
		if err != nil {
			return fmt.Errorf("update mentor reputation failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("mentor %s not found", rating.MentorUID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("rating transaction failed: %w", err)
	}

	return nil
}

// DeleteByUser removes ratings given by or received by a user.
func (r *MongoRatingRepo) DeleteByUser(uid string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{bson.M{"mentorUid": uid}, bson.M{"raterUid": uid}}}
	if _, err := r.ratingColl.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete ratings for %s: %w", uid, err)
	}
	return nil
}
