package skillRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap/database"
	"skillswap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSkillRepo implements SkillRepository using MongoDB.
type MongoSkillRepo struct {
	coll *mongo.Collection
}

// NewMongoSkillRepo creates a new instance of SkillRepository using MongoDB.
func NewMongoSkillRepo() SkillRepository {
	coll := database.MongoClient.Database("skillswap").Collection("skill_popularity")
	return &MongoSkillRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Increment bumps a skill's popularity counter. Skill names are keyed
// case-insensitively; the display name keeps the first writer's casing.
func (r *MongoSkillRepo) Increment(name string, delta int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"_id": strings.ToLower(name)}
	update := bson.M{
		"$inc":         bson.M{"count": delta},
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{"name": name},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to update skill popularity for %q: %w", name, err)
	}
	return nil
}

// TopSkills retrieves the most offered skills.
func (r *MongoSkillRepo) TopSkills(limit int) ([]models.SkillPopularity, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "count", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top skills: %w", err)
	}
	defer cursor.Close(ctx)

	var skills []models.SkillPopularity
	for cursor.Next(ctx) {
		var s models.SkillPopularity
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, nil
}
