package ratingRepo

import (
	"context"

	"skillswap/models"
)

// RatingRepository defines methods for session rating data access.
type RatingRepository interface {
	// FindBySession retrieves the rating for a (session, mentor) pair.
	// Returns nil when none exists.
	FindBySession(sessionID, mentorUID string) (*models.SessionRating, error)
	// RecordRating inserts the rating and applies the mentor's updated
	// reputation aggregates in a single transaction. The uniqueness of the
	// (session, mentor) pair is enforced inside the transaction so concurrent
	// submissions cannot both commit.
	RecordRating(ctx context.Context, rating *models.SessionRating, newScore float64, newCount, newTotalPoints int) error
	// DeleteByUser removes ratings given by or received by a user. Used by the
	// profile deletion cascade.
	DeleteByUser(uid string) error
}
