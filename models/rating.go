package models

import "time"

// SessionRating is an immutable 1-5 rating of a mentor for one session.
// At most one rating may exist per (sessionId, mentorUid) pair.
type SessionRating struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"session_id"`
	MentorUID string    `bson:"mentorUid" json:"mentor_uid"`
	RaterUID  string    `bson:"raterUid" json:"rater_uid"`
	Rating    int       `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// RateSessionRequest is the payload for the rating endpoint.
type RateSessionRequest struct {
	SessionID string `json:"sessionId"`
	MentorUID string `json:"mentorUid"`
	Rating    int    `json:"rating"`
}

// RatingResult reports the outcome of a rating submission.
type RatingResult struct {
	RatingID            string  `json:"ratingId"`
	MentorNewBadgeScore float64 `json:"mentor_new_badge_score"`
	MentorTotalRatings  int     `json:"mentor_total_ratings"`
	RatingGiven         int     `json:"rating_given"`
}
