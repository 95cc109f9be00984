package models

import "time"

// Denial records a learner's rejection of a mentor. Append-only, no expiry;
// a denied mentor never reappears in that learner's match results.
type Denial struct {
	LearnerUID string    `bson:"learnerUid" json:"learner_uid"`
	MentorUID  string    `bson:"mentorUid" json:"mentor_uid"`
	Reason     string    `bson:"reason" json:"reason"`
	DeniedAt   time.Time `bson:"deniedAt" json:"denied_at"`
}
