package denialRepo

// DenialRepository defines methods for learner denial data access.
type DenialRepository interface {
	// Add records a learner's rejection of a mentor. Idempotent.
	Add(learnerUID, mentorUID, reason string) error
	// ListDenied retrieves the mentor uids a learner has rejected.
	ListDenied(learnerUID string) ([]string, error)
	// DeleteByUser removes denials involving a user in either role. Used by
	// the profile deletion cascade.
	DeleteByUser(uid string) error
}
