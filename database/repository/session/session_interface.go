package sessionRepo

import "skillswap/models"

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	// Create inserts a new session record and returns its id.
	Create(session *models.Session) (string, error)
	// GetByID retrieves a session by id. Returns nil when absent.
	GetByID(id string) (*models.Session, error)
	// ListByParticipant retrieves sessions a user belongs to, optionally
	// filtered by status ("" means any).
	ListByParticipant(uid, status string) ([]models.Session, error)
	// UpdateStatus transitions a session's status.
	UpdateStatus(id, status string) error
	// DeleteByParticipant removes all sessions a user belongs to. Used by the
	// profile deletion cascade.
	DeleteByParticipant(uid string) error
}
