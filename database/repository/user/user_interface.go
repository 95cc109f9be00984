package userRepo

import (
	"skillswap/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for profile data access.
type UserRepository interface {
	// GetByUID retrieves a profile by its Firebase uid. Returns nil when absent.
	GetByUID(uid string) (*models.UserProfile, error)
	// GetAll retrieves all profiles. Used as the candidate source for matching.
	GetAll() ([]models.UserProfile, error)
	// Create inserts a new profile document.
	Create(user *models.UserProfile) error
	// Update overwrites an existing profile document.
	Update(user *models.UserProfile) error
	// UpdateFields applies a partial field update to a profile.
	UpdateFields(uid string, fields bson.M) error
	// Delete removes a profile document by uid.
	Delete(uid string) error
}
