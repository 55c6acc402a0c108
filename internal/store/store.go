package store

import (
	"context"
	"errors"

	"webcv-utils/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary for profiles, generated applications
// and user settings
type Store interface {
	// GetProfile returns the user's profile, creating an empty one for
	// first-time users
	GetProfile(ctx context.Context, userID string) (*models.CandidateProfile, error)
	SaveProfile(ctx context.Context, profile *models.CandidateProfile) error

	GetApplication(ctx context.Context, id string) (*models.GeneratedApplication, error)
	ListApplications(ctx context.Context, userID string) ([]models.GeneratedApplication, error)
	SaveApplication(ctx context.Context, app *models.GeneratedApplication) error
	DeleteApplication(ctx context.Context, id string) error

	GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	SaveUserSettings(ctx context.Context, settings *models.UserSettings) error

	Close() error
}
