package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
)

// GormStore implements Store on Postgres via gorm
type GormStore struct {
	db     *gorm.DB
	logger logging.Logger
}

// New opens the database and migrates the schema
func New(cfg *config.Config) (*GormStore, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database DSN is not configured")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&models.CandidateProfile{},
		&models.Skill{},
		&models.Experience{},
		&models.Education{},
		&models.Project{},
		&models.Language{},
		&models.Interest{},
		&models.UserSettings{},
		&models.GeneratedApplication{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &GormStore{
		db:     db,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// GetProfile returns the user's profile with all sections loaded. A user
// without a profile gets an empty row created on first access.
func (s *GormStore) GetProfile(ctx context.Context, userID string) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := s.db.WithContext(ctx).
		Preload(clause.Associations).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.CandidateProfile{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func (s *GormStore) SaveProfile(ctx context.Context, profile *models.CandidateProfile) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(profile).Error
}

func (s *GormStore) GetApplication(ctx context.Context, id string) (*models.GeneratedApplication, error) {
	var app models.GeneratedApplication
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &app, nil
}

func (s *GormStore) ListApplications(ctx context.Context, userID string) ([]models.GeneratedApplication, error) {
	var apps []models.GeneratedApplication
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *GormStore) SaveApplication(ctx context.Context, app *models.GeneratedApplication) error {
	return s.db.WithContext(ctx).Save(app).Error
}

func (s *GormStore) DeleteApplication(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.GeneratedApplication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}
	return &settings, nil
}

func (s *GormStore) SaveUserSettings(ctx context.Context, settings *models.UserSettings) error {
	var existing models.UserSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", settings.UserID).First(&existing).Error
	if err == nil {
		settings.ID = existing.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing settings: %w", err)
	}
	return s.db.WithContext(ctx).Save(settings).Error
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
