package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

// AircraftRepository handles aircraft table operations using GORM
type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new GORM-based aircraft repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// GetByID retrieves an aircraft by id within an organization
func (r *AircraftRepository) GetByID(ctx context.Context, organizationID, id string) (*gormModels.Aircraft, error) {
	var ac gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&ac).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &ac, nil
}

// GetByRegistration retrieves an aircraft by its tail number
func (r *AircraftRepository) GetByRegistration(ctx context.Context, organizationID, registration string) (*gormModels.Aircraft, error) {
	var ac gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND registration = ?", organizationID, registration).
		First(&ac).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &ac, nil
}

// GetAll retrieves all active aircraft in an organization
func (r *AircraftRepository) GetAll(ctx context.Context, organizationID string) ([]gormModels.Aircraft, error) {
	var fleet []gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Order("registration ASC").
		Find(&fleet).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch fleet: %w", err)
	}

	return fleet, nil
}

// Insert persists a new aircraft
func (r *AircraftRepository) Insert(ctx context.Context, ac *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Create(ac).Error; err != nil {
		return fmt.Errorf("failed to insert aircraft: %w", err)
	}
	return nil
}
