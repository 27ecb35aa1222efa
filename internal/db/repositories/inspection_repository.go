package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

// InspectionRepository handles out-of-phase inspection schedules using GORM
type InspectionRepository struct {
	db *gorm.DB
}

// NewInspectionRepository creates a new GORM-based inspection repository
func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// GetByID retrieves an inspection by id within an organization
func (r *InspectionRepository) GetByID(ctx context.Context, organizationID, id string) (*gormModels.Inspection, error) {
	var insp gormModels.Inspection

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&insp).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch inspection: %w", err)
	}

	return &insp, nil
}

// GetAll retrieves active inspections for an organization, optionally
// filtered to one aircraft.
func (r *InspectionRepository) GetAll(ctx context.Context, organizationID, aircraftID string) ([]gormModels.Inspection, error) {
	var inspections []gormModels.Inspection

	q := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true)
	if aircraftID != "" {
		q = q.Where("aircraft_id = ?", aircraftID)
	}

	if err := q.Order("name ASC").Find(&inspections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch inspections: %w", err)
	}

	return inspections, nil
}

// Insert persists a new inspection schedule
func (r *InspectionRepository) Insert(ctx context.Context, insp *gormModels.Inspection) error {
	if err := r.db.WithContext(ctx).Create(insp).Error; err != nil {
		return fmt.Errorf("failed to insert inspection: %w", err)
	}
	return nil
}

// MarkDone records a completion snapshot for an inspection
func (r *InspectionRepository) MarkDone(ctx context.Context, organizationID, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Inspection{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update inspection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("inspection not found with id: %s", id)
	}
	return nil
}
