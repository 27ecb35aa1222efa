package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

// OrganizationRepository handles organization table operations using GORM
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new GORM-based organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// GetByID retrieves an organization by its ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*gormModels.Organization, error) {
	var org gormModels.Organization

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}

	return &org, nil
}

// GetAll retrieves all active organizations
func (r *OrganizationRepository) GetAll(ctx context.Context) ([]gormModels.Organization, error) {
	var orgs []gormModels.Organization

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&orgs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch organizations: %w", err)
	}

	return orgs, nil
}

// GetUserRole returns the caller's active role in an organization, nil when
// the user is not a member.
func (r *OrganizationRepository) GetUserRole(ctx context.Context, organizationID, userID string) (*gormModels.OrgUserRole, error) {
	var role gormModels.OrgUserRole

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ? AND is_active = ?", organizationID, userID, true).
		First(&role).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	return &role, nil
}
