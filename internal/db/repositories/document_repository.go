package repositories

import (
	"context"
	"errors"
	"fmt"

	"flightbay/techlog/internal/constants"
	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

// DocumentRepository handles manual/library/chart metadata using GORM
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new GORM-based document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetByID retrieves a document by id within an organization
func (r *DocumentRepository) GetByID(ctx context.Context, organizationID, id string) (*gormModels.Document, error) {
	var doc gormModels.Document

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&doc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return &doc, nil
}

// GetByCategory retrieves active documents of one category, newest first
func (r *DocumentRepository) GetByCategory(ctx context.Context, organizationID string, category constants.DocumentCategory) ([]gormModels.Document, error) {
	var docs []gormModels.Document

	q := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return docs, nil
}

// Insert persists new document metadata
func (r *DocumentRepository) Insert(ctx context.Context, doc *gormModels.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// SoftDelete marks a document inactive
func (r *DocumentRepository) SoftDelete(ctx context.Context, organizationID, id string) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Document{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Update("is_active", false)

	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found with id: %s", id)
	}
	return nil
}
