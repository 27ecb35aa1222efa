package services

import (
	"context"
	"fmt"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
)

// DocumentService manages manual/library/chart metadata and issues presigned
// download links. File contents live in object storage and never pass
// through this service.
type DocumentService struct {
	docRepo *repositories.DocumentRepository
	signer  *common.LinkSignerService
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo *repositories.DocumentRepository, signer *common.LinkSignerService) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		signer:  signer,
	}
}

func validCategory(c string) bool {
	switch constants.DocumentCategory(c) {
	case constants.DocCategoryManual, constants.DocCategoryLibrary, constants.DocCategoryChart:
		return true
	}
	return false
}

// CreateDocument registers metadata for an already-uploaded file.
func (s *DocumentService) CreateDocument(ctx context.Context, organizationID, actingUserID string, req *dtos.DocumentCreateRequest) (*gormModels.Document, error) {
	if !validCategory(req.Category) {
		return nil, fmt.Errorf("invalid document category %q", req.Category)
	}
	if req.Title == "" || req.FileKey == "" {
		return nil, fmt.Errorf("title and file_key are required")
	}

	doc := &gormModels.Document{
		OrganizationID: organizationID,
		AircraftID:     req.AircraftID,
		Category:       constants.DocumentCategory(req.Category),
		Title:          req.Title,
		FileKey:        req.FileKey,
		Revision:       req.Revision,
		IsActive:       true,
		UploadedBy:     actingUserID,
	}

	if req.IssuedAt != nil {
		issued, err := time.Parse(logDateLayout, *req.IssuedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid issued_at: %w", err)
		}
		doc.IssuedAt = &issued
	}

	if err := s.docRepo.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns active documents, optionally filtered by category.
func (s *DocumentService) ListDocuments(ctx context.Context, organizationID, category string) ([]gormModels.Document, error) {
	if category != "" && !validCategory(category) {
		return nil, fmt.Errorf("invalid document category %q", category)
	}
	return s.docRepo.GetByCategory(ctx, organizationID, constants.DocumentCategory(category))
}

// DeleteDocument soft-deletes document metadata.
func (s *DocumentService) DeleteDocument(ctx context.Context, organizationID, id string) error {
	doc, err := s.docRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%s", constants.GetErrorMessage(constants.ErrCodeDocumentNotFound))
	}
	return s.docRepo.SoftDelete(ctx, organizationID, id)
}

// GenerateDownloadLink issues a single-use presigned link for a document.
func (s *DocumentService) GenerateDownloadLink(ctx context.Context, organizationID, userID, documentID string, ttl time.Duration) (*dtos.DocumentLinkResponse, error) {
	doc, err := s.docRepo.GetByID(ctx, organizationID, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || !doc.IsActive {
		return nil, fmt.Errorf("%s", constants.GetErrorMessage(constants.ErrCodeDocumentNotFound))
	}

	token, err := s.signer.SignLink(userID, organizationID, doc.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign download link: %w", err)
	}

	return &dtos.DocumentLinkResponse{
		URL:       "/files/download?token=" + token,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}
