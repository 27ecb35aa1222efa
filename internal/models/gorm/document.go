package gorm

import (
	"time"

	"flightbay/techlog/internal/constants"
)

// Document is metadata for a company manual, technical library file or
// monitoring chart. The file itself lives in object storage; we only keep
// the key and issue presigned links for it.
type Document struct {
	ID             string                     `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	OrganizationID string                     `gorm:"column:organization_id;type:uuid;index"`
	AircraftID     *string                    `gorm:"column:aircraft_id;type:uuid;index"`
	Category       constants.DocumentCategory `gorm:"column:category;type:varchar(20)"`
	Title          string                     `gorm:"column:title"`
	FileKey        string                     `gorm:"column:file_key"`
	Revision       *string                    `gorm:"column:revision"`
	IssuedAt       *time.Time                 `gorm:"column:issued_at;type:date"`
	IsActive       bool                       `gorm:"column:is_active;default:true"`
	UploadedBy     string                     `gorm:"column:uploaded_by;type:uuid"`
	CreatedAt      time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Document) TableName() string {
	return "documents"
}
