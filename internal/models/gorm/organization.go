package gorm

import "time"

type Organization struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Aircraft  []Aircraft    `gorm:"foreignKey:OrganizationID"`
	UserRoles []OrgUserRole `gorm:"foreignKey:OrganizationID"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}
