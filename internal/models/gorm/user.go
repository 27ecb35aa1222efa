package gorm

import (
	"time"

	"flightbay/techlog/internal/constants"
)

type User struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	FullName  string    `gorm:"column:full_name"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	OrgRoles []OrgUserRole `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

type OrgUserRole struct {
	ID             string            `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID         string            `gorm:"column:user_id;type:uuid"`
	OrganizationID string            `gorm:"column:organization_id;type:uuid"`
	Role           constants.OrgRole `gorm:"column:role;type:org_role"`
	IsActive       bool              `gorm:"column:is_active;default:true"`
	JoinedAt       time.Time         `gorm:"column:joined_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID"`
	Organization Organization `gorm:"foreignKey:OrganizationID"`
}

// TableName specifies the table name for GORM
func (OrgUserRole) TableName() string {
	return "organization_user_roles"
}
