package gorm

import "time"

type Aircraft struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index:idx_aircraft_org_reg,unique"`
	Registration   string    `gorm:"column:registration;index:idx_aircraft_org_reg,unique"`
	Model          string    `gorm:"column:model"`
	SerialNumber   *string   `gorm:"column:serial_number"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}
