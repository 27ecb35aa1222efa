package gorm

import "time"

// Inspection is an out-of-phase inspection schedule for one aircraft.
// Due status is derived from the ledger's current cumulative totals, never
// stored as authoritative state; the snapshot columns only record when the
// inspection was last carried out.
type Inspection struct {
	ID             string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	OrganizationID string `gorm:"column:organization_id;type:uuid;index"`
	AircraftID     string `gorm:"column:aircraft_id;type:uuid;index"`
	Name           string `gorm:"column:name"`

	// At least one interval must be set.
	IntervalHours    *float64 `gorm:"column:interval_hours"`
	IntervalLandings *int     `gorm:"column:interval_landings"`
	IntervalDays     *int     `gorm:"column:interval_days"`

	// Snapshot taken when the inspection was last completed.
	LastDoneDate          *time.Time `gorm:"column:last_done_date;type:date"`
	LastDoneAirframeHours *float64   `gorm:"column:last_done_airframe_hours"`
	LastDoneLandings      *int       `gorm:"column:last_done_landings"`

	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedBy string    `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Inspection) TableName() string {
	return "inspections"
}
