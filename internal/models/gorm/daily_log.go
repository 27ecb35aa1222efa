package gorm

import "time"

// DailyLog is one day's techlog entry for an aircraft.
//
// The delta columns hold what the crew reported for that day. The total_*
// columns are the running sums over every active log in the same
// (organization, aircraft) scope with log_date <= this row's date; they are
// owned by the ledger service and must never be written by anything else.
type DailyLog struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	OrganizationID string    `gorm:"column:organization_id;type:uuid;index:idx_logs_scope_date,priority:1"`
	AircraftID     string    `gorm:"column:aircraft_id;type:uuid;index:idx_logs_scope_date,priority:2"`
	LogDate        time.Time `gorm:"column:log_date;type:date;index:idx_logs_scope_date,priority:3"`

	// Delta fields, as submitted. Flight times are "HH:MM" strings.
	AirframeTime *string `gorm:"column:airframe_time;type:varchar(8)"`
	EngineTime   *string `gorm:"column:engine_time;type:varchar(8)"`
	Landings     *int    `gorm:"column:landings"`
	Cycles       *int    `gorm:"column:cycles"`
	Starts       *int    `gorm:"column:starts"`
	GGCycles     *int    `gorm:"column:gg_cycles"`
	FTCycles     *int    `gorm:"column:ft_cycles"`
	UsageNote    *string `gorm:"column:usage_note;type:text"`
	Remarks      *string `gorm:"column:remarks;type:text"`

	// Cumulative fields, engine-owned. Hour totals are decimal strings
	// fixed to two places ("123.45").
	TotalAirframeHours  string `gorm:"column:total_airframe_hours;type:varchar(16);default:'0.00'"`
	TotalEngineHoursTSN string `gorm:"column:total_engine_hours_tsn;type:varchar(16);default:'0.00'"`
	TotalLandings       int    `gorm:"column:total_landings;default:0"`
	TotalCycles         int    `gorm:"column:total_cycles;default:0"`
	TotalStarts         int    `gorm:"column:total_starts;default:0"`
	TotalGGCyclesTSN    int    `gorm:"column:total_gg_cycles_tsn;default:0"`
	TotalFTCyclesTSN    int    `gorm:"column:total_ft_cycles_tsn;default:0"`

	// Soft delete: inactive rows are excluded from totals and listings.
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedBy string    `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (DailyLog) TableName() string {
	return "daily_logs"
}
