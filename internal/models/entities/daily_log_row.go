package entities

import "time"

// DailyLogRow is the sqlx read-model for techlog listings. Totals are read
// as stored; the ledger service keeps them consistent.
type DailyLogRow struct {
	ID             uint      `db:"id"`
	OrganizationID string    `db:"organization_id"`
	AircraftID     string    `db:"aircraft_id"`
	Registration   string    `db:"registration"`
	LogDate        time.Time `db:"log_date"`

	AirframeTime *string `db:"airframe_time"`
	EngineTime   *string `db:"engine_time"`
	Landings     *int    `db:"landings"`
	Cycles       *int    `db:"cycles"`
	Starts       *int    `db:"starts"`
	UsageNote    *string `db:"usage_note"`
	Remarks      *string `db:"remarks"`

	TotalAirframeHours  string `db:"total_airframe_hours"`
	TotalEngineHoursTSN string `db:"total_engine_hours_tsn"`
	TotalLandings       int    `db:"total_landings"`
	TotalCycles         int    `db:"total_cycles"`
	TotalStarts         int    `db:"total_starts"`
	TotalGGCyclesTSN    int    `db:"total_gg_cycles_tsn"`
	TotalFTCyclesTSN    int    `db:"total_ft_cycles_tsn"`

	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

// FleetSummaryRow is the latest ledger position for one aircraft.
type FleetSummaryRow struct {
	AircraftID          string    `db:"aircraft_id"`
	Registration        string    `db:"registration"`
	LogDate             time.Time `db:"log_date"`
	TotalAirframeHours  string    `db:"total_airframe_hours"`
	TotalEngineHoursTSN string    `db:"total_engine_hours_tsn"`
	TotalLandings       int       `db:"total_landings"`
	TotalCycles         int       `db:"total_cycles"`
	TotalStarts         int       `db:"total_starts"`
}
