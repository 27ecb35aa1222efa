package dtos

// DailyLogSubmitRequest carries the delta fields for one day's entry.
// Totals are never accepted from the client.
type DailyLogSubmitRequest struct {
	AircraftID   string  `json:"aircraft_id"`
	LogDate      string  `json:"log_date"` // YYYY-MM-DD
	AirframeTime *string `json:"airframe_time,omitempty"`
	EngineTime   *string `json:"engine_time,omitempty"`
	Landings     *int    `json:"landings,omitempty"`
	Cycles       *int    `json:"cycles,omitempty"`
	Starts       *int    `json:"starts,omitempty"`
	GGCycles     *int    `json:"gg_cycles,omitempty"`
	FTCycles     *int    `json:"ft_cycles,omitempty"`
	UsageNote    *string `json:"usage_note,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

// DailyLogUpdateRequest is a partial edit: nil means "leave unchanged".
// Clearing a delta field is done by sending an empty string / zero value.
type DailyLogUpdateRequest struct {
	AircraftID   *string `json:"aircraft_id,omitempty"`
	LogDate      *string `json:"log_date,omitempty"`
	AirframeTime *string `json:"airframe_time,omitempty"`
	EngineTime   *string `json:"engine_time,omitempty"`
	Landings     *int    `json:"landings,omitempty"`
	Cycles       *int    `json:"cycles,omitempty"`
	Starts       *int    `json:"starts,omitempty"`
	GGCycles     *int    `json:"gg_cycles,omitempty"`
	FTCycles     *int    `json:"ft_cycles,omitempty"`
	UsageNote    *string `json:"usage_note,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

type AircraftCreateRequest struct {
	Registration string  `json:"registration"`
	Model        string  `json:"model"`
	SerialNumber *string `json:"serial_number,omitempty"`
}

type InspectionCreateRequest struct {
	AircraftID       string   `json:"aircraft_id"`
	Name             string   `json:"name"`
	IntervalHours    *float64 `json:"interval_hours,omitempty"`
	IntervalLandings *int     `json:"interval_landings,omitempty"`
	IntervalDays     *int     `json:"interval_days,omitempty"`
	LastDoneDate     *string  `json:"last_done_date,omitempty"`
}

type DocumentCreateRequest struct {
	AircraftID *string `json:"aircraft_id,omitempty"`
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	FileKey    string  `json:"file_key"`
	Revision   *string `json:"revision,omitempty"`
	IssuedAt   *string `json:"issued_at,omitempty"`
}

type LedgerRebuildRequest struct {
	AircraftID string `json:"aircraft_id"`
	FromDate   string `json:"from_date,omitempty"` // empty = whole scope
}
