package dtos

import "time"

// APIResponse is the standard JSON envelope for every endpoint.
type APIResponse struct {
	Status       string      `json:"status"`
	Message      string      `json:"message,omitempty"`
	ResponseTime string      `json:"response_time,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// DailyLogResponse is a stored log with its computed totals.
type DailyLogResponse struct {
	ID           uint   `json:"id"`
	AircraftID   string `json:"aircraft_id"`
	Registration string `json:"registration,omitempty"`
	LogDate      string `json:"log_date"`

	AirframeTime *string `json:"airframe_time,omitempty"`
	EngineTime   *string `json:"engine_time,omitempty"`
	Landings     *int    `json:"landings,omitempty"`
	Cycles       *int    `json:"cycles,omitempty"`
	Starts       *int    `json:"starts,omitempty"`
	GGCycles     *int    `json:"gg_cycles,omitempty"`
	FTCycles     *int    `json:"ft_cycles,omitempty"`
	UsageNote    *string `json:"usage_note,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`

	TotalAirframeHours  string `json:"total_airframe_hours"`
	TotalEngineHoursTSN string `json:"total_engine_hours_tsn"`
	TotalLandings       int    `json:"total_landings"`
	TotalCycles         int    `json:"total_cycles"`
	TotalStarts         int    `json:"total_starts"`
	TotalGGCyclesTSN    int    `json:"total_gg_cycles_tsn"`
	TotalFTCyclesTSN    int    `json:"total_ft_cycles_tsn"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type DailyLogListResponse struct {
	Logs  []DailyLogResponse `json:"logs"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

type FleetSummaryEntry struct {
	AircraftID          string `json:"aircraft_id"`
	Registration        string `json:"registration"`
	AsOfDate            string `json:"as_of_date"`
	TotalAirframeHours  string `json:"total_airframe_hours"`
	TotalEngineHoursTSN string `json:"total_engine_hours_tsn"`
	TotalLandings       int    `json:"total_landings"`
	TotalCycles         int    `json:"total_cycles"`
	TotalStarts         int    `json:"total_starts"`
}

// InspectionStatusEntry is one schedule evaluated against current totals.
type InspectionStatusEntry struct {
	InspectionID     string   `json:"inspection_id"`
	AircraftID       string   `json:"aircraft_id"`
	Name             string   `json:"name"`
	HoursRemaining   *float64 `json:"hours_remaining,omitempty"`
	LandingsLeft     *int     `json:"landings_remaining,omitempty"`
	DaysRemaining    *int     `json:"days_remaining,omitempty"`
	Due              bool     `json:"due"`
	EvaluatedAgainst string   `json:"evaluated_against,omitempty"`
}

type DocumentLinkResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
