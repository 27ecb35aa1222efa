package constants

const (
	GetApiKeyStatus = `
	SELECT id, key, is_active FROM api_keys WHERE key = $1
	`

	// Listing reads totals straight from storage; the recompute engine is the
	// only writer of the total_* columns so no aggregation happens here.
	SearchDailyLogs = `
	SELECT dl.id,
	       dl.organization_id,
	       dl.aircraft_id,
	       ac.registration,
	       dl.log_date,
	       dl.airframe_time,
	       dl.engine_time,
	       dl.landings,
	       dl.cycles,
	       dl.starts,
	       dl.usage_note,
	       dl.remarks,
	       dl.total_airframe_hours,
	       dl.total_engine_hours_tsn,
	       dl.total_landings,
	       dl.total_cycles,
	       dl.total_starts,
	       dl.total_gg_cycles_tsn,
	       dl.total_ft_cycles_tsn,
	       dl.created_by,
	       dl.created_at
	FROM daily_logs dl
	JOIN aircraft ac ON ac.id = dl.aircraft_id
	WHERE dl.organization_id = $1
	  AND dl.is_active = true
	  AND ($2 = '' OR ac.registration ILIKE '%' || $2 || '%' OR dl.remarks ILIKE '%' || $2 || '%')
	ORDER BY dl.log_date DESC, dl.created_at DESC, dl.id DESC
	LIMIT $3 OFFSET $4
	`

	CountDailyLogs = `
	SELECT COUNT(*)
	FROM daily_logs dl
	JOIN aircraft ac ON ac.id = dl.aircraft_id
	WHERE dl.organization_id = $1
	  AND dl.is_active = true
	  AND ($2 = '' OR ac.registration ILIKE '%' || $2 || '%' OR dl.remarks ILIKE '%' || $2 || '%')
	`

	// Window aggregate used by the fleet summary endpoint: latest row per
	// aircraft carries the authoritative cumulative totals.
	FleetLedgerSummary = `
	SELECT DISTINCT ON (dl.aircraft_id)
	       dl.aircraft_id,
	       ac.registration,
	       dl.log_date,
	       dl.total_airframe_hours,
	       dl.total_engine_hours_tsn,
	       dl.total_landings,
	       dl.total_cycles,
	       dl.total_starts
	FROM daily_logs dl
	JOIN aircraft ac ON ac.id = dl.aircraft_id
	WHERE dl.organization_id = $1 AND dl.is_active = true
	ORDER BY dl.aircraft_id, dl.log_date DESC, dl.created_at DESC, dl.id DESC
	`
)
