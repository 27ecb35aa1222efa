package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/models/dtos"
)

func (h *Handlers) registrationFor(r *http.Request, organizationID, aircraftID string) string {
	ac, err := h.deps.Repo.Aircraft.GetByID(r.Context(), organizationID, aircraftID)
	if err != nil || ac == nil {
		return ""
	}
	return ac.Registration
}

// SubmitDailyLogHandler handles POST /api/v1/logs
//
// Writes the entry and recomputes the scope's running totals in one
// transaction, so the response already carries consistent totals.
func (h *Handlers) SubmitDailyLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.DailyLogSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		rec, err := h.deps.Services.Ledger.CreateDailyLog(r.Context(), claims.OrganizationID(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		resp := toDailyLogResponse(rec, h.registrationFor(r, claims.OrganizationID(), rec.AircraftID))
		common.RespondSuccess(w, initTime, "Daily log recorded", resp, http.StatusCreated)
	}
}

// GetDailyLogHandler handles GET /api/v1/logs/{id}
func (h *Handlers) GetDailyLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid log id", http.StatusBadRequest)
			return
		}

		rec, err := h.deps.Services.Ledger.GetDailyLog(r.Context(), claims.OrganizationID(), uint(id))
		if err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		resp := toDailyLogResponse(rec, h.registrationFor(r, claims.OrganizationID(), rec.AircraftID))
		common.RespondSuccess(w, initTime, "", resp)
	}
}

// ListDailyLogsHandler handles GET /api/v1/logs
//
// Query params: search (matches registration or remarks), page, size.
func (h *Handlers) ListDailyLogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		if size < 1 || size > 100 {
			size = 25
		}
		search := r.URL.Query().Get("search")

		rows, total, err := h.deps.Repo.LogQuery.Search(r.Context(), claims.OrganizationID(), search, size, (page-1)*size)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch daily logs", http.StatusInternalServerError)
			return
		}

		logs := make([]dtos.DailyLogResponse, 0, len(rows))
		for _, row := range rows {
			logs = append(logs, dtos.DailyLogResponse{
				ID:           row.ID,
				AircraftID:   row.AircraftID,
				Registration: row.Registration,
				LogDate:      row.LogDate.Format("2006-01-02"),

				AirframeTime: row.AirframeTime,
				EngineTime:   row.EngineTime,
				Landings:     row.Landings,
				Cycles:       row.Cycles,
				Starts:       row.Starts,
				UsageNote:    row.UsageNote,
				Remarks:      row.Remarks,

				TotalAirframeHours:  row.TotalAirframeHours,
				TotalEngineHoursTSN: row.TotalEngineHoursTSN,
				TotalLandings:       row.TotalLandings,
				TotalCycles:         row.TotalCycles,
				TotalStarts:         row.TotalStarts,
				TotalGGCyclesTSN:    row.TotalGGCyclesTSN,
				TotalFTCyclesTSN:    row.TotalFTCyclesTSN,

				CreatedBy: row.CreatedBy,
				CreatedAt: row.CreatedAt,
			})
		}

		common.RespondSuccess(w, initTime, "", dtos.DailyLogListResponse{
			Logs:  logs,
			Total: total,
			Page:  page,
			Size:  size,
		})
	}
}

// UpdateDailyLogHandler handles PATCH /api/v1/logs/{id}
//
// A partial edit. If the date or aircraft moves, totals in both the old and
// new position are recomputed before the response is written.
func (h *Handlers) UpdateDailyLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid log id", http.StatusBadRequest)
			return
		}

		var req dtos.DailyLogUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		rec, err := h.deps.Services.Ledger.UpdateDailyLog(r.Context(), claims.OrganizationID(), uint(id), &req)
		if err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		resp := toDailyLogResponse(rec, h.registrationFor(r, claims.OrganizationID(), rec.AircraftID))
		common.RespondSuccess(w, initTime, "Daily log updated", resp)
	}
}

// DeleteDailyLogHandler handles DELETE /api/v1/logs/{id}
func (h *Handlers) DeleteDailyLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid log id", http.StatusBadRequest)
			return
		}

		if err := h.deps.Services.Ledger.DeleteDailyLog(r.Context(), claims.OrganizationID(), uint(id)); err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		common.RespondSuccess(w, initTime, fmt.Sprintf("Daily log %d deleted", id), nil)
	}
}

// FleetSummaryHandler handles GET /api/v1/logs/fleet
//
// One row per aircraft: the latest active log's running totals.
func (h *Handlers) FleetSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		rows, err := h.deps.Repo.LogQuery.FleetSummary(r.Context(), claims.OrganizationID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch fleet summary", http.StatusInternalServerError)
			return
		}

		entries := make([]dtos.FleetSummaryEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, dtos.FleetSummaryEntry{
				AircraftID:          row.AircraftID,
				Registration:        row.Registration,
				AsOfDate:            row.LogDate.Format("2006-01-02"),
				TotalAirframeHours:  row.TotalAirframeHours,
				TotalEngineHoursTSN: row.TotalEngineHoursTSN,
				TotalLandings:       row.TotalLandings,
				TotalCycles:         row.TotalCycles,
				TotalStarts:         row.TotalStarts,
			})
		}

		common.RespondSuccess(w, initTime, "", entries)
	}
}
