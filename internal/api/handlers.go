package api

import (
	"errors"
	"net/http"
	"time"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
	"flightbay/techlog/internal/services"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// statusForLedgerError maps a typed ledger error to an HTTP status code.
func statusForLedgerError(err error) int {
	var lerr *services.LedgerError
	if !errors.As(err, &lerr) {
		return http.StatusInternalServerError
	}
	switch lerr.Code {
	case constants.ErrCodeLogNotFound,
		constants.ErrCodeAircraftNotFound,
		constants.ErrCodeNoLedgerTotals:
		return http.StatusNotFound
	case constants.ErrCodeInvalidFlightTime,
		constants.ErrCodeInvalidLogDate:
		return http.StatusBadRequest
	case constants.ErrCodeLogInactive:
		return http.StatusConflict
	case constants.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func ledgerErrorMessage(err error) string {
	var lerr *services.LedgerError
	if errors.As(err, &lerr) {
		return lerr.Message
	}
	return "Internal error"
}

func toDailyLogResponse(rec *gormModels.DailyLog, registration string) dtos.DailyLogResponse {
	return dtos.DailyLogResponse{
		ID:           rec.ID,
		AircraftID:   rec.AircraftID,
		Registration: registration,
		LogDate:      rec.LogDate.Format("2006-01-02"),

		AirframeTime: rec.AirframeTime,
		EngineTime:   rec.EngineTime,
		Landings:     rec.Landings,
		Cycles:       rec.Cycles,
		Starts:       rec.Starts,
		GGCycles:     rec.GGCycles,
		FTCycles:     rec.FTCycles,
		UsageNote:    rec.UsageNote,
		Remarks:      rec.Remarks,

		TotalAirframeHours:  rec.TotalAirframeHours,
		TotalEngineHoursTSN: rec.TotalEngineHoursTSN,
		TotalLandings:       rec.TotalLandings,
		TotalCycles:         rec.TotalCycles,
		TotalStarts:         rec.TotalStarts,
		TotalGGCyclesTSN:    rec.TotalGGCyclesTSN,
		TotalFTCyclesTSN:    rec.TotalFTCyclesTSN,

		CreatedBy: rec.CreatedBy,
		CreatedAt: rec.CreatedAt,
	}
}

// GenerateDashboardLinkHandler issues a presigned URL for web dashboard access
func (h *Handlers) GenerateDashboardLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		token, err := h.deps.Services.Signer.SignLink(
			claims.UserID(),
			claims.OrganizationID(),
			"dashboard",
			15*time.Minute,
		)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Dashboard link generated", dtos.DocumentLinkResponse{
			URL:       r.Host + "/auth/login?token=" + token,
			ExpiresIn: 900,
		})
	}
}
