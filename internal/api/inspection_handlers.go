package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/models/dtos"
)

// CreateInspectionHandler handles POST /api/v1/inspections
func (h *Handlers) CreateInspectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.InspectionCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		insp, err := h.deps.Services.Inspection.CreateInspection(r.Context(), claims.OrganizationID(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Inspection schedule created", insp, http.StatusCreated)
	}
}

// ListInspectionsHandler handles GET /api/v1/inspections
func (h *Handlers) ListInspectionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		inspections, err := h.deps.Services.Inspection.ListInspections(r.Context(), claims.OrganizationID(), r.URL.Query().Get("aircraft_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch inspections", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "", inspections)
	}
}

// InspectionStatusHandler handles GET /api/v1/aircraft/{id}/inspections/status
//
// Evaluates every schedule of the aircraft against the ledger's current
// cumulative totals.
func (h *Handlers) InspectionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		aircraftID := chi.URLParam(r, "id")

		entries, err := h.deps.Services.Inspection.EvaluateStatus(r.Context(), claims.OrganizationID(), aircraftID)
		if err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		common.RespondSuccess(w, initTime, "", entries)
	}
}

// MarkInspectionDoneHandler handles POST /api/v1/inspections/{id}/done
func (h *Handlers) MarkInspectionDoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		inspectionID := chi.URLParam(r, "id")

		if err := h.deps.Services.Inspection.MarkDone(r.Context(), claims.OrganizationID(), inspectionID); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Inspection marked done", nil)
	}
}
