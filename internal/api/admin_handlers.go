package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/models/dtos"
)

// RebuildLedgerHandler handles POST /api/v1/admin/ledger/rebuild
//
// Recomputes a scope's running totals synchronously when the request names
// a single aircraft; with async=true the dirty range is pushed onto the
// organization's reconcile stream for a worker to pick up.
func (h *Handlers) RebuildLedgerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.LedgerRebuildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.AircraftID == "" {
			common.RespondError(w, initTime, nil, "aircraft_id is required", http.StatusBadRequest)
			return
		}

		orgID := claims.OrganizationID()

		if r.URL.Query().Get("async") == "true" {
			stream := fmt.Sprintf(constants.LedgerReconcileStream, orgID)
			item := &common.ReconcileItem{
				OrganizationID: orgID,
				AircraftID:     req.AircraftID,
				FromDate:       req.FromDate,
				Reason:         "admin_rebuild",
				EnqueuedAt:     time.Now().UTC().Format(time.RFC3339),
			}
			if err := h.deps.Services.Queue.EnqueueReconcile(r.Context(), stream, item); err != nil {
				common.RespondError(w, initTime, err, "Failed to enqueue rebuild", http.StatusServiceUnavailable)
				return
			}
			common.RespondSuccess(w, initTime, "Rebuild enqueued", nil, http.StatusAccepted)
			return
		}

		scope := repositories.LedgerScope{OrganizationID: orgID, AircraftID: req.AircraftID}
		updated, err := h.deps.Services.Ledger.RebuildScope(r.Context(), scope)
		if err != nil {
			common.RespondError(w, initTime, err, ledgerErrorMessage(err), statusForLedgerError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Ledger rebuilt", map[string]interface{}{
			"aircraft_id":     req.AircraftID,
			"records_updated": updated,
		})
	}
}
