package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
)

// CreateAircraftHandler handles POST /api/v1/aircraft
func (h *Handlers) CreateAircraftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.AircraftCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Registration == "" || req.Model == "" {
			common.RespondError(w, initTime, nil, "registration and model are required", http.StatusBadRequest)
			return
		}

		existing, err := h.deps.Repo.Aircraft.GetByRegistration(r.Context(), claims.OrganizationID(), req.Registration)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to check registration", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			common.RespondError(w, initTime, fmt.Errorf("registration taken"),
				fmt.Sprintf("Aircraft %s already exists", req.Registration), http.StatusConflict)
			return
		}

		ac := &gormModels.Aircraft{
			OrganizationID: claims.OrganizationID(),
			Registration:   req.Registration,
			Model:          req.Model,
			SerialNumber:   req.SerialNumber,
			IsActive:       true,
		}
		if err := h.deps.Repo.Aircraft.Insert(r.Context(), ac); err != nil {
			common.RespondError(w, initTime, err, "Failed to create aircraft", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft registered", ac, http.StatusCreated)
	}
}

// ListAircraftHandler handles GET /api/v1/aircraft
func (h *Handlers) ListAircraftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		fleet, err := h.deps.Repo.Aircraft.GetAll(r.Context(), claims.OrganizationID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch aircraft", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "", fleet)
	}
}
