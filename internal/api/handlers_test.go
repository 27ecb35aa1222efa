package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightbay/techlog/internal/constants"
	gormModels "flightbay/techlog/internal/models/gorm"
	"flightbay/techlog/internal/services"
)

func TestStatusForLedgerError(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{constants.ErrCodeLogNotFound, http.StatusNotFound},
		{constants.ErrCodeAircraftNotFound, http.StatusNotFound},
		{constants.ErrCodeInvalidFlightTime, http.StatusBadRequest},
		{constants.ErrCodeInvalidLogDate, http.StatusBadRequest},
		{constants.ErrCodeLogInactive, http.StatusConflict},
		{constants.ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{constants.ErrCodeSweepFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		err := &services.LedgerError{Code: tc.code, Message: constants.GetErrorMessage(tc.code)}
		if got := statusForLedgerError(err); got != tc.want {
			t.Errorf("code %s: expected %d, got %d", tc.code, tc.want, got)
		}
	}

	if got := statusForLedgerError(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("untyped error: expected 500, got %d", got)
	}
}

func TestToDailyLogResponse(t *testing.T) {
	af := "01:30"
	landings := 2
	rec := &gormModels.DailyLog{
		ID:                 42,
		AircraftID:         "ac-1",
		LogDate:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AirframeTime:       &af,
		Landings:           &landings,
		TotalAirframeHours: "10.50",
		TotalLandings:      12,
		CreatedBy:          "user-1",
	}

	resp := toDailyLogResponse(rec, "VT-ABC")

	if resp.ID != 42 || resp.Registration != "VT-ABC" {
		t.Errorf("Unexpected identity fields: %+v", resp)
	}
	if resp.LogDate != "2026-03-01" {
		t.Errorf("Expected date 2026-03-01, got %s", resp.LogDate)
	}
	if resp.TotalAirframeHours != "10.50" || resp.TotalLandings != 12 {
		t.Errorf("Totals not carried through: %+v", resp)
	}
	if resp.AirframeTime == nil || *resp.AirframeTime != "01:30" {
		t.Errorf("Delta fields not carried through: %+v", resp)
	}
}

func TestHandlers_RejectMissingClaims(t *testing.T) {
	handlers := NewHandlers(&Dependencies{})

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"submit log", handlers.SubmitDailyLogHandler()},
		{"list logs", handlers.ListDailyLogsHandler()},
		{"fleet summary", handlers.FleetSummaryHandler()},
		{"dashboard link", handlers.GenerateDashboardLinkHandler()},
		{"rebuild", handlers.RebuildLedgerHandler()},
	}

	for _, ep := range endpoints {
		rr := httptest.NewRecorder()
		ep.handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/x", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without claims, got %d", ep.name, rr.Code)
		}
	}
}
