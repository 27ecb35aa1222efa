package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// Setup test database
func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.DailyLog{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	// sqlite cannot evaluate the postgres uuid default, so the aircraft
	// table is created by hand and rows get explicit ids.
	if err := db.Exec(`CREATE TABLE aircraft (
		id TEXT PRIMARY KEY,
		organization_id TEXT,
		registration TEXT,
		model TEXT,
		serial_number TEXT,
		is_active BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("Failed to create aircraft table: %v", err)
	}

	return db
}

const (
	testOrgID      = "11111111-1111-1111-1111-111111111111"
	testAircraftID = "22222222-2222-2222-2222-222222222222"
	testUserID     = "33333333-3333-3333-3333-333333333333"
)

func newTestLedger(t *testing.T) (*LedgerService, *gorm.DB) {
	db := setupLedgerTestDB(t)

	ac := &gormModels.Aircraft{
		ID:             testAircraftID,
		OrganizationID: testOrgID,
		Registration:   "VT-ABC",
		Model:          "DHC-6-300",
		IsActive:       true,
	}
	if err := db.Create(ac).Error; err != nil {
		t.Fatalf("Failed to seed aircraft: %v", err)
	}

	svc := NewLedgerService(
		db,
		repositories.NewDailyLogRepository(db),
		repositories.NewAircraftRepository(db),
		common.NewCacheService(60, 120),
		nil,
		nil,
	)
	return svc, db
}

func submitLog(t *testing.T, svc *LedgerService, date string, airframe string, landings int) *gormModels.DailyLog {
	t.Helper()
	req := &dtos.DailyLogSubmitRequest{
		AircraftID:   testAircraftID,
		LogDate:      date,
		AirframeTime: strPtr(airframe),
		Landings:     intPtr(landings),
	}
	rec, err := svc.CreateDailyLog(context.Background(), testOrgID, testUserID, req)
	if err != nil {
		t.Fatalf("CreateDailyLog(%s) failed: %v", date, err)
	}
	return rec
}

func scopeLogs(t *testing.T, svc *LedgerService) []gormModels.DailyLog {
	t.Helper()
	scope := repositories.LedgerScope{OrganizationID: testOrgID, AircraftID: testAircraftID}
	logs, err := svc.logRepo.FindAllInScope(context.Background(), scope)
	if err != nil {
		t.Fatalf("FindAllInScope failed: %v", err)
	}
	return logs
}

func TestCreateDailyLog_FirstEntryTotalsEqualDeltas(t *testing.T) {
	svc, _ := newTestLedger(t)

	rec := submitLog(t, svc, "2026-03-01", "02:30", 4)

	if rec.TotalAirframeHours != "2.50" {
		t.Errorf("Expected total airframe 2.50, got %s", rec.TotalAirframeHours)
	}
	if rec.TotalLandings != 4 {
		t.Errorf("Expected total landings 4, got %d", rec.TotalLandings)
	}
	if rec.TotalEngineHoursTSN != "0.00" {
		t.Errorf("Expected engine TSN 0.00, got %s", rec.TotalEngineHoursTSN)
	}
}

func TestCreateDailyLog_RunningSumsAccumulate(t *testing.T) {
	svc, _ := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:30", 2)
	submitLog(t, svc, "2026-03-02", "02:00", 3)
	last := submitLog(t, svc, "2026-03-03", "00:45", 1)

	if last.TotalAirframeHours != "4.25" {
		t.Errorf("Expected total airframe 4.25, got %s", last.TotalAirframeHours)
	}
	if last.TotalLandings != 6 {
		t.Errorf("Expected total landings 6, got %d", last.TotalLandings)
	}

	logs := scopeLogs(t, svc)
	wantLandings := []int{2, 5, 6}
	for i, rec := range logs {
		if rec.TotalLandings != wantLandings[i] {
			t.Errorf("Log %d: expected total landings %d, got %d", i, wantLandings[i], rec.TotalLandings)
		}
	}
}

func TestCreateDailyLog_BackdatedInsertCorrectsLaterTotals(t *testing.T) {
	svc, _ := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:00", 1)
	submitLog(t, svc, "2026-03-03", "01:00", 1)

	// A late paperwork entry for March 2nd must ripple into March 3rd.
	submitLog(t, svc, "2026-03-02", "02:00", 5)

	logs := scopeLogs(t, svc)
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs, got %d", len(logs))
	}

	last := logs[2]
	if last.LogDate.Format("2006-01-02") != "2026-03-03" {
		t.Fatalf("Expected last log to be March 3rd, got %s", last.LogDate)
	}
	if last.TotalAirframeHours != "4.00" {
		t.Errorf("Expected corrected total 4.00, got %s", last.TotalAirframeHours)
	}
	if last.TotalLandings != 7 {
		t.Errorf("Expected corrected landings 7, got %d", last.TotalLandings)
	}
}

func TestCreateDailyLog_SameDateOrderedByInsertion(t *testing.T) {
	svc, _ := newTestLedger(t)

	first := submitLog(t, svc, "2026-03-01", "01:00", 1)
	second := submitLog(t, svc, "2026-03-01", "01:00", 1)

	logs := scopeLogs(t, svc)
	if len(logs) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(logs))
	}
	if logs[0].ID != first.ID || logs[1].ID != second.ID {
		t.Fatalf("Same-date logs out of insertion order: got %d then %d", logs[0].ID, logs[1].ID)
	}
	if logs[1].TotalLandings != 2 {
		t.Errorf("Expected second same-date log to accumulate, got %d", logs[1].TotalLandings)
	}
}

func TestDeleteDailyLog_RemovesDeltasFromLaterTotals(t *testing.T) {
	svc, _ := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:00", 1)
	middle := submitLog(t, svc, "2026-03-02", "05:00", 10)
	submitLog(t, svc, "2026-03-03", "01:00", 1)

	if err := svc.DeleteDailyLog(context.Background(), testOrgID, middle.ID); err != nil {
		t.Fatalf("DeleteDailyLog failed: %v", err)
	}

	logs := scopeLogs(t, svc)
	if len(logs) != 2 {
		t.Fatalf("Expected 2 active logs after delete, got %d", len(logs))
	}
	last := logs[1]
	if last.TotalAirframeHours != "2.00" {
		t.Errorf("Expected total 2.00 after delete, got %s", last.TotalAirframeHours)
	}
	if last.TotalLandings != 2 {
		t.Errorf("Expected landings 2 after delete, got %d", last.TotalLandings)
	}

	// Deleted logs are hidden from reads and cannot be edited.
	if _, err := svc.GetDailyLog(context.Background(), testOrgID, middle.ID); err == nil {
		t.Error("Expected not-found for deleted log")
	}
	_, err := svc.UpdateDailyLog(context.Background(), testOrgID, middle.ID, &dtos.DailyLogUpdateRequest{Landings: intPtr(3)})
	var lerr *LedgerError
	if !errors.As(err, &lerr) || lerr.Code != constants.ErrCodeLogInactive {
		t.Errorf("Expected LOG_INACTIVE editing a deleted log, got %v", err)
	}
}

func TestUpdateDailyLog_DeltaEditRipplesForward(t *testing.T) {
	svc, _ := newTestLedger(t)

	first := submitLog(t, svc, "2026-03-01", "01:00", 1)
	submitLog(t, svc, "2026-03-02", "01:00", 1)

	updated, err := svc.UpdateDailyLog(context.Background(), testOrgID, first.ID, &dtos.DailyLogUpdateRequest{
		AirframeTime: strPtr("03:30"),
		Landings:     intPtr(6),
	})
	if err != nil {
		t.Fatalf("UpdateDailyLog failed: %v", err)
	}
	if updated.TotalAirframeHours != "3.50" {
		t.Errorf("Expected updated total 3.50, got %s", updated.TotalAirframeHours)
	}

	logs := scopeLogs(t, svc)
	last := logs[len(logs)-1]
	if last.TotalAirframeHours != "4.50" {
		t.Errorf("Expected downstream total 4.50, got %s", last.TotalAirframeHours)
	}
	if last.TotalLandings != 7 {
		t.Errorf("Expected downstream landings 7, got %d", last.TotalLandings)
	}
}

func TestUpdateDailyLog_DateMoveReordersLedger(t *testing.T) {
	svc, _ := newTestLedger(t)

	moved := submitLog(t, svc, "2026-03-05", "02:00", 2)
	submitLog(t, svc, "2026-03-02", "01:00", 1)

	// Pull the March 5th entry back to March 1st; it must now lead the
	// ledger and the March 2nd row must absorb its deltas.
	if _, err := svc.UpdateDailyLog(context.Background(), testOrgID, moved.ID, &dtos.DailyLogUpdateRequest{
		LogDate: strPtr("2026-03-01"),
	}); err != nil {
		t.Fatalf("UpdateDailyLog failed: %v", err)
	}

	logs := scopeLogs(t, svc)
	if logs[0].ID != moved.ID {
		t.Fatalf("Expected moved log to be first, got id %d", logs[0].ID)
	}
	if logs[0].TotalAirframeHours != "2.00" {
		t.Errorf("Expected moved log total 2.00, got %s", logs[0].TotalAirframeHours)
	}
	if logs[1].TotalAirframeHours != "3.00" {
		t.Errorf("Expected trailing total 3.00, got %s", logs[1].TotalAirframeHours)
	}
	if logs[1].TotalLandings != 3 {
		t.Errorf("Expected trailing landings 3, got %d", logs[1].TotalLandings)
	}
}

func TestRebuildScope_IdempotentOnConsistentLedger(t *testing.T) {
	svc, _ := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:00", 1)
	submitLog(t, svc, "2026-03-02", "01:00", 1)

	scope := repositories.LedgerScope{OrganizationID: testOrgID, AircraftID: testAircraftID}
	updated, err := svc.RebuildScope(context.Background(), scope)
	if err != nil {
		t.Fatalf("RebuildScope failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("Expected no rewrites on a consistent ledger, got %d", updated)
	}
}

func TestRebuildScope_RepairsCorruptedTotals(t *testing.T) {
	svc, db := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:00", 1)
	rec := submitLog(t, svc, "2026-03-02", "01:00", 1)

	// Simulate drift from a bug or a manual DB edit.
	if err := db.Exec("UPDATE daily_logs SET total_landings = 99, total_airframe_hours = '99.99' WHERE id = ?", rec.ID).Error; err != nil {
		t.Fatalf("Failed to corrupt row: %v", err)
	}

	scope := repositories.LedgerScope{OrganizationID: testOrgID, AircraftID: testAircraftID}
	updated, err := svc.RebuildScope(context.Background(), scope)
	if err != nil {
		t.Fatalf("RebuildScope failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("Expected exactly 1 repaired row, got %d", updated)
	}

	logs := scopeLogs(t, svc)
	if logs[1].TotalLandings != 2 || logs[1].TotalAirframeHours != "2.00" {
		t.Errorf("Row not repaired: landings=%d hours=%s", logs[1].TotalLandings, logs[1].TotalAirframeHours)
	}
}

func TestCreateDailyLog_ValidationErrors(t *testing.T) {
	svc, _ := newTestLedger(t)

	cases := []struct {
		name     string
		req      *dtos.DailyLogSubmitRequest
		wantCode string
	}{
		{
			name: "bad date",
			req: &dtos.DailyLogSubmitRequest{
				AircraftID: testAircraftID,
				LogDate:    "01-03-2026",
			},
			wantCode: constants.ErrCodeInvalidLogDate,
		},
		{
			name: "bad flight time",
			req: &dtos.DailyLogSubmitRequest{
				AircraftID:   testAircraftID,
				LogDate:      "2026-03-01",
				AirframeTime: strPtr("90 minutes"),
			},
			wantCode: constants.ErrCodeInvalidFlightTime,
		},
		{
			name: "unknown aircraft",
			req: &dtos.DailyLogSubmitRequest{
				AircraftID: "99999999-9999-9999-9999-999999999999",
				LogDate:    "2026-03-01",
			},
			wantCode: constants.ErrCodeAircraftNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateDailyLog(context.Background(), testOrgID, testUserID, tc.req)
			var lerr *LedgerError
			if !errors.As(err, &lerr) {
				t.Fatalf("Expected LedgerError, got %v", err)
			}
			if lerr.Code != tc.wantCode {
				t.Errorf("Expected code %s, got %s", tc.wantCode, lerr.Code)
			}
		})
	}
}

func TestLedger_OrganizationIsolation(t *testing.T) {
	svc, db := newTestLedger(t)

	otherOrg := "44444444-4444-4444-4444-444444444444"
	otherAC := "55555555-5555-5555-5555-555555555555"
	if err := db.Create(&gormModels.Aircraft{
		ID:             otherAC,
		OrganizationID: otherOrg,
		Registration:   "VT-XYZ",
		Model:          "DHC-6-300",
		IsActive:       true,
	}).Error; err != nil {
		t.Fatalf("Failed to seed second aircraft: %v", err)
	}

	rec := submitLog(t, svc, "2026-03-01", "01:00", 1)

	otherReq := &dtos.DailyLogSubmitRequest{
		AircraftID:   otherAC,
		LogDate:      "2026-03-01",
		AirframeTime: strPtr("09:00"),
		Landings:     intPtr(50),
	}
	otherRec, err := svc.CreateDailyLog(context.Background(), otherOrg, testUserID, otherReq)
	if err != nil {
		t.Fatalf("CreateDailyLog in second org failed: %v", err)
	}

	if otherRec.TotalLandings != 50 {
		t.Errorf("Expected isolated totals 50, got %d", otherRec.TotalLandings)
	}

	// The first org's ledger must be untouched.
	reloaded, err := svc.GetDailyLog(context.Background(), testOrgID, rec.ID)
	if err != nil {
		t.Fatalf("GetDailyLog failed: %v", err)
	}
	if reloaded.TotalLandings != 1 {
		t.Errorf("Expected org A totals unchanged, got %d", reloaded.TotalLandings)
	}

	// Cross-tenant reads must miss.
	if _, err := svc.GetDailyLog(context.Background(), otherOrg, rec.ID); err == nil {
		t.Error("Expected not-found reading another org's log")
	}
}

func TestCurrentPosition_ReturnsLatestActiveLog(t *testing.T) {
	svc, _ := newTestLedger(t)

	submitLog(t, svc, "2026-03-01", "01:00", 1)
	last := submitLog(t, svc, "2026-03-04", "02:00", 3)

	scope := repositories.LedgerScope{OrganizationID: testOrgID, AircraftID: testAircraftID}
	pos, err := svc.CurrentPosition(context.Background(), scope)
	if err != nil {
		t.Fatalf("CurrentPosition failed: %v", err)
	}
	if pos == nil || pos.ID != last.ID {
		t.Fatalf("Expected latest log %d, got %+v", last.ID, pos)
	}
	if pos.TotalAirframeHours != "3.00" {
		t.Errorf("Expected cumulative 3.00, got %s", pos.TotalAirframeHours)
	}

	// Deleting the latest entry moves the position back.
	if err := svc.DeleteDailyLog(context.Background(), testOrgID, last.ID); err != nil {
		t.Fatalf("DeleteDailyLog failed: %v", err)
	}
	pos, err = svc.CurrentPosition(context.Background(), scope)
	if err != nil {
		t.Fatalf("CurrentPosition failed: %v", err)
	}
	if pos == nil || pos.TotalAirframeHours != "1.00" {
		t.Fatalf("Expected position to fall back to 1.00, got %+v", pos)
	}
}
