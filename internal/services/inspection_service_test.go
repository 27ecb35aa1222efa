package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
)

func newTestInspections(t *testing.T) (*InspectionService, *LedgerService, *gorm.DB) {
	ledger, db := newTestLedger(t)

	if err := db.Exec(`CREATE TABLE inspections (
		id TEXT PRIMARY KEY,
		organization_id TEXT,
		aircraft_id TEXT,
		name TEXT,
		interval_hours REAL,
		interval_landings INTEGER,
		interval_days INTEGER,
		last_done_date DATETIME,
		last_done_airframe_hours REAL,
		last_done_landings INTEGER,
		is_active BOOLEAN,
		created_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("Failed to create inspections table: %v", err)
	}

	svc := NewInspectionService(repositories.NewInspectionRepository(db), ledger)
	return svc, ledger, db
}

func seedInspection(t *testing.T, db *gorm.DB, insp *gormModels.Inspection) {
	t.Helper()
	if err := db.Create(insp).Error; err != nil {
		t.Fatalf("Failed to seed inspection: %v", err)
	}
}

func TestCreateInspection_RequiresAnInterval(t *testing.T) {
	svc, _, _ := newTestInspections(t)

	_, err := svc.CreateInspection(context.Background(), testOrgID, testUserID, &dtos.InspectionCreateRequest{
		AircraftID: testAircraftID,
		Name:       "100 hour",
	})
	if err == nil {
		t.Fatal("Expected error creating a schedule without any interval")
	}
}

func TestEvaluateStatus_HoursRemaining(t *testing.T) {
	svc, ledger, db := newTestInspections(t)

	hours := 100.0
	seedInspection(t, db, &gormModels.Inspection{
		ID:             "insp-100h",
		OrganizationID: testOrgID,
		AircraftID:     testAircraftID,
		Name:           "100 hour",
		IntervalHours:  &hours,
		IsActive:       true,
	})

	submitLog(t, ledger, "2026-03-01", "40:00", 10)
	submitLog(t, ledger, "2026-03-02", "20:30", 5)

	entries, err := svc.EvaluateStatus(context.Background(), testOrgID, testAircraftID)
	if err != nil {
		t.Fatalf("EvaluateStatus failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.HoursRemaining == nil {
		t.Fatal("Expected hours remaining to be computed")
	}
	// 100 - 60.5 flown
	if *entry.HoursRemaining != 39.5 {
		t.Errorf("Expected 39.5 hours remaining, got %v", *entry.HoursRemaining)
	}
	if entry.Due {
		t.Error("Schedule should not be due yet")
	}
	if entry.EvaluatedAgainst != "2026-03-02" {
		t.Errorf("Expected evaluation against latest log date, got %s", entry.EvaluatedAgainst)
	}
}

func TestEvaluateStatus_LandingsDue(t *testing.T) {
	svc, ledger, db := newTestInspections(t)

	landings := 20
	seedInspection(t, db, &gormModels.Inspection{
		ID:               "insp-gear",
		OrganizationID:   testOrgID,
		AircraftID:       testAircraftID,
		Name:             "gear check",
		IntervalLandings: &landings,
		IsActive:         true,
	})

	submitLog(t, ledger, "2026-03-01", "05:00", 25)

	entries, err := svc.EvaluateStatus(context.Background(), testOrgID, testAircraftID)
	if err != nil {
		t.Fatalf("EvaluateStatus failed: %v", err)
	}

	entry := entries[0]
	if entry.LandingsLeft == nil || *entry.LandingsLeft != -5 {
		t.Fatalf("Expected -5 landings remaining, got %v", entry.LandingsLeft)
	}
	if !entry.Due {
		t.Error("Schedule past its landing interval must be due")
	}
}

func TestMarkDone_SnapshotsCurrentPosition(t *testing.T) {
	svc, ledger, db := newTestInspections(t)

	hours := 50.0
	seedInspection(t, db, &gormModels.Inspection{
		ID:             "insp-50h",
		OrganizationID: testOrgID,
		AircraftID:     testAircraftID,
		Name:           "50 hour",
		IntervalHours:  &hours,
		IsActive:       true,
	})

	submitLog(t, ledger, "2026-03-01", "48:00", 30)

	if err := svc.MarkDone(context.Background(), testOrgID, "insp-50h"); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	var insp gormModels.Inspection
	if err := db.First(&insp, "id = ?", "insp-50h").Error; err != nil {
		t.Fatalf("Failed to reload inspection: %v", err)
	}
	if insp.LastDoneAirframeHours == nil || *insp.LastDoneAirframeHours != 48.0 {
		t.Errorf("Expected snapshot 48.0 hours, got %v", insp.LastDoneAirframeHours)
	}
	if insp.LastDoneLandings == nil || *insp.LastDoneLandings != 30 {
		t.Errorf("Expected snapshot 30 landings, got %v", insp.LastDoneLandings)
	}

	// The next interval counts from the snapshot: 48 + 50 - 48 flown.
	entries, err := svc.EvaluateStatus(context.Background(), testOrgID, testAircraftID)
	if err != nil {
		t.Fatalf("EvaluateStatus failed: %v", err)
	}
	if entries[0].HoursRemaining == nil || *entries[0].HoursRemaining != 50.0 {
		t.Errorf("Expected 50.0 hours remaining after MarkDone, got %v", entries[0].HoursRemaining)
	}
	if entries[0].Due {
		t.Error("Freshly completed inspection must not be due")
	}
}
