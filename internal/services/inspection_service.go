package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"
)

// InspectionService evaluates out-of-phase inspection schedules against the
// ledger's current cumulative totals. It never stores due-status: the
// answer is always derived from the latest log's totals at read time.
type InspectionService struct {
	inspRepo *repositories.InspectionRepository
	ledger   *LedgerService
}

// NewInspectionService creates a new InspectionService
func NewInspectionService(inspRepo *repositories.InspectionRepository, ledger *LedgerService) *InspectionService {
	return &InspectionService{
		inspRepo: inspRepo,
		ledger:   ledger,
	}
}

// CreateInspection registers a new schedule for an aircraft.
func (s *InspectionService) CreateInspection(ctx context.Context, organizationID, actingUserID string, req *dtos.InspectionCreateRequest) (*gormModels.Inspection, error) {
	if req.IntervalHours == nil && req.IntervalLandings == nil && req.IntervalDays == nil {
		return nil, fmt.Errorf("at least one interval (hours, landings or days) is required")
	}

	insp := &gormModels.Inspection{
		OrganizationID:   organizationID,
		AircraftID:       req.AircraftID,
		Name:             req.Name,
		IntervalHours:    req.IntervalHours,
		IntervalLandings: req.IntervalLandings,
		IntervalDays:     req.IntervalDays,
		IsActive:         true,
		CreatedBy:        actingUserID,
	}

	if req.LastDoneDate != nil {
		done, err := time.Parse(logDateLayout, *req.LastDoneDate)
		if err != nil {
			return nil, fmt.Errorf("invalid last_done_date: %w", err)
		}
		insp.LastDoneDate = &done
	}

	if err := s.inspRepo.Insert(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

// ListInspections returns the active schedules for an organization.
func (s *InspectionService) ListInspections(ctx context.Context, organizationID, aircraftID string) ([]gormModels.Inspection, error) {
	return s.inspRepo.GetAll(ctx, organizationID, aircraftID)
}

// EvaluateStatus computes the remaining margin for every schedule of an
// aircraft from the scope's current cumulative totals.
func (s *InspectionService) EvaluateStatus(ctx context.Context, organizationID, aircraftID string) ([]dtos.InspectionStatusEntry, error) {
	inspections, err := s.inspRepo.GetAll(ctx, organizationID, aircraftID)
	if err != nil {
		return nil, err
	}

	scope := repositories.LedgerScope{OrganizationID: organizationID, AircraftID: aircraftID}
	position, err := s.ledger.CurrentPosition(ctx, scope)
	if err != nil {
		return nil, err
	}

	entries := make([]dtos.InspectionStatusEntry, 0, len(inspections))
	for i := range inspections {
		entries = append(entries, s.evaluate(&inspections[i], position))
	}
	return entries, nil
}

func (s *InspectionService) evaluate(insp *gormModels.Inspection, position *gormModels.DailyLog) dtos.InspectionStatusEntry {
	entry := dtos.InspectionStatusEntry{
		InspectionID: insp.ID,
		AircraftID:   insp.AircraftID,
		Name:         insp.Name,
	}

	currentHours := 0.0
	currentLandings := 0
	if position != nil {
		if v, err := strconv.ParseFloat(position.TotalAirframeHours, 64); err == nil {
			currentHours = v
		}
		currentLandings = position.TotalLandings
		entry.EvaluatedAgainst = position.LogDate.Format(logDateLayout)
	}

	if insp.IntervalHours != nil {
		base := 0.0
		if insp.LastDoneAirframeHours != nil {
			base = *insp.LastDoneAirframeHours
		}
		remaining := base + *insp.IntervalHours - currentHours
		entry.HoursRemaining = &remaining
		if remaining <= 0 {
			entry.Due = true
		}
	}

	if insp.IntervalLandings != nil {
		base := 0
		if insp.LastDoneLandings != nil {
			base = *insp.LastDoneLandings
		}
		remaining := base + *insp.IntervalLandings - currentLandings
		entry.LandingsLeft = &remaining
		if remaining <= 0 {
			entry.Due = true
		}
	}

	if insp.IntervalDays != nil && insp.LastDoneDate != nil {
		due := insp.LastDoneDate.AddDate(0, 0, *insp.IntervalDays)
		remaining := int(time.Until(due).Hours() / 24)
		entry.DaysRemaining = &remaining
		if remaining <= 0 {
			entry.Due = true
		}
	}

	return entry
}

// MarkDone snapshots the aircraft's current position onto the schedule.
func (s *InspectionService) MarkDone(ctx context.Context, organizationID, inspectionID string) error {
	insp, err := s.inspRepo.GetByID(ctx, organizationID, inspectionID)
	if err != nil {
		return err
	}
	if insp == nil {
		return fmt.Errorf("%s", constants.GetErrorMessage(constants.ErrCodeInspectionMissing))
	}

	scope := repositories.LedgerScope{OrganizationID: organizationID, AircraftID: insp.AircraftID}
	position, err := s.ledger.CurrentPosition(ctx, scope)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"last_done_date": now,
	}
	if position != nil {
		if v, err := strconv.ParseFloat(position.TotalAirframeHours, 64); err == nil {
			updates["last_done_airframe_hours"] = v
		}
		updates["last_done_landings"] = position.TotalLandings
	}

	return s.inspRepo.MarkDone(ctx, organizationID, inspectionID, updates)
}
