package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/services"
)

// InspectionStatusJob periodically re-evaluates every active inspection
// schedule and warms the status cache, so dashboards and the day-interval
// countdowns stay fresh even on aircraft that have not flown recently.
type InspectionStatusJob struct {
	orgRepo      *repositories.OrganizationRepository
	aircraftRepo *repositories.AircraftRepository
	inspections  *services.InspectionService
	cache        common.CacheInterface
}

// NewInspectionStatusJob creates a new inspection status job instance
func NewInspectionStatusJob(
	orgRepo *repositories.OrganizationRepository,
	aircraftRepo *repositories.AircraftRepository,
	inspections *services.InspectionService,
	cache common.CacheInterface,
) *InspectionStatusJob {
	return &InspectionStatusJob{
		orgRepo:      orgRepo,
		aircraftRepo: aircraftRepo,
		inspections:  inspections,
		cache:        cache,
	}
}

// Run evaluates every aircraft of every organization once.
func (j *InspectionStatusJob) Run(ctx context.Context) error {
	start := time.Now()

	orgs, err := j.orgRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch organizations: %w", err)
	}

	evaluated := 0
	dueCount := 0

	for _, org := range orgs {
		fleet, err := j.aircraftRepo.GetAll(ctx, org.ID)
		if err != nil {
			logging.Error("Failed to fetch fleet for status refresh",
				"organization_id", org.ID,
				"error", err.Error(),
			)
			continue
		}

		for _, ac := range fleet {
			entries, err := j.inspections.EvaluateStatus(ctx, org.ID, ac.ID)
			if err != nil {
				// Aircraft without any active logs are expected here
				continue
			}

			for _, entry := range entries {
				if entry.Due {
					dueCount++
					logging.Warn("Inspection due",
						"organization_id", org.ID,
						"aircraft_id", ac.ID,
						"inspection", entry.Name,
					)
				}
			}

			if data, err := json.Marshal(entries); err == nil {
				key := string(constants.CachePrefixInspectionStatus) + org.ID + "_" + ac.ID
				j.cache.Set(key, string(data), 2*time.Hour)
			}
			evaluated++
		}
	}

	logging.Info("Inspection status refresh completed",
		"aircraft_evaluated", evaluated,
		"inspections_due", dueCount,
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
	)
	return nil
}

// RunScheduled runs the job immediately and then on the given interval
// until the context is cancelled.
func (j *InspectionStatusJob) RunScheduled(ctx context.Context, interval time.Duration) {
	if err := j.Run(ctx); err != nil {
		logging.Error("Inspection status job failed", "error", err.Error())
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Inspection status job failed", "error", err.Error())
			}
		}
	}
}
