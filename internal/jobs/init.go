package jobs

import (
	"context"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	orgRepo *repositories.OrganizationRepository,
	aircraftRepo *repositories.AircraftRepository,
	inspections *services.InspectionService,
	cache common.CacheInterface,
) *InspectionStatusJob {
	statusJob := NewInspectionStatusJob(orgRepo, aircraftRepo, inspections, cache)

	// Refresh inspection due-status hourly in the background
	go statusJob.RunScheduled(ctx, 1*time.Hour)

	return statusJob
}
