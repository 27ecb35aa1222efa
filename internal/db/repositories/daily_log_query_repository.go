package repositories

import (
	"context"
	"fmt"

	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// DailyLogQueryRepository is the sqlx read side for techlog listings: paged
// search with LIKE predicates and the per-aircraft fleet summary. All writes
// go through the GORM DailyLogRepository.
type DailyLogQueryRepository struct {
	db *sqlx.DB
}

func NewDailyLogQueryRepository(db *sqlx.DB) *DailyLogQueryRepository {
	return &DailyLogQueryRepository{db}
}

// Search returns one page of active logs for an organization, newest first.
// search matches registration or remarks, empty matches everything.
func (r *DailyLogQueryRepository) Search(ctx context.Context, organizationID, search string, limit, offset int) ([]entities.DailyLogRow, int, error) {

	var rows []entities.DailyLogRow
	if err := r.db.SelectContext(ctx, &rows, constants.SearchDailyLogs, organizationID, search, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to search daily logs: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, constants.CountDailyLogs, organizationID, search); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily logs: %w", err)
	}

	return rows, total, nil
}

// FleetSummary returns the latest ledger position per aircraft.
func (r *DailyLogQueryRepository) FleetSummary(ctx context.Context, organizationID string) ([]entities.FleetSummaryRow, error) {

	var rows []entities.FleetSummaryRow
	if err := r.db.SelectContext(ctx, &rows, constants.FleetLedgerSummary, organizationID); err != nil {
		return nil, fmt.Errorf("failed to fetch fleet summary: %w", err)
	}

	return rows, nil
}
