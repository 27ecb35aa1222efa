package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

// LedgerScope is the boundary within which running totals are summed:
// one organization, one airframe. Mixing aircraft into a single running
// total is operationally meaningless.
type LedgerScope struct {
	OrganizationID string
	AircraftID     string
}

func (s LedgerScope) Key() string {
	return s.OrganizationID + ":" + s.AircraftID
}

// LedgerTotals carries the seven engine-owned cumulative fields.
type LedgerTotals struct {
	AirframeHours  string
	EngineHoursTSN string
	Landings       int
	Cycles         int
	Starts         int
	GGCyclesTSN    int
	FTCyclesTSN    int
}

// DailyLogRepository is the ledger store: the ordered collection of daily
// logs the recomputation engine reads from and writes totals into.
//
// Ordering everywhere is (log_date, created_at, id) ascending; created_at
// plus id is the documented tie-break for same-date entries.
type DailyLogRepository struct {
	db *gorm.DB
}

// NewDailyLogRepository creates a new GORM-based daily log repository
func NewDailyLogRepository(db *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *DailyLogRepository) WithTx(tx *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{db: tx}
}

// GetByID retrieves a log by id within an organization. Returns nil when
// the record does not exist in that tenant.
func (r *DailyLogRepository) GetByID(ctx context.Context, organizationID string, id uint) (*gormModels.DailyLog, error) {
	var entry gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch daily log: %w", err)
	}

	return &entry, nil
}

// FindAllInScope returns every active log in scope in ledger order. The
// recompute sweep walks this list accumulating delta fields only.
func (r *DailyLogRepository) FindAllInScope(ctx context.Context, scope LedgerScope) ([]gormModels.DailyLog, error) {
	var logs []gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ? AND is_active = ?",
			scope.OrganizationID, scope.AircraftID, true).
		Order("log_date ASC, created_at ASC, id ASC").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger scope: %w", err)
	}

	return logs, nil
}

// FindPrior returns the most recent active log strictly before the given
// date in scope, nil when the scope has no earlier entry.
func (r *DailyLogRepository) FindPrior(ctx context.Context, scope LedgerScope, before time.Time) (*gormModels.DailyLog, error) {
	var entry gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ? AND is_active = ? AND log_date < ?",
			scope.OrganizationID, scope.AircraftID, true, before).
		Order("log_date DESC, created_at DESC, id DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch prior log: %w", err)
	}

	return &entry, nil
}

// FindAfter returns all active logs strictly after the given date in scope,
// in ledger order.
func (r *DailyLogRepository) FindAfter(ctx context.Context, scope LedgerScope, after time.Time) ([]gormModels.DailyLog, error) {
	var logs []gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ? AND is_active = ? AND log_date > ?",
			scope.OrganizationID, scope.AircraftID, true, after).
		Order("log_date ASC, created_at ASC, id ASC").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch subsequent logs: %w", err)
	}

	return logs, nil
}

// FindUpTo returns all active logs with date <= the given date in scope,
// in ledger order.
func (r *DailyLogRepository) FindUpTo(ctx context.Context, scope LedgerScope, upto time.Time) ([]gormModels.DailyLog, error) {
	var logs []gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ? AND is_active = ? AND log_date <= ?",
			scope.OrganizationID, scope.AircraftID, true, upto).
		Order("log_date ASC, created_at ASC, id ASC").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs up to date: %w", err)
	}

	return logs, nil
}

// Latest returns the last active log in scope, nil when the scope is empty.
// Its totals are the aircraft's current cumulative position.
func (r *DailyLogRepository) Latest(ctx context.Context, scope LedgerScope) (*gormModels.DailyLog, error) {
	var entry gormModels.DailyLog

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND aircraft_id = ? AND is_active = ?",
			scope.OrganizationID, scope.AircraftID, true).
		Order("log_date DESC, created_at DESC, id DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest log: %w", err)
	}

	return &entry, nil
}

// Insert persists a new log row, delta fields and totals together.
func (r *DailyLogRepository) Insert(ctx context.Context, entry *gormModels.DailyLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert daily log: %w", err)
	}
	return nil
}

// UpdateDeltaFields writes user-editable columns only. Totals are written
// exclusively through UpdateTotals so the two write paths stay separate.
func (r *DailyLogRepository) UpdateDeltaFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.DailyLog{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update daily log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily log not found with id: %d", id)
	}
	return nil
}

// UpdateTotals atomically writes the seven cumulative fields for one row.
func (r *DailyLogRepository) UpdateTotals(ctx context.Context, id uint, totals LedgerTotals) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.DailyLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_airframe_hours":   totals.AirframeHours,
			"total_engine_hours_tsn": totals.EngineHoursTSN,
			"total_landings":         totals.Landings,
			"total_cycles":           totals.Cycles,
			"total_starts":           totals.Starts,
			"total_gg_cycles_tsn":    totals.GGCyclesTSN,
			"total_ft_cycles_tsn":    totals.FTCyclesTSN,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to write totals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily log not found with id: %d", id)
	}
	return nil
}

// SoftDelete marks a log inactive. The row stays for audit but drops out of
// totals and listings; there is no resurrection path.
func (r *DailyLogRepository) SoftDelete(ctx context.Context, organizationID string, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.DailyLog{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Update("is_active", false)

	if result.Error != nil {
		return fmt.Errorf("failed to delete daily log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily log not found with id: %d", id)
	}
	return nil
}
