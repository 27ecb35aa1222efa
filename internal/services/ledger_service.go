package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/metrics"
	"flightbay/techlog/internal/models/dtos"
	gormModels "flightbay/techlog/internal/models/gorm"

	"gorm.io/gorm"
)

const logDateLayout = "2006-01-02"

// LedgerService is the totals recomputation engine for daily logs.
//
// Every create, update or delete runs inside one transaction: write the
// record, then sweep the whole (organization, aircraft) scope in ledger
// order recomputing the running totals from delta fields alone. Stored
// totals are never an input to the sweep, so a sweep always repairs any
// earlier drift it walks over. Per-scope mutexes serialize concurrent
// writes to the same airframe.
type LedgerService struct {
	db           *gorm.DB
	logRepo      *repositories.DailyLogRepository
	aircraftRepo *repositories.AircraftRepository
	cache        common.CacheInterface
	queue        *common.RedisQueueService
	metricsReg   *metrics.MetricsRegistry

	locksMu    sync.Mutex
	scopeLocks map[string]*sync.Mutex
}

// NewLedgerService creates a new LedgerService. queue and metricsReg may be
// nil (tests, CLI); the service degrades to synchronous-only behavior.
func NewLedgerService(
	db *gorm.DB,
	logRepo *repositories.DailyLogRepository,
	aircraftRepo *repositories.AircraftRepository,
	cache common.CacheInterface,
	queue *common.RedisQueueService,
	metricsReg *metrics.MetricsRegistry,
) *LedgerService {
	return &LedgerService{
		db:           db,
		logRepo:      logRepo,
		aircraftRepo: aircraftRepo,
		cache:        cache,
		queue:        queue,
		metricsReg:   metricsReg,
		scopeLocks:   make(map[string]*sync.Mutex),
	}
}

// runningTotals accumulates delta fields while walking a scope. Flight time
// is carried in whole minutes so repeated sweeps cannot drift; formatting to
// two-decimal hours happens only at the write boundary.
type runningTotals struct {
	airframeMin int
	engineMin   int
	landings    int
	cycles      int
	starts      int
	ggCycles    int
	ftCycles    int
}

func (rt *runningTotals) add(rec *gormModels.DailyLog) error {
	afMin, err := common.ParseFlightTime(rec.AirframeTime)
	if err != nil {
		return fmt.Errorf("log %d airframe time: %w", rec.ID, err)
	}
	engMin, err := common.ParseFlightTime(rec.EngineTime)
	if err != nil {
		return fmt.Errorf("log %d engine time: %w", rec.ID, err)
	}

	rt.airframeMin += afMin
	rt.engineMin += engMin
	rt.landings += common.IntOrZero(rec.Landings)
	rt.cycles += common.IntOrZero(rec.Cycles)
	rt.starts += common.IntOrZero(rec.Starts)
	rt.ggCycles += common.IntOrZero(rec.GGCycles)
	rt.ftCycles += common.IntOrZero(rec.FTCycles)
	return nil
}

func (rt *runningTotals) totals() repositories.LedgerTotals {
	return repositories.LedgerTotals{
		AirframeHours:  common.FormatDecimalHours(rt.airframeMin),
		EngineHoursTSN: common.FormatDecimalHours(rt.engineMin),
		Landings:       rt.landings,
		Cycles:         rt.cycles,
		Starts:         rt.starts,
		GGCyclesTSN:    rt.ggCycles,
		FTCyclesTSN:    rt.ftCycles,
	}
}

func storedTotalsEqual(rec *gormModels.DailyLog, want repositories.LedgerTotals) bool {
	return rec.TotalAirframeHours == want.AirframeHours &&
		rec.TotalEngineHoursTSN == want.EngineHoursTSN &&
		rec.TotalLandings == want.Landings &&
		rec.TotalCycles == want.Cycles &&
		rec.TotalStarts == want.Starts &&
		rec.TotalGGCyclesTSN == want.GGCyclesTSN &&
		rec.TotalFTCyclesTSN == want.FTCyclesTSN
}

// scopeLock returns the mutex serializing writes to one ledger scope.
func (s *LedgerService) scopeLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if mu, exists := s.scopeLocks[key]; exists {
		return mu
	}
	mu := &sync.Mutex{}
	s.scopeLocks[key] = mu
	return mu
}

// lockScopes acquires the mutexes for the given scope keys in sorted order
// so an update moving a log between aircraft cannot deadlock against the
// reverse move.
func (s *LedgerService) lockScopes(keys ...string) func() {
	uniq := map[string]struct{}{}
	for _, k := range keys {
		uniq[k] = struct{}{}
	}
	ordered := make([]string, 0, len(uniq))
	for k := range uniq {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)

	locked := make([]*sync.Mutex, 0, len(ordered))
	for _, k := range ordered {
		mu := s.scopeLock(k)
		mu.Lock()
		locked = append(locked, mu)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

// recomputeScope walks every active log in scope in ledger order and
// rewrites any row whose stored totals differ from the recomputed ones.
// Returns the number of rows rewritten.
func (s *LedgerService) recomputeScope(ctx context.Context, tx *gorm.DB, scope repositories.LedgerScope) (int, error) {
	repo := s.logRepo.WithTx(tx)

	logs, err := repo.FindAllInScope(ctx, scope)
	if err != nil {
		return 0, err
	}

	var run runningTotals
	updated := 0

	for i := range logs {
		rec := &logs[i]
		if err := run.add(rec); err != nil {
			return updated, err
		}

		want := run.totals()
		if storedTotalsEqual(rec, want) {
			continue
		}
		if err := repo.UpdateTotals(ctx, rec.ID, want); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// sweep runs recomputeScope with metrics and logging around it.
func (s *LedgerService) sweep(ctx context.Context, tx *gorm.DB, scope repositories.LedgerScope, trigger string) error {
	start := time.Now()

	updated, err := s.recomputeScope(ctx, tx, scope)
	if err != nil {
		return err
	}

	if s.metricsReg != nil {
		s.metricsReg.LedgerSweepsTotal.WithLabelValues(trigger).Inc()
		s.metricsReg.LedgerSweepDuration.Observe(time.Since(start).Seconds())
		s.metricsReg.LedgerRecordsRecomputed.Add(float64(updated))
	}

	logging.Debug("Ledger sweep completed",
		"organization_id", scope.OrganizationID,
		"aircraft_id", scope.AircraftID,
		"trigger", trigger,
		"rows_rewritten", updated,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// invalidateTotals drops the cached latest-position entry for a scope.
func (s *LedgerService) invalidateTotals(scope repositories.LedgerScope) {
	if s.cache != nil {
		s.cache.Delete(string(constants.CachePrefixAircraftTotals) + scope.Key())
	}
}

// enqueueDirtyRange parks a scope for the background reconciler after a
// failed sweep. Best effort: the transaction already rolled back, so the
// stored totals are merely stale, not corrupted.
func (s *LedgerService) enqueueDirtyRange(ctx context.Context, scope repositories.LedgerScope, fromDate, reason string) {
	if s.queue == nil {
		return
	}

	stream := fmt.Sprintf(constants.LedgerReconcileStream, scope.OrganizationID)
	item := &common.ReconcileItem{
		OrganizationID: scope.OrganizationID,
		AircraftID:     scope.AircraftID,
		FromDate:       fromDate,
		Reason:         reason,
		EnqueuedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.queue.EnqueueReconcile(ctx, stream, item); err != nil {
		logging.Error("Failed to enqueue dirty ledger range",
			"organization_id", scope.OrganizationID,
			"aircraft_id", scope.AircraftID,
			"error", err.Error(),
		)
	}
}

func (s *LedgerService) validateDeltas(airframeTime, engineTime *string) error {
	if _, err := common.ParseFlightTime(airframeTime); err != nil {
		return &LedgerError{
			Code:    constants.ErrCodeInvalidFlightTime,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidFlightTime),
			Err:     err,
		}
	}
	if _, err := common.ParseFlightTime(engineTime); err != nil {
		return &LedgerError{
			Code:    constants.ErrCodeInvalidFlightTime,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidFlightTime),
			Err:     err,
		}
	}
	return nil
}

func (s *LedgerService) resolveAircraft(ctx context.Context, organizationID, aircraftID string) (*gormModels.Aircraft, error) {
	ac, err := s.aircraftRepo.GetByID(ctx, organizationID, aircraftID)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}
	if ac == nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeAircraftNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeAircraftNotFound),
		}
	}
	return ac, nil
}

// CreateDailyLog persists a new entry with correct totals and propagates the
// correction to every later log in the scope, all in one transaction.
func (s *LedgerService) CreateDailyLog(ctx context.Context, organizationID, actingUserID string, req *dtos.DailyLogSubmitRequest) (*gormModels.DailyLog, error) {
	logDate, err := time.Parse(logDateLayout, req.LogDate)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeInvalidLogDate,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidLogDate),
			Err:     err,
		}
	}
	if err := s.validateDeltas(req.AirframeTime, req.EngineTime); err != nil {
		return nil, err
	}
	if _, err := s.resolveAircraft(ctx, organizationID, req.AircraftID); err != nil {
		return nil, err
	}

	scope := repositories.LedgerScope{OrganizationID: organizationID, AircraftID: req.AircraftID}
	unlock := s.lockScopes(scope.Key())
	defer unlock()

	entry := &gormModels.DailyLog{
		OrganizationID: organizationID,
		AircraftID:     req.AircraftID,
		LogDate:        logDate,
		AirframeTime:   req.AirframeTime,
		EngineTime:     req.EngineTime,
		Landings:       req.Landings,
		Cycles:         req.Cycles,
		Starts:         req.Starts,
		GGCycles:       req.GGCycles,
		FTCycles:       req.FTCycles,
		UsageNote:      req.UsageNote,
		Remarks:        req.Remarks,
		IsActive:       true,
		CreatedBy:      actingUserID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.WithTx(tx).Insert(ctx, entry); err != nil {
			return err
		}
		return s.sweep(ctx, tx, scope, "create")
	})
	if err != nil {
		s.enqueueDirtyRange(ctx, scope, req.LogDate, "create failed mid-sweep")
		return nil, &LedgerError{
			Code:    constants.ErrCodeSweepFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSweepFailed),
			Err:     err,
		}
	}

	s.invalidateTotals(scope)
	if s.metricsReg != nil {
		s.metricsReg.DailyLogsCreatedTotal.Inc()
	}

	return s.reload(ctx, organizationID, entry.ID)
}

// UpdateDailyLog applies edits to delta fields, the log date or the aircraft
// and propagates recomputation across every affected scope.
func (s *LedgerService) UpdateDailyLog(ctx context.Context, organizationID string, id uint, req *dtos.DailyLogUpdateRequest) (*gormModels.DailyLog, error) {
	existing, err := s.logRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}
	if existing == nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeLogNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeLogNotFound),
		}
	}
	if !existing.IsActive {
		return nil, &LedgerError{
			Code:    constants.ErrCodeLogInactive,
			Message: constants.GetErrorMessage(constants.ErrCodeLogInactive),
		}
	}

	if err := s.validateDeltas(req.AirframeTime, req.EngineTime); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.LogDate != nil {
		newDate, err := time.Parse(logDateLayout, *req.LogDate)
		if err != nil {
			return nil, &LedgerError{
				Code:    constants.ErrCodeInvalidLogDate,
				Message: constants.GetErrorMessage(constants.ErrCodeInvalidLogDate),
				Err:     err,
			}
		}
		updates["log_date"] = newDate
	}
	if req.AircraftID != nil && *req.AircraftID != existing.AircraftID {
		if _, err := s.resolveAircraft(ctx, organizationID, *req.AircraftID); err != nil {
			return nil, err
		}
		updates["aircraft_id"] = *req.AircraftID
	}
	if req.AirframeTime != nil {
		updates["airframe_time"] = req.AirframeTime
	}
	if req.EngineTime != nil {
		updates["engine_time"] = req.EngineTime
	}
	if req.Landings != nil {
		updates["landings"] = req.Landings
	}
	if req.Cycles != nil {
		updates["cycles"] = req.Cycles
	}
	if req.Starts != nil {
		updates["starts"] = req.Starts
	}
	if req.GGCycles != nil {
		updates["gg_cycles"] = req.GGCycles
	}
	if req.FTCycles != nil {
		updates["ft_cycles"] = req.FTCycles
	}
	if req.UsageNote != nil {
		updates["usage_note"] = req.UsageNote
	}
	if req.Remarks != nil {
		updates["remarks"] = req.Remarks
	}

	if len(updates) == 0 {
		return existing, nil
	}

	oldScope := repositories.LedgerScope{OrganizationID: organizationID, AircraftID: existing.AircraftID}
	newScope := oldScope
	if ac, ok := updates["aircraft_id"].(string); ok {
		newScope.AircraftID = ac
	}

	unlock := s.lockScopes(oldScope.Key(), newScope.Key())
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.WithTx(tx).UpdateDeltaFields(ctx, existing.ID, updates); err != nil {
			return err
		}
		// Both positions are swept: the record's deltas left the old scope
		// and landed in the new one. Same scope means one sweep.
		if err := s.sweep(ctx, tx, oldScope, "update"); err != nil {
			return err
		}
		if newScope != oldScope {
			return s.sweep(ctx, tx, newScope, "update")
		}
		return nil
	})
	if err != nil {
		s.enqueueDirtyRange(ctx, oldScope, "", "update failed mid-sweep")
		if newScope != oldScope {
			s.enqueueDirtyRange(ctx, newScope, "", "update failed mid-sweep")
		}
		return nil, &LedgerError{
			Code:    constants.ErrCodeSweepFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSweepFailed),
			Err:     err,
		}
	}

	s.invalidateTotals(oldScope)
	s.invalidateTotals(newScope)

	return s.reload(ctx, organizationID, existing.ID)
}

// DeleteDailyLog soft-deletes an entry and recomputes every later log so
// the removed deltas drop out of downstream totals.
func (s *LedgerService) DeleteDailyLog(ctx context.Context, organizationID string, id uint) error {
	existing, err := s.logRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}
	if existing == nil || !existing.IsActive {
		return &LedgerError{
			Code:    constants.ErrCodeLogNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeLogNotFound),
		}
	}

	scope := repositories.LedgerScope{OrganizationID: organizationID, AircraftID: existing.AircraftID}
	unlock := s.lockScopes(scope.Key())
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.WithTx(tx).SoftDelete(ctx, organizationID, id); err != nil {
			return err
		}
		return s.sweep(ctx, tx, scope, "delete")
	})
	if err != nil {
		s.enqueueDirtyRange(ctx, scope, "", "delete failed mid-sweep")
		return &LedgerError{
			Code:    constants.ErrCodeSweepFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSweepFailed),
			Err:     err,
		}
	}

	s.invalidateTotals(scope)
	return nil
}

// RebuildScope recomputes an entire scope from scratch. Used by the
// reconcile worker and the repair CLI; safe to run repeatedly.
func (s *LedgerService) RebuildScope(ctx context.Context, scope repositories.LedgerScope) (int, error) {
	unlock := s.lockScopes(scope.Key())
	defer unlock()

	var updated int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.recomputeScope(ctx, tx, scope)
		updated = n
		return err
	})
	if err != nil {
		return updated, &LedgerError{
			Code:    constants.ErrCodeSweepFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeSweepFailed),
			Err:     err,
		}
	}

	if s.metricsReg != nil {
		s.metricsReg.LedgerSweepsTotal.WithLabelValues("rebuild").Inc()
		s.metricsReg.LedgerRecordsRecomputed.Add(float64(updated))
	}

	s.invalidateTotals(scope)
	return updated, nil
}

// GetDailyLog returns one log in the organization, NotFound when missing
// or soft-deleted.
func (s *LedgerService) GetDailyLog(ctx context.Context, organizationID string, id uint) (*gormModels.DailyLog, error) {
	entry, err := s.logRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}
	if entry == nil || !entry.IsActive {
		return nil, &LedgerError{
			Code:    constants.ErrCodeLogNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeLogNotFound),
		}
	}
	return entry, nil
}

// CurrentPosition returns the latest active log for an aircraft, whose
// totals are the airframe's cumulative position. Cached briefly because
// inspection status evaluation hits it for every schedule.
func (s *LedgerService) CurrentPosition(ctx context.Context, scope repositories.LedgerScope) (*gormModels.DailyLog, error) {
	cacheKey := string(constants.CachePrefixAircraftTotals) + scope.Key()

	if s.cache != nil {
		if val, found := s.cache.Get(cacheKey); found {
			if entry, ok := val.(*gormModels.DailyLog); ok {
				return entry, nil
			}
		}
	}

	entry, err := s.logRepo.Latest(ctx, scope)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}

	if s.cache != nil && entry != nil {
		s.cache.Set(cacheKey, entry, 5*time.Minute)
	}
	return entry, nil
}

func (s *LedgerService) reload(ctx context.Context, organizationID string, id uint) (*gormModels.DailyLog, error) {
	entry, err := s.logRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeStoreUnavailable,
			Message: constants.GetErrorMessage(constants.ErrCodeStoreUnavailable),
			Err:     err,
		}
	}
	if entry == nil {
		return nil, &LedgerError{
			Code:    constants.ErrCodeLogNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeLogNotFound),
		}
	}
	return entry, nil
}
