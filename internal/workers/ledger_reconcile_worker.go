package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/services"
)

// LedgerReconcileWorker drains the per-organization dirty-range streams.
//
// A dirty range is enqueued when a synchronous sweep failed or an admin
// requested an async rebuild; the worker replays the whole scope, which is
// always safe because a sweep never reads stored totals.
type LedgerReconcileWorker struct {
	workerID string
	orgRepo  *repositories.OrganizationRepository
	queue    *common.RedisQueueService
	ledger   *services.LedgerService
}

// NewLedgerReconcileWorker creates a new reconcile worker
func NewLedgerReconcileWorker(
	workerID string,
	orgRepo *repositories.OrganizationRepository,
	queue *common.RedisQueueService,
	ledger *services.LedgerService,
) *LedgerReconcileWorker {
	return &LedgerReconcileWorker{
		workerID: workerID,
		orgRepo:  orgRepo,
		queue:    queue,
		ledger:   ledger,
	}
}

// Start launches numWorkers consumers per organization stream plus one
// stale-message claimer, and blocks until the context is cancelled.
func (w *LedgerReconcileWorker) Start(ctx context.Context, numWorkers int) error {
	orgs, err := w.orgRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch organizations: %w", err)
	}

	if len(orgs) == 0 {
		logging.Info("No organizations found, reconcile worker idle")
		return nil
	}

	logging.Info("Starting ledger reconcile workers",
		"organizations", len(orgs),
		"workers_per_stream", numWorkers,
	)

	var wg sync.WaitGroup
	orgIDs := make([]string, 0, len(orgs))

	for _, org := range orgs {
		orgIDs = append(orgIDs, org.ID)
		streamName := fmt.Sprintf(constants.LedgerReconcileStream, org.ID)

		if err := w.queue.CreateConsumerGroup(ctx, streamName, constants.LedgerReconcileGroup); err != nil {
			logging.Warn("Failed to create consumer group",
				"stream", streamName,
				"error", err.Error(),
			)
		}

		for i := 0; i < numWorkers; i++ {
			wg.Add(1)
			consumerName := fmt.Sprintf("%s-%s-%d", w.workerID, org.ID[:8], i)

			go func(streamName, consumerName string) {
				defer wg.Done()
				w.processStream(ctx, streamName, consumerName)
			}(streamName, consumerName)
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.claimStaleMessages(ctx, orgIDs)
	}()

	wg.Wait()
	logging.Info("All reconcile workers stopped")
	return nil
}

func (w *LedgerReconcileWorker) processStream(ctx context.Context, streamName, consumerName string) {
	processed := 0
	failed := 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("Reconcile worker shutting down",
				"consumer", consumerName,
				"processed", processed,
				"failed", failed,
			)
			return
		default:
			item, messageID, err := w.queue.DequeueReconcile(ctx, streamName, constants.LedgerReconcileGroup, consumerName, 5*time.Second)
			if err != nil {
				logging.Error("Error dequeuing reconcile item",
					"consumer", consumerName,
					"error", err.Error(),
				)
				time.Sleep(1 * time.Second) // Back off on error
				continue
			}

			if item == nil {
				// Timeout with no work
				continue
			}

			if err := w.processItem(ctx, item); err != nil {
				logging.Error("Failed to reconcile ledger scope",
					"consumer", consumerName,
					"aircraft_id", item.AircraftID,
					"error", err.Error(),
				)
				failed++
				// Still acknowledge: the scope stays stale, not corrupted,
				// and the next write to it sweeps everything anyway.
			} else {
				processed++
			}

			if err := w.queue.AckMessage(ctx, streamName, constants.LedgerReconcileGroup, messageID); err != nil {
				logging.Error("Failed to ack reconcile message",
					"consumer", consumerName,
					"message_id", messageID,
					"error", err.Error(),
				)
			}
		}
	}
}

func (w *LedgerReconcileWorker) processItem(ctx context.Context, item *common.ReconcileItem) error {
	scope := repositories.LedgerScope{
		OrganizationID: item.OrganizationID,
		AircraftID:     item.AircraftID,
	}

	updated, err := w.ledger.RebuildScope(ctx, scope)
	if err != nil {
		return err
	}

	logging.Info("Reconciled dirty ledger range",
		"organization_id", item.OrganizationID,
		"aircraft_id", item.AircraftID,
		"reason", item.Reason,
		"records_updated", updated,
	)
	return nil
}

// claimStaleMessages periodically reassigns messages a dead consumer left
// pending so the dirty range is eventually reconciled.
func (w *LedgerReconcileWorker) claimStaleMessages(ctx context.Context, orgIDs []string) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	consumerName := w.workerID + "-claimer"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, orgID := range orgIDs {
				streamName := fmt.Sprintf(constants.LedgerReconcileStream, orgID)

				items, ids, err := w.queue.ClaimStale(ctx, streamName, constants.LedgerReconcileGroup, consumerName, 5*time.Minute)
				if err != nil {
					continue
				}

				for i, item := range items {
					if err := w.processItem(ctx, item); err != nil {
						logging.Error("Failed to reconcile claimed range",
							"aircraft_id", item.AircraftID,
							"error", err.Error(),
						)
					}
					_ = w.queue.AckMessage(ctx, streamName, constants.LedgerReconcileGroup, ids[i])
				}
			}
		}
	}
}
