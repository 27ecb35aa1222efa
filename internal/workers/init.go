package workers

import (
	"context"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/metrics"
	"flightbay/techlog/internal/services"
)

type WorkersContainer struct {
	Reconciler *LedgerReconcileWorker
	Monitor    *QueueMonitor
}

func InitWorkers(
	ctx context.Context,
	orgRepo *repositories.OrganizationRepository,
	queue *common.RedisQueueService,
	ledger *services.LedgerService,
	metricsReg *metrics.MetricsRegistry,
) *WorkersContainer {
	reconciler := NewLedgerReconcileWorker("ledger_reconcile", orgRepo, queue, ledger)
	monitor := NewQueueMonitor(orgRepo, queue, metricsReg)

	go reconciler.Start(ctx, 2)
	go monitor.Start(ctx, 30*time.Second)

	return &WorkersContainer{
		Reconciler: reconciler,
		Monitor:    monitor,
	}
}
