package workers

import (
	"context"
	"fmt"
	"time"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/metrics"
)

// QueueMonitor exports the depth of each organization's reconcile stream.
type QueueMonitor struct {
	orgRepo    *repositories.OrganizationRepository
	queue      *common.RedisQueueService
	metricsReg *metrics.MetricsRegistry
}

// NewQueueMonitor creates a new queue monitor
func NewQueueMonitor(orgRepo *repositories.OrganizationRepository, queue *common.RedisQueueService, metricsReg *metrics.MetricsRegistry) *QueueMonitor {
	return &QueueMonitor{
		orgRepo:    orgRepo,
		queue:      queue,
		metricsReg: metricsReg,
	}
}

// Start polls stream depths on the given interval until ctx is cancelled.
func (m *QueueMonitor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			orgs, err := m.orgRepo.GetAll(ctx)
			if err != nil {
				continue
			}
			for _, org := range orgs {
				streamName := fmt.Sprintf(constants.LedgerReconcileStream, org.ID)
				depth, err := m.queue.QueueDepth(ctx, streamName)
				if err != nil {
					continue
				}
				m.metricsReg.ReconcileQueueDepth.WithLabelValues(org.ID).Set(float64(depth))
			}
		}
	}
}
