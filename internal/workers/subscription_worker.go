package workers

import (
	"context"
	"time"

	"homelink_backend/internal/logger"
	"homelink_backend/internal/services"
)

// SubscriptionWorker runs the periodic subscription expiry sweep outside the
// request path. Sweep failures are logged and retried on the next tick, never
// surfaced to a user.
type SubscriptionWorker struct {
	entitlementService services.EntitlementService
	interval           time.Duration
}

func NewSubscriptionWorker(entitlementService services.EntitlementService, interval time.Duration) *SubscriptionWorker {
	return &SubscriptionWorker{
		entitlementService: entitlementService,
		interval:           interval,
	}
}

// Start launches the expiry sweep loop.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.sweepExpiredSubscriptions(ctx)
}

func (w *SubscriptionWorker) sweepExpiredSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			downgraded, err := w.entitlementService.ExpireSubscriptions(ctx)
			if err != nil {
				logger.WorkerLog("subscription", "expire_sweep", err)
				continue
			}
			if downgraded > 0 {
				logger.Info("expired subscriptions downgraded", "count", downgraded)
			}
		}
	}
}
