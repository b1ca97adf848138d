package worker

import (
	"context"
	"time"

	"github.com/arkade-store/stockroom/pkg/service/notifier"
	"github.com/arkade-store/stockroom/pkg/utils/logging"
)

// CampaignTickWorker drives the notification campaign retry loop on a
// fixed cadence.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The notifier decides whether a tick does work; an idle tick is free
type CampaignTickWorker struct {
	notifier *notifier.Notifier
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCampaignTickWorker creates a worker that ticks the notifier every interval
func NewCampaignTickWorker(n *notifier.Notifier, interval time.Duration) *CampaignTickWorker {
	return &CampaignTickWorker{
		notifier: n,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background tick loop. Does not block server startup.
func (w *CampaignTickWorker) Start(ctx context.Context) error {
	logging.Default().Info("campaign tick worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CampaignTickWorker) Stop() {
	logging.Default().Info("campaign tick worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("campaign tick worker stopped")
}

func (w *CampaignTickWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.notifier.Tick(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("campaign tick failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("campaign tick worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("campaign tick worker context cancelled")
			return
		}
	}
}
