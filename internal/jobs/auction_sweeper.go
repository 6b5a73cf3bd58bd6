package jobs

import (
	"context"
	"sync"
	"time"

	"bidwar/internal/services"

	"go.uber.org/zap"
)

// AuctionSweeper advances time-driven auction transitions on a fixed
// interval: Scheduled auctions whose start time has passed become Active,
// and Active auctions whose end time has passed are closed. One sweeper
// goroutine sweeps sequentially, so runs never overlap regardless of how
// long a sweep takes; a re-run over already-transitioned auctions is a no-op
// because the status guards exclude them.
type AuctionSweeper struct {
	auctions *services.AuctionService
	interval time.Duration
	log      *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewAuctionSweeper(auctions *services.AuctionService, interval time.Duration, log *zap.Logger) *AuctionSweeper {
	return &AuctionSweeper{
		auctions: auctions,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled.
// Blocking; callers run it in its own goroutine.
func (sw *AuctionSweeper) Start(ctx context.Context) {
	sw.log.Info("auction_sweeper_started", zap.Duration("interval", sw.interval))

	// catch up on transitions that came due while the process was down
	sw.Sweep(ctx)

	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.Sweep(ctx)
		case <-sw.stopChan:
			sw.log.Info("auction_sweeper_stopped")
			return
		case <-ctx.Done():
			sw.log.Info("auction_sweeper_stopped", zap.Error(ctx.Err()))
			return
		}
	}
}

// Stop ends the sweep loop. Safe to call more than once.
func (sw *AuctionSweeper) Stop() {
	sw.stopOnce.Do(func() { close(sw.stopChan) })
}

// Sweep performs one pass: activations first, then closures. The two
// queries are independent; a failure in one does not skip the other.
func (sw *AuctionSweeper) Sweep(ctx context.Context) {
	activated, err := sw.auctions.ActivateDueAuctions(ctx)
	if err != nil {
		sw.log.Error("sweep_activation_query_failed", zap.Error(err))
	}

	closed, err := sw.auctions.CloseDueAuctions(ctx)
	if err != nil {
		sw.log.Error("sweep_close_query_failed", zap.Error(err))
	}

	if activated > 0 || closed > 0 {
		sw.log.Info("sweep_completed",
			zap.Int("activated", activated),
			zap.Int("closed", closed))
	}
}
