package watcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelhub/shipping-api/internal/api/metrics"
	"github.com/parcelhub/shipping-api/internal/core/domain"
	"github.com/parcelhub/shipping-api/internal/core/ports"
)

const defaultPollInterval = 5 * time.Second

// StateChanger is the slice of the shipment service the watcher drives.
type StateChanger interface {
	ChangeState(ctx context.Context, shipmentID string, newState domain.ShipmentState) error
}

// Watcher bridges state changes written directly to storage (by external
// carriers or integration tooling) into the notification channel. It polls
// the repository at a fixed interval for shipments changed since its last
// checkpoint and replays each observation through the change-state use case.
//
// The checkpoint lives only in this struct and is advanced after every batch
// whether or not individual items failed: delivery is at-least-once, and a
// restart resets the checkpoint to "now", skipping changes that landed
// during the restart window.
type Watcher struct {
	repo      ports.ShipmentRepository
	changer   StateChanger
	interval  time.Duration
	lastCheck time.Time
	log       zerolog.Logger
}

func New(repo ports.ShipmentRepository, changer StateChanger, interval time.Duration, log zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		repo:     repo,
		changer:  changer,
		interval: interval,
		log:      log,
	}
}

// Start runs the poll loop until ctx is cancelled. It blocks; run it in its
// own goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.lastCheck = time.Now().UTC()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("shipment watcher started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("shipment watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll processes one cycle: fetch changes since the checkpoint, replay them
// sequentially, then advance the checkpoint. Per-item failures are logged
// and skipped so one bad shipment cannot stall the stream; the failed item
// will be re-observed on the next cycle because the checkpoint only moves
// past it once the batch completes.
func (w *Watcher) poll(ctx context.Context) {
	metrics.WatcherCyclesTotal.Inc()

	changes, err := w.repo.FindChangedSince(ctx, w.lastCheck)
	if err != nil {
		w.log.Error().Err(err).Msg("watcher query failed")
		return
	}

	for _, change := range changes {
		if err := w.changer.ChangeState(ctx, change.ShipmentID, change.State); err != nil {
			metrics.WatcherItemErrorsTotal.Inc()
			w.log.Error().Err(err).
				Str("shipment_id", change.ShipmentID).
				Str("state", string(change.State)).
				Msg("watcher failed to replay state change")
			continue
		}
		metrics.WatcherChangesTotal.Inc()
	}

	w.lastCheck = time.Now().UTC()
}
