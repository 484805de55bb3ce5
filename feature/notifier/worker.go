package notifier

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duplicate-monitor/feature/alerts"
)

const sweepLimit = 100

// Source supplies alerts awaiting notification.
type Source interface {
	Get(ctx context.Context, id uint) (*alerts.Alert, error)
	Pending(ctx context.Context, limit int) ([]alerts.Alert, error)
}

// Worker pushes pending alerts to the configured admin chats. Each alert is
// notified at most once per process; after a restart an unreplied alert may
// be announced again, which beats silently losing it.
type Worker struct {
	cfg    Config
	source Source
	sender Sender
	logger *zap.Logger

	mu       sync.Mutex
	notified map[uint]struct{}
}

// NewWorker creates a notifier worker.
func NewWorker(cfg Config, source Source, sender Sender, logger *zap.Logger) *Worker {
	return &Worker{
		cfg:      cfg,
		source:   source,
		sender:   sender,
		logger:   logger,
		notified: make(map[uint]struct{}),
	}
}

// Run polls for pending alerts until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval())
	defer ticker.Stop()
	for {
		if err := w.Sweep(ctx); err != nil {
			w.logger.Warn("Notifier sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep notifies all pending alerts not yet announced.
func (w *Worker) Sweep(ctx context.Context) error {
	pending, err := w.source.Pending(ctx, sweepLimit)
	if err != nil {
		return err
	}
	for i := range pending {
		if err := w.Notify(ctx, &pending[i]); err != nil {
			w.logger.Warn("Failed to notify alert",
				zap.Uint("alert_id", pending[i].ID), zap.Error(err))
		}
	}
	return nil
}

// HandleQueued notifies a single alert id taken from the work queue. It is
// shaped as a queue handler. Malformed or vanished ids are dropped rather
// than requeued.
func (w *Worker) HandleQueued(ctx context.Context, alertID string) error {
	id, err := strconv.ParseUint(alertID, 10, 64)
	if err != nil {
		w.logger.Warn("Dropping malformed queued alert id", zap.String("alert_id", alertID))
		return nil
	}
	alert, err := w.source.Get(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w.logger.Warn("Dropping queued alert that no longer exists", zap.Uint64("alert_id", id))
		return nil
	}
	if err != nil {
		return err
	}
	return w.Notify(ctx, alert)
}

// Notify sends one alert to every admin chat. The alert is marked as
// announced only after all sends succeed, so a partial failure retries.
func (w *Worker) Notify(ctx context.Context, alert *alerts.Alert) error {
	w.mu.Lock()
	_, seen := w.notified[alert.ID]
	w.mu.Unlock()
	if seen {
		return nil
	}

	text := FormatAlert(alert)
	for _, adminID := range w.cfg.AdminList() {
		if err := w.sender.Send(ctx, adminID, text); err != nil {
			return err
		}
	}

	w.mu.Lock()
	w.notified[alert.ID] = struct{}{}
	w.mu.Unlock()
	return nil
}
