package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
)

// outboxDispatcher drains queued notifications into the sink. A message is tried at most
// maxAttempts times and then parked as FAILED.
type outboxDispatcher struct {
	BaseService
	store       portsrepo.Store
	sink        portssvc.NotificationSink
	maxAttempts int
	batchSize   int
	interval    time.Duration
	lease       time.Duration
	wake        chan struct{}
}

// DispatcherConfig tunes the dispatcher loop.
type DispatcherConfig struct {
	MaxAttempts  int
	BatchSize    int
	PollInterval time.Duration
	// ClaimLease is how long a claimed message stays with one dispatcher before another may retry it.
	ClaimLease time.Duration
}

// NewOutboxDispatcher creates a dispatcher writing to sink.
func NewOutboxDispatcher(store portsrepo.Store, sink portssvc.NotificationSink, cfg DispatcherConfig, clock func() time.Time) portssvc.OutboxDispatcherSvc {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = time.Minute
	}
	return &outboxDispatcher{
		BaseService: BaseService{Clock: clock},
		store:       store,
		sink:        sink,
		maxAttempts: cfg.MaxAttempts,
		batchSize:   cfg.BatchSize,
		interval:    cfg.PollInterval,
		lease:       cfg.ClaimLease,
		wake:        make(chan struct{}, 1),
	}
}

var _ portssvc.OutboxDispatcherSvc = (*outboxDispatcher)(nil)

// DispatchPending claims a batch, delivers it with no unit of work open and settles each
// message on its own. A message whose result cannot be recorded stays claimed and is
// retried once its lease runs out.
func (d *outboxDispatcher) DispatchPending(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = d.batchSize
	}
	outbox := d.store.Outbox()
	msgs, err := outbox.ClaimPending(ctx, batchSize, d.Now(), d.lease)
	if err != nil {
		return 0, fmt.Errorf("claiming outbox messages: %w", err)
	}

	sent := 0
	for _, m := range msgs {
		if ctx.Err() != nil {
			break
		}
		sendErr := d.sink.Send(ctx, m.Destination, m.Body)
		if sendErr == nil {
			if err := outbox.MarkSent(ctx, m.MessageID, d.Now()); err != nil {
				d.LogError(ctx, err, "Failed to record delivered notification", slog.String("message_id", m.MessageID))
				continue
			}
			sent++
			continue
		}

		giveUp := m.Attempts+1 >= d.maxAttempts
		d.LogWarn(ctx, sendErr, "Notification delivery failed",
			slog.String("message_id", m.MessageID),
			slog.String("transaction_id", m.TransactionID),
			slog.Int("attempt", m.Attempts+1),
			slog.Bool("giving_up", giveUp))
		if err := outbox.MarkAttemptFailed(ctx, m.MessageID, sendErr.Error(), giveUp); err != nil {
			d.LogError(ctx, err, "Failed to record notification attempt", slog.String("message_id", m.MessageID))
		}
	}
	return sent, nil
}

func (d *outboxDispatcher) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *outboxDispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	d.LogInfo(ctx, "Outbox dispatcher started", slog.Duration("interval", d.interval), slog.Int("batch_size", d.batchSize))

	for {
		select {
		case <-ctx.Done():
			d.LogInfo(ctx, "Outbox dispatcher stopped")
			return nil
		case <-ticker.C:
		case <-d.wake:
		}
		sent, err := d.DispatchPending(ctx, d.batchSize)
		if err != nil {
			d.LogError(ctx, err, "Outbox dispatch round failed")
			continue
		}
		if sent > 0 {
			d.LogDebug(ctx, "Outbox dispatch round", slog.Int("sent", sent))
		}
	}
}
