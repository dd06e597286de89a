package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier stands in when no Discord webhook is configured. Alerts are
// logged and go nowhere else.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier returns a NoOpNotifier logging to log, or to the default
// logger when log is nil.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpNotifier{log: log.With("notifier", "none")}
}

// SendAlert logs the alert.
func (n *NoOpNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	n.logAlert(ctx, alert)
	return nil
}

// SendBatchAlert logs a summary line and then each alert.
func (n *NoOpNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload, heading string) error {
	if len(alerts) == 0 {
		return nil
	}
	n.log.InfoContext(ctx, "alert batch not delivered", "heading", heading, "count", len(alerts))
	for i := range alerts {
		n.logAlert(ctx, &alerts[i])
	}
	return nil
}

func (n *NoOpNotifier) logAlert(ctx context.Context, a *AlertPayload) {
	n.log.InfoContext(ctx, "alert not delivered",
		slog.Group("deal",
			"id", a.DealID,
			"title", a.Title,
			"source", a.Source,
			"price", a.Price,
			"score", a.Score,
		),
	)
}
