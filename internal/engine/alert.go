package engine

import (
	"context"
	"fmt"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
	"github.com/donaldgifford/deal-aggregator/internal/notify"
	"github.com/donaldgifford/deal-aggregator/internal/store"
	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const (
	// batchThreshold is the smallest pending set sent as one batch message.
	batchThreshold = 3
	batchHeading   = "hot deals"
)

// ProcessAlerts notifies about stored deals scoring at least minScore that
// no alert has covered yet, and marks each delivered deal notified. Under
// batchThreshold deals go out one message each, otherwise as one batch.
// Delivery stops at the first failure and the rest stay pending for the
// next run. It returns how many deals were delivered.
func ProcessAlerts(ctx context.Context, s store.Store, n notify.Notifier, minScore, limit int) (int, error) {
	pending, err := s.ListUnnotifiedDeals(ctx, minScore, limit)
	if err != nil {
		return 0, fmt.Errorf("listing unnotified deals: %w", err)
	}

	groups := make([][]domain.FeaturedDeal, 0, len(pending))
	if len(pending) >= batchThreshold {
		groups = append(groups, pending)
	} else {
		for i := range pending {
			groups = append(groups, pending[i:i+1])
		}
	}

	sent := 0
	for _, g := range groups {
		if err := deliver(ctx, s, n, g); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			return sent, err
		}
		sent += len(g)
	}
	return sent, nil
}

// deliver sends deals as a single alert or a batch, then marks them.
func deliver(ctx context.Context, s store.Store, n notify.Notifier, deals []domain.FeaturedDeal) error {
	payloads := make([]notify.AlertPayload, len(deals))
	ids := make([]string, len(deals))
	for i := range deals {
		payloads[i] = notify.PayloadFromDeal(&deals[i])
		ids[i] = deals[i].ID
	}

	what := fmt.Sprintf("%d deals", len(ids))
	if len(deals) == 1 {
		what = "deal " + ids[0]
		if err := n.SendAlert(ctx, &payloads[0]); err != nil {
			return fmt.Errorf("sending alert for %s: %w", what, err)
		}
	} else if err := n.SendBatchAlert(ctx, payloads, batchHeading); err != nil {
		return fmt.Errorf("sending batch alert for %s: %w", what, err)
	}
	metrics.AlertsSentTotal.Add(float64(len(ids)))

	if err := s.MarkNotified(ctx, ids); err != nil {
		return fmt.Errorf("marking %s notified: %w", what, err)
	}
	return nil
}
