package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, SourceRequestsTotal)
	assert.NotNil(t, SourceDailyUsage)
	assert.NotNil(t, SourceQuotaHitsTotal)
	assert.NotNil(t, SourceFetchDuration)
	assert.NotNil(t, SourceFetchFailuresTotal)
	assert.NotNil(t, DealsFetchedTotal)
	assert.NotNil(t, DealsAfterDedupTotal)
	assert.NotNil(t, CacheHitsTotal)
	assert.NotNil(t, CacheMissesTotal)
	assert.NotNil(t, ScoringDistribution)
	assert.NotNil(t, SuspiciousDealsTotal)
	assert.NotNil(t, AlertsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, HotDealsRunDuration)
	assert.NotNil(t, HotDealsRunErrorsTotal)
	assert.NotNil(t, FeaturedDealsUpsertedTotal)
	assert.NotNil(t, FeaturedDealsPrunedTotal)
	assert.NotNil(t, SchedulerNextHotDealsTimestamp)
}

func TestSourceCountersArePerLabel(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(SourceRequestsTotal.WithLabelValues("metrics-test"))
	SourceRequestsTotal.WithLabelValues("metrics-test").Inc()
	after := testutil.ToFloat64(SourceRequestsTotal.WithLabelValues("metrics-test"))

	assert.InDelta(t, before+1, after, 0.001)
}
