package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var balanceCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tta",
	Subsystem: "balance_cache",
	Name:      "lookups_total",
	Help:      "Balance cache lookups by tier and result.",
}, []string{"tier", "result"})

// BalanceCache tracks balance cache effectiveness per tier.
type BalanceCache struct{}

// NewBalanceCache creates a BalanceCache metrics collector.
func NewBalanceCache() *BalanceCache {
	return &BalanceCache{}
}

// ObserveLookup records a hit or miss on the given tier.
func (BalanceCache) ObserveLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	balanceCacheLookupsTotal.WithLabelValues(tier, result).Inc()
}
