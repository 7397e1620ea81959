package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type mutationCounter struct {
	total          atomic.Uint64
	failed         atomic.Uint64
	durationMicros atomic.Uint64
}

var mutationCounters sync.Map

type MutationStats struct {
	Operation     string  `json:"operation"`
	RequestsTotal uint64  `json:"requests_total"`
	FailedTotal   uint64  `json:"failed_total"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// RecordMutation counts one write operation such as "like-post".
func RecordMutation(operation string, duration time.Duration, success bool) {
	value, _ := mutationCounters.LoadOrStore(operation, &mutationCounter{})
	counter := value.(*mutationCounter)

	counter.total.Add(1)
	if !success {
		counter.failed.Add(1)
	}
	if duration > 0 {
		counter.durationMicros.Add(uint64(duration / time.Microsecond))
	}
}

func getMutationStats() []MutationStats {
	out := make([]MutationStats, 0)
	mutationCounters.Range(func(key, value any) bool {
		counter := value.(*mutationCounter)
		total := counter.total.Load()
		avgDurationMS := 0.0
		if total > 0 {
			avgDurationMS = float64(counter.durationMicros.Load()) / float64(total) / 1000.0
		}
		out = append(out, MutationStats{
			Operation:     key.(string),
			RequestsTotal: total,
			FailedTotal:   counter.failed.Load(),
			AvgDurationMS: avgDurationMS,
		})
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}
