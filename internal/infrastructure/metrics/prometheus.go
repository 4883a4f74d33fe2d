// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidshare"

var (
	// RelationTogglesTotal tracks relation toggles.
	// Labels:
	//   - kind: video, comment, tweet, channel
	//   - result: created, removed, conflict, not_found, error
	RelationTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relation_toggles_total",
			Help:      "Total number of relation toggles by outcome",
		},
		[]string{"kind", "result"},
	)

	// AssetOperationsTotal tracks blob store calls made by the lifecycle coordinator.
	// Labels:
	//   - operation: upload, delete, reclaim_enqueue
	//   - status: success, error
	AssetOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_operations_total",
			Help:      "Total number of remote asset operations",
		},
		[]string{"operation", "status"},
	)

	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// ReclaimTasksTotal tracks reclaim tasks handled by the worker.
	// Labels:
	//   - status: success, retried, dropped
	ReclaimTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reclaim_tasks_total",
			Help:      "Total number of orphaned-asset reclaim tasks processed",
		},
		[]string{"status"},
	)
)

// PoolStats is the subset of connection pool statistics exported as gauges.
type PoolStats struct {
	AcquiredConns int32
	IdleConns     int32
	TotalConns    int32
}

// RegisterDBPoolStats exports pool gauges read from stats on every scrape.
func RegisterDBPoolStats(reg prometheus.Registerer, stats func() PoolStats) {
	gauge := func(name, help string, read func(PoolStats) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Namespace: namespace, Subsystem: "db_pool", Name: name, Help: help},
			func() float64 { return float64(read(stats())) },
		)
	}
	reg.MustRegister(
		gauge("acquired_conns", "Connections currently in use", func(s PoolStats) int32 { return s.AcquiredConns }),
		gauge("idle_conns", "Idle connections", func(s PoolStats) int32 { return s.IdleConns }),
		gauge("total_conns", "Total open connections", func(s PoolStats) int32 { return s.TotalConns }),
	)
}

// Status constants shared by operation counters.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = StatusSuccess
	CacheStatusError   = StatusError
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Asset operation constants.
const (
	AssetOpUpload         = "upload"
	AssetOpDelete         = "delete"
	AssetOpReclaimEnqueue = "reclaim_enqueue"
)

// Toggle result constants beyond the created/removed states.
const (
	ToggleConflict = "conflict"
	ToggleNotFound = "not_found"
	ToggleError    = "error"
)

// Reclaim status constants.
const (
	ReclaimSuccess = "success"
	ReclaimRetried = "retried"
	ReclaimDropped = "dropped"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
