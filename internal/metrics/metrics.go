// Package metrics 服务器与客户端的 prometheus 指标
// 标签取值都是有限集合，不按玩家打标签
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 服务器
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "platformer_tick_duration_seconds",
		Help:    "Time spent in one authoritative tick",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02},
	})

	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platformer_ticks_total",
		Help: "Authoritative ticks simulated",
	})

	playerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "platformer_players",
		Help: "Players in the world (including bots)",
	})

	connectionCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "platformer_connections",
		Help: "Open client connections",
	})

	inputGaps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platformer_input_gaps_total",
		Help: "Player ticks simulated with the default input",
	})

	inputsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platformer_inputs_rejected_total",
		Help: "Inputs rejected by the server input history",
	}, []string{"reason"}) // late, duplicate, window

	snapshotsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platformer_snapshots_sent_total",
		Help: "Snapshots sent to clients",
	}, []string{"kind"}) // full, delta

	snapshotBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platformer_snapshot_bytes_total",
		Help: "Encoded snapshot bytes sent",
	})

	packetsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platformer_packets_dropped_total",
		Help: "Packets dropped before processing or sending",
	}, []string{"reason"}) // rate_limit, queue_full, inbox_full, decode

	// 客户端
	staleSnapshots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platformer_client_stale_snapshots_total",
		Help: "Snapshots discarded because a newer one was already applied",
	})

	rollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "platformer_client_rollbacks_total",
		Help: "Mispredictions corrected by rollback and replay",
	})

	rollbackDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "platformer_client_rollback_depth_ticks",
		Help:    "Ticks replayed per rollback",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
	})

	resyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "platformer_client_resyncs_total",
		Help: "Forced resynchronisations",
	}, []string{"reason"}) // desync, retention, clock
)

// RecordTick 记录一次权威 tick 的耗时
func RecordTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
	ticksTotal.Inc()
}

func SetPlayers(n int) {
	playerCount.Set(float64(n))
}

func SetConnections(n int) {
	connectionCount.Set(float64(n))
}

// AddInputGaps 记录用默认输入替代的玩家 tick 数
func AddInputGaps(n int) {
	inputGaps.Add(float64(n))
}

// RecordInputRejected reason 只能是 late / duplicate / window
func RecordInputRejected(reason string) {
	inputsRejected.WithLabelValues(reason).Inc()
}

// RecordSnapshot 记录一次快照发送
func RecordSnapshot(full bool, bytes int) {
	kind := "delta"
	if full {
		kind = "full"
	}
	snapshotsSent.WithLabelValues(kind).Inc()
	snapshotBytes.Add(float64(bytes))
}

// RecordPacketDropped reason 只能是 rate_limit / queue_full / inbox_full / decode
func RecordPacketDropped(reason string) {
	packetsDropped.WithLabelValues(reason).Inc()
}

func RecordStaleSnapshot() {
	staleSnapshots.Inc()
}

// RecordRollback 记录一次回滚重放的深度
func RecordRollback(depth int) {
	rollbacks.Inc()
	rollbackDepth.Observe(float64(depth))
}

// RecordResync reason 只能是 desync / retention / clock
func RecordResync(reason string) {
	resyncs.WithLabelValues(reason).Inc()
}
