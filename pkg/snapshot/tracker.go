package snapshot

import (
	"platformer/pkg/core"
	"platformer/pkg/timeline"
)

// Tracker 接收端状态：已应用的权威世界（作为后续增量的基线）和过期检测
// 只由接收方的拥有者 goroutine 使用
type Tracker struct {
	worlds *timeline.Ring[*core.WorldState]
	latest core.Tick
	has    bool
}

// NewTracker 保留最近 window 个 tick 的权威世界
func NewTracker(window int) *Tracker {
	return &Tracker{worlds: timeline.NewRing[*core.WorldState](window)}
}

// Accept 应用一个快照
// tick 不大于已应用的最新 tick 时返回 ErrStaleSnapshot；基线缺失返回 *DesyncError
func (t *Tracker) Accept(s *Snapshot) (*core.WorldState, error) {
	if t.has && s.Tick <= t.latest {
		return nil, ErrStaleSnapshot
	}

	var base *core.WorldState
	if !s.Full {
		base, _ = t.worlds.Get(s.Baseline)
	}
	w, err := Apply(s, base)
	if err != nil {
		return nil, err
	}

	t.worlds.Put(w.Tick, w)
	t.latest = w.Tick
	t.has = true
	return w, nil
}

// Latest 最近应用的权威世界
func (t *Tracker) Latest() (*core.WorldState, bool) {
	if !t.has {
		return nil, false
	}
	return t.worlds.Get(t.latest)
}

// LatestTick 最近应用的 tick，用于向服务器确认
func (t *Tracker) LatestTick() (core.Tick, bool) {
	return t.latest, t.has
}

// Reset 丢弃全部基线（重连）
func (t *Tracker) Reset() {
	t.worlds.Reset()
	t.latest = 0
	t.has = false
}
