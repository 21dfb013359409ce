package timeline

import (
	"errors"
	"fmt"

	"platformer/pkg/core"
)

var ErrStoreEmpty = errors.New("世界历史为空")

// WorldStore 最近 K 个 tick 的世界状态
// 只有所属的模拟循环写入；已发布的 WorldState 不可变，可以被其他 goroutine 只读引用
type WorldStore struct {
	ring   *Ring[*core.WorldState]
	latest core.Tick
	has    bool
}

// NewWorldStore 创建保留 window 个 tick 的历史
func NewWorldStore(window int) *WorldStore {
	return &WorldStore{ring: NewRing[*core.WorldState](window)}
}

// Put 写入一个世界状态。同 tick 覆盖（客户端回滚重放），不允许跳过 tick 追加
func (s *WorldStore) Put(w *core.WorldState) error {
	if s.has && w.Tick > s.latest+1 {
		return fmt.Errorf("tick 不连续: 最新 %d, 写入 %d", s.latest, w.Tick)
	}
	s.ring.Put(w.Tick, w)
	if !s.has || w.Tick > s.latest {
		s.latest = w.Tick
		s.has = true
	}
	return nil
}

// Reset 清空后以 w 为新的起点（权威快照领先或强制重同步）
func (s *WorldStore) Reset(w *core.WorldState) {
	s.ring.Reset()
	s.ring.Put(w.Tick, w)
	s.latest = w.Tick
	s.has = true
}

// Get 读取 tick 的世界状态，超出保留窗口返回 false
func (s *WorldStore) Get(tick core.Tick) (*core.WorldState, bool) {
	if !s.has || tick > s.latest {
		return nil, false
	}
	return s.ring.Get(tick)
}

// Latest 最新的世界状态
func (s *WorldStore) Latest() (*core.WorldState, error) {
	if !s.has {
		return nil, ErrStoreEmpty
	}
	w, ok := s.ring.Get(s.latest)
	if !ok {
		return nil, ErrStoreEmpty
	}
	return w, nil
}

// LatestTick 最新 tick
func (s *WorldStore) LatestTick() core.Tick {
	return s.latest
}

// Oldest 仍在窗口内的最早 tick
func (s *WorldStore) Oldest() core.Tick {
	window := core.Tick(s.ring.Window())
	if s.latest+1 < window {
		return 0
	}
	return s.latest + 1 - window
}

// Contains tick 是否仍可读
func (s *WorldStore) Contains(tick core.Tick) bool {
	_, ok := s.Get(tick)
	return ok
}
