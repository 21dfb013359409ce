package server

import (
	"sync/atomic"

	"platformer/pkg/core"
)

// AckState 客户端确认过的最新快照 tick，以及是否请求完整快照
// 接收 goroutine 写，房间循环读
type AckState struct {
	acked         atomic.Uint64 // tick+1，0 表示尚未确认
	fullRequested atomic.Bool
}

// Observe 记录确认，只会前进
func (a *AckState) Observe(tick core.Tick) {
	v := uint64(tick) + 1
	for {
		cur := a.acked.Load()
		if v <= cur || a.acked.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Acked 最新确认的 tick
func (a *AckState) Acked() (core.Tick, bool) {
	v := a.acked.Load()
	if v == 0 {
		return 0, false
	}
	return core.Tick(v - 1), true
}

// RequestFull 客户端缺少基线
func (a *AckState) RequestFull() {
	a.fullRequested.Store(true)
}

// TakeFullRequest 读取并清除完整快照请求
func (a *AckState) TakeFullRequest() bool {
	return a.fullRequested.Swap(false)
}

// Reset 丢弃确认，下一个快照为完整快照
func (a *AckState) Reset() {
	a.acked.Store(0)
	a.fullRequested.Store(false)
}
