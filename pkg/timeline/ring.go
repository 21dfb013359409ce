// Package timeline 按 tick 索引的定长环形存储：世界状态历史与玩家输入历史
package timeline

import "platformer/pkg/core"

// Ring 以 tick 取模寻址的定长环形缓冲，写入新 tick 会覆盖 window 之前的旧值
type Ring[T any] struct {
	slots []slot[T]
}

type slot[T any] struct {
	tick  core.Tick
	valid bool
	value T
}

// NewRing 创建容量为 window 的环
func NewRing[T any](window int) *Ring[T] {
	if window < 1 {
		window = 1
	}
	return &Ring[T]{slots: make([]slot[T], window)}
}

// Window 容量（保留的 tick 数）
func (r *Ring[T]) Window() int {
	return len(r.slots)
}

func (r *Ring[T]) index(tick core.Tick) int {
	return int(uint64(tick) % uint64(len(r.slots)))
}

// Put 写入 tick 对应的值
func (r *Ring[T]) Put(tick core.Tick, v T) {
	r.slots[r.index(tick)] = slot[T]{tick: tick, valid: true, value: v}
}

// Get 读取 tick 对应的值，已被覆盖或从未写入时返回 false
func (r *Ring[T]) Get(tick core.Tick) (T, bool) {
	s := r.slots[r.index(tick)]
	if !s.valid || s.tick != tick {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Delete 删除 tick 对应的值
func (r *Ring[T]) Delete(tick core.Tick) {
	i := r.index(tick)
	if r.slots[i].valid && r.slots[i].tick == tick {
		r.slots[i] = slot[T]{}
	}
}

// Reset 清空
func (r *Ring[T]) Reset() {
	clear(r.slots)
}
