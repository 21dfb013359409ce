// Package clock 服务器 tick 计时与客户端服务器时间估计
package clock

import (
	"time"

	"platformer/pkg/core"
)

// Source 时间源，测试中可替换为手动时钟
type Source func() time.Time

// ServerClock 服务器权威 tick：启动以来经过的时间 / tick 时长
// 只由房间循环调用，不加锁
type ServerClock struct {
	start        time.Time
	tickDuration time.Duration
	now          Source
	last         core.Tick
}

// NewServerClock 以当前时刻为 tick 0 创建时钟，now 为 nil 时使用 time.Now
func NewServerClock(tickDuration time.Duration, now Source) *ServerClock {
	if now == nil {
		now = time.Now
	}
	return &ServerClock{
		start:        now(),
		tickDuration: tickDuration,
		now:          now,
	}
}

// NowTick 当前应处于的 tick，时间源回拨时不会倒退
func (c *ServerClock) NowTick() core.Tick {
	elapsed := c.now().Sub(c.start)
	if elapsed < 0 {
		elapsed = 0
	}
	t := core.Tick(elapsed / c.tickDuration)
	if t < c.last {
		return c.last
	}
	c.last = t
	return t
}

// TickDuration 每个 tick 的时长
func (c *ServerClock) TickDuration() time.Duration {
	return c.tickDuration
}

// TickTime tick 开始的墙钟时间
func (c *ServerClock) TickTime(t core.Tick) time.Time {
	return c.start.Add(time.Duration(t) * c.tickDuration)
}
