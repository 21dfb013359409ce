package clock

import (
	"math"
	"time"

	"platformer/pkg/core"
)

// ClientConfig 客户端时钟参数
type ClientConfig struct {
	TickDuration     time.Duration
	LeadTicks        int     // 预测 tick 在往返延迟之外额外领先的 tick 数
	DriftAheadTicks  int     // 领先目标超过该值时减速
	DriftBehindTicks int     // 落后目标超过该值时加速
	DriftNudge       float64 // 加减速幅度，例如 0.05 表示 ±5%
	ResyncJumpTicks  int     // 偏差超过该值直接跳转
	MaxCatchUpTicks  int     // 单次 Advance 最多推进的 tick 数
}

// Correction 一次漂移校正的结果
type Correction struct {
	Rate   float64   // 新的播放速率
	Drift  int64     // 预测 tick - 目标 tick
	Jump   bool      // 需要直接跳转（重连或严重失步）
	JumpTo core.Tick // 跳转目标
}

// ClientClock 客户端对服务器 tick 的估计
// 目标预测 tick = 最近权威 tick + 本地经过时间 + 一个往返延迟 + LeadTicks
// 只由客户端会话的拥有者 goroutine 调用
type ClientClock struct {
	cfg ClientConfig

	srtt   time.Duration
	hasRTT bool

	serverTick core.Tick
	serverAt   time.Time
	hasServer  bool

	rate        float64
	lastAdvance time.Time
	acc         time.Duration
	forceJump   bool
}

// NewClientClock 创建客户端时钟
func NewClientClock(cfg ClientConfig) *ClientClock {
	if cfg.MaxCatchUpTicks <= 0 {
		cfg.MaxCatchUpTicks = 10
	}
	return &ClientClock{cfg: cfg, rate: 1, forceJump: true}
}

// ObserveServerTick 记录收到的权威 tick 及本地到达时间，旧 tick 忽略
func (c *ClientClock) ObserveServerTick(tick core.Tick, at time.Time) {
	if c.hasServer && tick < c.serverTick {
		return
	}
	c.serverTick = tick
	c.serverAt = at
	c.hasServer = true
}

// ObserveRTT 平滑往返延迟（EWMA，alpha = 1/8）
func (c *ClientClock) ObserveRTT(rtt time.Duration) {
	if rtt < 0 {
		return
	}
	if !c.hasRTT {
		c.srtt = rtt
		c.hasRTT = true
		return
	}
	c.srtt += (rtt - c.srtt) / 8
}

// RTT 平滑后的往返延迟
func (c *ClientClock) RTT() time.Duration {
	return c.srtt
}

// Synced 是否已收到过权威 tick
func (c *ClientClock) Synced() bool {
	return c.hasServer
}

func (c *ClientClock) ticksSince(now time.Time) float64 {
	return float64(now.Sub(c.serverAt)) / float64(c.cfg.TickDuration)
}

// EstimateServerFloat 服务器当前 tick 的估计值（含小数部分，用于插值渲染）
func (c *ClientClock) EstimateServerFloat(now time.Time) float64 {
	if !c.hasServer {
		return 0
	}
	halfRTT := float64(c.srtt/2) / float64(c.cfg.TickDuration)
	return float64(c.serverTick) + c.ticksSince(now) + halfRTT
}

// EstimateServerTick 服务器当前 tick 的估计值
func (c *ClientClock) EstimateServerTick(now time.Time) core.Tick {
	return core.Tick(math.Floor(c.EstimateServerFloat(now)))
}

// TargetTick 本地预测应到达的 tick，领先权威 tick 大约一个往返
func (c *ClientClock) TargetTick(now time.Time) core.Tick {
	if !c.hasServer {
		return 0
	}
	rtt := float64(c.srtt) / float64(c.cfg.TickDuration)
	return core.Tick(math.Floor(float64(c.serverTick) + c.ticksSince(now) + rtt + float64(c.cfg.LeadTicks)))
}

// Advance 返回距上次调用应推进的本地 tick 数（按当前速率缩放）
func (c *ClientClock) Advance(now time.Time) int {
	if c.lastAdvance.IsZero() {
		c.lastAdvance = now
		return 0
	}
	dt := now.Sub(c.lastAdvance)
	c.lastAdvance = now
	if dt <= 0 {
		return 0
	}

	c.acc += time.Duration(float64(dt) * c.rate)
	n := int(c.acc / c.cfg.TickDuration)
	c.acc -= time.Duration(n) * c.cfg.TickDuration
	if n > c.cfg.MaxCatchUpTicks {
		// 长时间卡顿：丢弃积压，交给漂移校正处理
		n = c.cfg.MaxCatchUpTicks
		c.acc = 0
	}
	return n
}

// Rate 当前播放速率
func (c *ClientClock) Rate() float64 {
	return c.rate
}

// Correct 根据预测 tick 与目标 tick 的偏差调整播放速率
// 只有重连后或偏差超过 ResyncJumpTicks 才会要求跳转，其余情况只微调速率
func (c *ClientClock) Correct(predicted core.Tick, now time.Time) Correction {
	if !c.hasServer {
		return Correction{Rate: c.rate}
	}

	target := c.TargetTick(now)
	drift := int64(predicted) - int64(target)

	if c.forceJump || drift > int64(c.cfg.ResyncJumpTicks) || -drift > int64(c.cfg.ResyncJumpTicks) {
		c.forceJump = false
		c.rate = 1
		return Correction{Rate: 1, Drift: drift, Jump: true, JumpTo: target}
	}

	switch {
	case drift > int64(c.cfg.DriftAheadTicks):
		c.rate = 1 - c.cfg.DriftNudge
	case -drift > int64(c.cfg.DriftBehindTicks):
		c.rate = 1 + c.cfg.DriftNudge
	default:
		c.rate = 1
	}
	return Correction{Rate: c.rate, Drift: drift}
}

// Reset 重连时调用：丢弃全部估计，下一次校正允许跳转
func (c *ClientClock) Reset() {
	c.hasServer = false
	c.hasRTT = false
	c.srtt = 0
	c.rate = 1
	c.acc = 0
	c.lastAdvance = time.Time{}
	c.forceJump = true
}
