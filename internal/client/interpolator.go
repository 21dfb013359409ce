package client

import (
	"math"

	"platformer/pkg/core"
)

// RenderEntity 渲染用的实体，坐标为像素
type RenderEntity struct {
	ID      core.EntityID
	Kind    core.Kind
	Owner   core.PlayerID
	X, Y    float64
	Flags   core.Flags
	Health  int32
	Variant uint8

	Extrapolated bool
}

func renderEntity(e core.Entity) RenderEntity {
	return RenderEntity{
		ID:      e.ID,
		Kind:    e.Kind,
		Owner:   e.Owner,
		X:       e.Pos.X.Float(),
		Y:       e.Pos.Y.Float(),
		Flags:   e.Flags,
		Health:  e.Health,
		Variant: e.Variant,
	}
}

// Interpolator 远端实体插值与航位推测
// 缓冲最近的权威世界，按渲染 tick 在两侧快照之间插值
type Interpolator struct {
	buffer           []*core.WorldState
	maxExtrapolation float64
	snapThreshold    float64
}

// NewInterpolator maxExtrapolationTicks 之后停止推测；位移超过 snapThresholdPx 视为传送不插值
func NewInterpolator(maxExtrapolationTicks int, snapThresholdPx float64) *Interpolator {
	return &Interpolator{
		buffer:           make([]*core.WorldState, 0, InterpolationBufferSize),
		maxExtrapolation: float64(maxExtrapolationTicks),
		snapThreshold:    snapThresholdPx,
	}
}

// Add 添加权威世界，不比最新的新则忽略
func (ip *Interpolator) Add(w *core.WorldState) {
	if n := len(ip.buffer); n > 0 && w.Tick <= ip.buffer[n-1].Tick {
		return
	}
	ip.buffer = append(ip.buffer, w)
	if len(ip.buffer) > InterpolationBufferSize {
		ip.buffer = ip.buffer[len(ip.buffer)-InterpolationBufferSize:]
	}
}

func (ip *Interpolator) Reset() {
	ip.buffer = ip.buffer[:0]
}

// Len 缓冲的快照数
func (ip *Interpolator) Len() int {
	return len(ip.buffer)
}

// Sample 计算渲染 tick 时刻的实体
func (ip *Interpolator) Sample(renderTick float64) []RenderEntity {
	if len(ip.buffer) == 0 {
		return nil
	}

	first := ip.buffer[0]
	if renderTick <= float64(first.Tick) {
		return entitiesOf(first)
	}

	// 在缓冲区中找到 renderTick 两侧的快照
	for i := 0; i < len(ip.buffer)-1; i++ {
		prev, next := ip.buffer[i], ip.buffer[i+1]
		if float64(prev.Tick) <= renderTick && float64(next.Tick) >= renderTick {
			alpha := (renderTick - float64(prev.Tick)) / float64(next.Tick-prev.Tick)
			out := ip.interpolate(prev, next, alpha)
			ip.cleanup(i)
			return out
		}
	}

	// 渲染时间超出缓冲区，使用航位推测
	return ip.extrapolate(renderTick)
}

func (ip *Interpolator) interpolate(prev, next *core.WorldState, alpha float64) []RenderEntity {
	out := make([]RenderEntity, 0, len(next.Entities))
	for _, e := range next.Entities {
		re := renderEntity(e)
		if old, ok := prev.Find(e.ID); ok {
			ox, oy := old.Pos.X.Float(), old.Pos.Y.Float()
			if math.Hypot(re.X-ox, re.Y-oy) <= ip.snapThreshold {
				re.X = ox + (re.X-ox)*alpha
				re.Y = oy + (re.Y-oy)*alpha
			}
		}
		out = append(out, re)
	}
	return out
}

func (ip *Interpolator) extrapolate(renderTick float64) []RenderEntity {
	last := ip.buffer[len(ip.buffer)-1]
	ahead := math.Min(renderTick-float64(last.Tick), ip.maxExtrapolation)

	var prev *core.WorldState
	if n := len(ip.buffer); n > 1 {
		prev = ip.buffer[n-2]
	}

	out := make([]RenderEntity, 0, len(last.Entities))
	for _, e := range last.Entities {
		re := renderEntity(e)
		// 速度取最近两个快照的位移，只有一个快照时用模拟速度
		vx, vy := e.Vel.X.Float(), e.Vel.Y.Float()
		if prev != nil {
			if old, ok := prev.Find(e.ID); ok {
				span := float64(last.Tick - prev.Tick)
				vx = (re.X - old.Pos.X.Float()) / span
				vy = (re.Y - old.Pos.Y.Float()) / span
				if math.Hypot(vx, vy)*span > ip.snapThreshold {
					vx, vy = 0, 0
				}
			}
		}
		re.X += vx * ahead
		re.Y += vy * ahead
		re.Extrapolated = ahead > 0
		out = append(out, re)
	}
	return out
}

// cleanup 保留用于插值的 prev 及之后的快照
func (ip *Interpolator) cleanup(cutoff int) {
	if cutoff > 0 {
		ip.buffer = append(ip.buffer[:0], ip.buffer[cutoff:]...)
	}
}

func entitiesOf(w *core.WorldState) []RenderEntity {
	out := make([]RenderEntity, 0, len(w.Entities))
	for _, e := range w.Entities {
		out = append(out, renderEntity(e))
	}
	return out
}
