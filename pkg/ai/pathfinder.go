package ai

import "platformer/pkg/core"

// 地形探测：平台跳跃没有网格寻路，机器人只看前方一格和脚下若干格

const (
	pitProbeTiles = 4  // 向下找落脚点的深度
	probeMarginPx = 4  // 前方探测点超出碰撞盒的距离
	jumpRisePx    = 48 // 目标高出该值时尝试跳跃
)

// tileOf 像素坐标所在格子（向下取整）
func tileOf(v core.Fixed) int {
	px := v.Int()
	if px < 0 {
		return (px - core.TileSize + 1) / core.TileSize
	}
	return px / core.TileSize
}

// aheadX 前方探测点的 x 坐标
func aheadX(pos core.Vec, dir int8) core.Fixed {
	offset := core.PlayerHalf + core.FromInt(probeMarginPx)
	if dir < 0 {
		return pos.X - offset
	}
	return pos.X + offset
}

// wallAhead 沿 dir 再走半格是否撞墙
func wallAhead(level *core.Level, pos core.Vec, dir int8) bool {
	if dir == 0 {
		return false
	}
	step := core.FromInt(core.TileSize / 2)
	if dir < 0 {
		step = -step
	}
	return level.BoxSolid(core.Vec{X: pos.X + step, Y: pos.Y}, core.PlayerHalf)
}

// floorAhead 前方一格下面 pitProbeTiles 格内是否有地面
func floorAhead(level *core.Level, pos core.Vec, dir int8) bool {
	tx := tileOf(aheadX(pos, dir))
	feet := tileOf(pos.Y + core.PlayerHalf)
	for ty := feet; ty <= feet+pitProbeTiles; ty++ {
		if level.TileAt(tx, ty) == core.TileSolid {
			return true
		}
	}
	return false
}

// directionTo 从 from 到 to 的水平方向，死区内返回 0
func directionTo(from, to core.Fixed, deadZonePx int) int8 {
	d := to - from
	switch {
	case d > core.FromInt(deadZonePx):
		return 1
	case d < -core.FromInt(deadZonePx):
		return -1
	default:
		return 0
	}
}

func distance(a, b core.Vec) core.Fixed {
	return b.Sub(a).Length()
}
