package ai

import "platformer/pkg/core"

// DangerField 当前 tick 对机器人有威胁的实体
type DangerField struct {
	killZones []core.Entity
	threats   []core.Entity
}

// 预测子弹轨迹的 tick 数
const threatHorizonTicks = 12

// Update 收集死亡区和不属于 self 的子弹
func (df *DangerField) Update(world *core.WorldState, self core.PlayerID) {
	df.killZones = df.killZones[:0]
	df.threats = df.threats[:0]
	for _, e := range world.Entities {
		switch {
		case e.Kind == core.KindTrigger && e.Variant == core.TriggerKill:
			df.killZones = append(df.killZones, e)
		case e.Kind == core.KindProjectile && e.Owner != self:
			df.threats = append(df.threats, e)
		}
	}
}

// IncomingProjectile 是否有子弹会在 horizon 个 tick 内击中 self（按匀速直线估计）
// 命中时返回子弹的水平来向
func (df *DangerField) IncomingProjectile(self core.Entity, horizon int) (int8, bool) {
	reach := core.PlayerHalf + core.ProjectileHalf
	for _, p := range df.threats {
		pos := p.Pos
		for t := 0; t < horizon; t++ {
			pos = pos.Add(p.Vel)
			if (pos.X-self.Pos.X).Abs() < reach && (pos.Y-self.Pos.Y).Abs() < reach {
				return directionTo(self.Pos.X, p.Pos.X, 0), true
			}
		}
	}
	return 0, false
}

// KillZoneAhead 沿 dir 前进一格后是否进入死亡区（包括下方两格）
func (df *DangerField) KillZoneAhead(self core.Entity, dir int8) bool {
	if dir == 0 {
		return false
	}
	probe := core.Vec{X: aheadX(self.Pos, dir), Y: self.Pos.Y}
	reach := core.PlayerHalf + core.TriggerHalf
	depth := core.FromInt(2 * core.TileSize)
	for _, z := range df.killZones {
		dx := (z.Pos.X - probe.X).Abs()
		dy := z.Pos.Y - probe.Y
		if dx < reach && dy > -reach && dy < depth+reach {
			return true
		}
	}
	return false
}

// SafeStep 沿 dir 走一步是否安全（不掉坑、不进死亡区）
func (df *DangerField) SafeStep(level *core.Level, self core.Entity, dir int8) bool {
	if dir == 0 {
		return true
	}
	return floorAhead(level, self.Pos, dir) && !df.KillZoneAhead(self, dir)
}
