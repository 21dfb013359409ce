package core

// stepProjectile 子弹飞行，撞墙或命中玩家后移除
func stepProjectile(ctx *stepContext, e *Entity) {
	t := &ctx.sim.tuning

	e.Timer--
	if e.Timer <= 0 {
		e.Flags |= flagRemoved
		return
	}

	e.Vel.Y += t.ProjectileGravity
	moved := ctx.sim.level.MoveBox(e.Pos, e.Vel, ProjectileHalf)
	e.Pos = moved.Pos
	if moved.HitX || moved.HitY || e.Pos.Y > ctx.sim.level.KillY() {
		e.Flags |= flagRemoved
		return
	}

	for i := range ctx.entities {
		target := &ctx.entities[i]
		if !target.Alive() || target.Owner == e.Owner || !e.Overlaps(target) {
			continue
		}
		damage(ctx, target, t.ProjectileDamage)
		e.Flags |= flagRemoved
		return
	}
}
