package core

// stepPlayer 玩家物理：重力、地面/空中控制、二段跳、开火
func stepPlayer(ctx *stepContext, e *Entity) {
	t := &ctx.sim.tuning
	level := ctx.sim.level

	if e.Flags.Has(FlagDead) {
		e.Timer--
		if e.Timer <= 0 {
			respawn(ctx, e)
		}
		return
	}

	controls := DefaultControls(e.Last)
	if in, ok := ctx.inputs[e.Owner]; ok {
		controls = in.Controls.Sanitize()
	}
	e.Last = controls

	grounded := level.Grounded(e.Pos, PlayerHalf)
	e.Flags.set(FlagGrounded, grounded)

	e.Vel.Y += t.Gravity

	maxSpeed, accel, friction := t.AirControlSpeed, t.AirControlAccel, t.AirFriction
	if grounded {
		maxSpeed, accel, friction = t.GroundControlSpeed, t.GroundControlAccel, t.GroundFriction
	}
	switch {
	case controls.Move < 0:
		e.Vel.X = SaturatedAdd(-maxSpeed, maxSpeed, e.Vel.X, -accel)
		e.Flags.set(FlagFacingLeft, true)
	case controls.Move > 0:
		e.Vel.X = SaturatedAdd(-maxSpeed, maxSpeed, e.Vel.X, accel)
		e.Flags.set(FlagFacingLeft, false)
	default:
		e.Vel.X = e.Vel.X.Mul(friction)
	}

	if controls.Jump {
		if !e.Flags.Has(FlagJumpHeld) {
			if grounded {
				e.Vel.Y = -t.GroundJumpImpulse
				e.Flags |= FlagJumpHeld
			} else if !e.Flags.Has(FlagAirJumped) {
				e.Vel.Y = -t.AirJumpImpulse
				e.Flags |= FlagJumpHeld | FlagAirJumped
			}
		}
	} else {
		e.Flags &^= FlagJumpHeld
	}
	if grounded {
		e.Flags &^= FlagAirJumped
	}

	e.Vel.X = Clamp(e.Vel.X, -t.MaxVelocity, t.MaxVelocity)
	e.Vel.Y = Clamp(e.Vel.Y, -t.MaxVelocity, t.MaxVelocity)

	moved := level.MoveBox(e.Pos, e.Vel, PlayerHalf)
	e.Pos, e.Vel = moved.Pos, moved.Vel

	if e.Pos.Y > level.KillY() {
		kill(ctx, e)
		return
	}

	if e.Timer > 0 {
		e.Timer--
	}
	if controls.Fire && e.Timer == 0 {
		fire(ctx, e, controls.Aim)
		e.Timer = t.FireCooldown
	}
}

// fire 沿瞄准方向发射子弹，没有瞄准时沿朝向
func fire(ctx *stepContext, e *Entity, aim Vec) {
	t := &ctx.sim.tuning
	dir := aim.Normalize()
	if dir.IsZero() {
		dir = Vec{X: FixedOne}
		if e.Flags.Has(FlagFacingLeft) {
			dir.X = -FixedOne
		}
	}
	ctx.spawn(Entity{
		Kind:  KindProjectile,
		Owner: e.Owner,
		Pos:   e.Pos.Add(dir.Scale(PlayerHalf)),
		Vel:   dir.Scale(t.ProjectileSpeed),
		Timer: t.ProjectileLifetime,
	})
}

// damage 扣血，归零则死亡
func damage(ctx *stepContext, e *Entity, amount int32) {
	e.Health -= amount
	if e.Health <= 0 {
		kill(ctx, e)
	}
}

func kill(ctx *stepContext, e *Entity) {
	e.Flags = FlagDead
	e.Vel = Vec{}
	e.Health = 0
	e.Timer = ctx.sim.tuning.RespawnTicks
}

// respawn 由确定性随机数挑选出生点
func respawn(ctx *stepContext, e *Entity) {
	spawns := ctx.sim.level.Spawns
	e.Pos = spawns[ctx.random()%uint64(len(spawns))]
	e.Vel = Vec{}
	e.Flags = 0
	e.Health = ctx.sim.tuning.MaxHealth
	e.Timer = 0
}
