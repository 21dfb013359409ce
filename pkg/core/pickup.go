package core

// stepPickup 血包：被存活且未满血的玩家拾取后进入重生倒计时
func stepPickup(ctx *stepContext, e *Entity) {
	t := &ctx.sim.tuning
	if e.Timer > 0 {
		e.Timer--
		return
	}

	for i := range ctx.entities {
		p := &ctx.entities[i]
		if !p.Alive() || p.Health >= t.MaxHealth || !e.Overlaps(p) {
			continue
		}
		p.Health = min(t.MaxHealth, p.Health+t.PickupHeal)
		e.Timer = t.PickupRespawnTicks
		return
	}
}

// stepTrigger 静态区域，对区域内所有存活玩家生效
func stepTrigger(ctx *stepContext, e *Entity) {
	for i := range ctx.entities {
		p := &ctx.entities[i]
		if !p.Alive() || !e.Overlaps(p) {
			continue
		}
		switch e.Variant {
		case TriggerKill:
			kill(ctx, p)
		case TriggerBoost:
			p.Vel.Y = -ctx.sim.tuning.BoostImpulse
		}
	}
}
