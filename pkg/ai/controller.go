// Package ai 服务器内置机器人：读取权威世界，产出与真人客户端相同的 Controls
package ai

import (
	"math/rand"

	"platformer/pkg/ai/bt"
	"platformer/pkg/core"
)

type Controller struct {
	PlayerID core.PlayerID
	rnd      *rand.Rand
	config   *BotConfig

	thinkCounter int
	cached       core.Controls

	blackboard Blackboard
	tree       bt.Node[*Blackboard]
	danger     DangerField
}

// NewController 普通难度的机器人；seed 相同则决策序列相同
func NewController(playerID core.PlayerID, level *core.Level, seed int64) *Controller {
	return NewControllerWithConfig(playerID, level, seed, &BotConfigNormal)
}

// NewControllerWithConfig 使用指定配置创建机器人
func NewControllerWithConfig(playerID core.PlayerID, level *core.Level, seed int64, config *BotConfig) *Controller {
	if config == nil {
		config = &BotConfigNormal
	}
	rnd := rand.New(rand.NewSource(seed + int64(playerID)))

	c := &Controller{
		PlayerID:     playerID,
		rnd:          rnd,
		config:       config,
		thinkCounter: config.ThinkIntervalTicks, // 第一次调用立即思考
	}
	c.blackboard = Blackboard{
		Level:  level,
		RNG:    rnd,
		Danger: &c.danger,
		Config: config,
	}

	type node = bt.Node[*Blackboard]
	c.tree = &bt.Selector[*Blackboard]{Children: []node{
		&bt.Sequence[*Blackboard]{Children: []node{
			&bt.Condition[*Blackboard]{Check: condInDanger},
			&bt.Action[*Blackboard]{Do: actDodge},
		}},
		&bt.Sequence[*Blackboard]{Children: []node{
			&bt.Condition[*Blackboard]{Check: condLowHealth},
			&bt.Action[*Blackboard]{Do: actFindPickup},
			&bt.Action[*Blackboard]{Do: actMoveToGoal},
		}},
		&bt.Sequence[*Blackboard]{Children: []node{
			&bt.Action[*Blackboard]{Do: actFindTarget},
			&bt.Action[*Blackboard]{Do: actApproach},
			&bt.Action[*Blackboard]{Do: actAimFire},
		}},
		&bt.Action[*Blackboard]{Do: actWander},
	}}
	return c
}

// Decide 为下一个 tick 产生操作
func (c *Controller) Decide(world *core.WorldState) core.Controls {
	self, ok := world.PlayerEntity(c.PlayerID)
	if !ok || !self.Alive() {
		c.cached = core.Controls{}
		return c.cached
	}

	bb := &c.blackboard
	bb.ResetTick(world, self)
	c.danger.Update(world, c.PlayerID)

	_, inDanger := c.danger.IncomingProjectile(self, threatHorizonTicks)
	force := (inDanger && !bb.LastInDanger) || self.Health < bb.LastHealth
	bb.LastInDanger = inDanger
	bb.LastHealth = self.Health

	c.thinkCounter++
	if !force && c.thinkCounter < c.config.ThinkIntervalTicks {
		// 两次思考之间沿用上次的移动，不重复开火
		return core.DefaultControls(c.cached)
	}

	bb.ForceThink = force
	c.thinkCounter = 0
	_ = c.tree.Tick(bb)
	trackStuck(bb)

	if c.config.MistakeRate > 0 && c.rnd.Float64() < c.config.MistakeRate {
		switch c.rnd.Intn(3) {
		case 0:
			bb.Next = core.Controls{}
		case 1:
			bb.Next.Move = int8(c.rnd.Intn(3) - 1)
		case 2:
			bb.Next.Fire = false
		}
	}

	c.cached = bb.Next.Sanitize()
	return c.cached
}

// Config 当前配置
func (c *Controller) Config() *BotConfig {
	return c.config
}

// SetConfig 切换难度
func (c *Controller) SetConfig(config *BotConfig) {
	if config == nil {
		return
	}
	c.config = config
	c.blackboard.Config = config
}
