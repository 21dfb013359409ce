package ai

import (
	"math/rand"

	"platformer/pkg/core"
)

type Blackboard struct {
	World  *core.WorldState
	Level  *core.Level
	Self   core.Entity
	RNG    *rand.Rand
	Danger *DangerField
	Config *BotConfig

	Target     *core.Entity // 当前追击的敌人
	Goal       *core.Vec    // 当前移动目标（血包等）
	Next       core.Controls
	ForceThink bool

	LastInDanger bool
	LastHealth   int32

	// 游荡方向：保持一段时间减少抖动
	WanderDirection int8
	WanderTicks     int

	// 卡住检测
	LastX      core.Fixed
	StuckTicks int
}

// ResetTick 每次思考前刷新世界视图
// 游荡与卡住状态跨 tick 保留
func (bb *Blackboard) ResetTick(world *core.WorldState, self core.Entity) {
	bb.World = world
	bb.Self = self
	bb.Target = nil
	bb.Goal = nil
	bb.Next = core.Controls{}
	bb.ForceThink = false
}
