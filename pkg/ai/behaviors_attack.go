package ai

import (
	"platformer/pkg/ai/bt"
	"platformer/pkg/core"
)

// 追击时与目标保持的水平距离
const keepDistancePx = 96

// actFindTarget 最近的存活敌人
func actFindTarget(board *Blackboard) bt.Status {
	var bestDist core.Fixed
	for i := range board.World.Entities {
		e := &board.World.Entities[i]
		if !e.Alive() || e.Owner == board.Self.Owner {
			continue
		}
		d := distance(board.Self.Pos, e.Pos)
		if board.Target == nil || d < bestDist {
			target := *e
			board.Target, bestDist = &target, d
		}
	}
	if board.Target == nil {
		return bt.StatusFailure
	}
	return bt.StatusSuccess
}

// actApproach 接近到开火距离内，太近时后退
func actApproach(board *Blackboard) bt.Status {
	if board.Target == nil {
		return bt.StatusFailure
	}
	self, target := board.Self, board.Target

	dir := directionTo(self.Pos.X, target.Pos.X, keepDistancePx)
	if dir == 0 && (target.Pos.X-self.Pos.X).Abs() < core.FromInt(keepDistancePx/2) {
		dir = -directionTo(self.Pos.X, target.Pos.X, 0)
	}
	steer(board, dir)
	climbToward(board, target.Pos.Y)
	return bt.StatusSuccess
}

// actAimFire 目标在射程内且冷却结束时开火
func actAimFire(board *Blackboard) bt.Status {
	if board.Target == nil {
		return bt.StatusFailure
	}
	self, target := board.Self, board.Target

	aim := target.Pos.Sub(self.Pos)
	if j := board.Config.AimJitterPx; j > 0 {
		aim = aim.Add(core.V(board.RNG.Intn(2*j+1)-j, board.RNG.Intn(2*j+1)-j))
	}
	board.Next.Aim = aim

	inRange := distance(self.Pos, target.Pos) <= core.FromInt(board.Config.FireRangePx)
	board.Next.Fire = inRange && self.Timer == 0
	return bt.StatusRunning
}
