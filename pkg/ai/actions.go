package ai

import (
	"platformer/pkg/ai/bt"
	"platformer/pkg/core"
)

// 连续多少个思考周期位置不变视为卡住
const stuckThinks = 3

// steer 朝 dir 移动：遇墙跳，遇坑或死亡区时停下或跳过去
func steer(board *Blackboard, dir int8) {
	board.Next.Move = dir
	if dir == 0 {
		return
	}

	self := board.Self
	switch {
	case wallAhead(board.Level, self.Pos, dir):
		board.Next.Jump = canJump(self)
	case !board.Danger.SafeStep(board.Level, self, dir):
		// 在地面上全速起跳可以越过窄坑；否则原地等待
		if self.Flags.Has(core.FlagGrounded) && self.Vel.X.Abs() >= core.FromInt(6) {
			board.Next.Jump = canJump(self)
		} else {
			board.Next.Move = 0
		}
	}
}

// canJump 跳跃是边沿触发，按住状态下需要先松开一次
func canJump(self core.Entity) bool {
	return !self.Flags.Has(core.FlagJumpHeld)
}

// climbToward 目标明显在上方时起跳
func climbToward(board *Blackboard, y core.Fixed) {
	if board.Self.Pos.Y-y > core.FromInt(jumpRisePx) {
		board.Next.Jump = board.Next.Jump || canJump(board.Self)
	}
}

// trackStuck 持续卡住时强制跳一次
func trackStuck(board *Blackboard) {
	if board.Next.Move != 0 && board.Self.Pos.X == board.LastX {
		board.StuckTicks++
	} else {
		board.StuckTicks = 0
	}
	board.LastX = board.Self.Pos.X
	if board.StuckTicks >= stuckThinks {
		board.Next.Jump = canJump(board.Self)
		board.StuckTicks = 0
	}
}

func actMoveToGoal(board *Blackboard) bt.Status {
	if board.Goal == nil {
		return bt.StatusFailure
	}
	dir := directionTo(board.Self.Pos.X, board.Goal.X, core.TileSize/4)
	steer(board, dir)
	climbToward(board, board.Goal.Y)
	return bt.StatusRunning
}
