package ai

import "platformer/pkg/ai/bt"

// 游荡方向持续 tick 数，约 1 秒
const wanderDirectionTicks = 50

func actWander(board *Blackboard) bt.Status {
	if board.RNG == nil {
		return bt.StatusFailure
	}

	if board.WanderTicks > 0 && board.WanderDirection != 0 {
		board.WanderTicks -= board.Config.ThinkIntervalTicks
		if board.Danger.SafeStep(board.Level, board.Self, board.WanderDirection) {
			steer(board, board.WanderDirection)
			return bt.StatusRunning
		}
		// 前方不安全，掉头
		board.WanderDirection = -board.WanderDirection
		board.WanderTicks = wanderDirectionTicks
		steer(board, board.WanderDirection)
		return bt.StatusRunning
	}

	board.WanderDirection = 1
	if board.RNG.Intn(2) == 0 {
		board.WanderDirection = -1
	}
	board.WanderTicks = wanderDirectionTicks
	steer(board, board.WanderDirection)
	return bt.StatusRunning
}
