package ai

import (
	"platformer/pkg/ai/bt"
	"platformer/pkg/core"
)

func condInDanger(board *Blackboard) bool {
	_, hit := board.Danger.IncomingProjectile(board.Self, threatHorizonTicks)
	return hit
}

// actDodge 跳起并背离子弹来向
func actDodge(board *Blackboard) bt.Status {
	from, hit := board.Danger.IncomingProjectile(board.Self, threatHorizonTicks)
	if !hit {
		return bt.StatusFailure
	}
	away := -from
	if away == 0 {
		away = 1
		if board.Self.Flags.Has(core.FlagFacingLeft) {
			away = -1
		}
	}
	steer(board, away)
	board.Next.Jump = canJump(board.Self)
	return bt.StatusRunning
}

func condLowHealth(board *Blackboard) bool {
	return board.Self.Health < board.Config.LowHealth
}

// actFindPickup 最近的可拾取血包
func actFindPickup(board *Blackboard) bt.Status {
	var best *core.Vec
	var bestDist core.Fixed
	for i := range board.World.Entities {
		e := &board.World.Entities[i]
		if e.Kind != core.KindPickup || e.Timer > 0 {
			continue
		}
		d := distance(board.Self.Pos, e.Pos)
		if best == nil || d < bestDist {
			pos := e.Pos
			best, bestDist = &pos, d
		}
	}
	if best == nil {
		return bt.StatusFailure
	}
	board.Goal = best
	return bt.StatusSuccess
}
