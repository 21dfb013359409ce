package protocol

import (
	platformerv1 "platformer/api/gen/platformer/v1"
	"platformer/pkg/core"
)

// ========== 输入 ==========

// InputToProto core.PlayerInput -> InputData（玩家 ID 由连接确定，不上传）
func InputToProto(in core.PlayerInput) *platformerv1.InputData {
	return &platformerv1.InputData{
		Tick: uint32(in.Tick),
		Move: int32(in.Move),
		Jump: in.Jump,
		Fire: in.Fire,
		AimX: int32(in.Aim.X),
		AimY: int32(in.Aim.Y),
	}
}

// ProtoToInput InputData -> core.PlayerInput，Controls 经过 Sanitize
func ProtoToInput(pb *platformerv1.InputData) core.PlayerInput {
	in := core.PlayerInput{
		Tick: core.Tick(pb.GetTick()),
		Controls: core.Controls{
			Move: clampMove(pb.GetMove()),
			Jump: pb.GetJump(),
			Fire: pb.GetFire(),
			Aim:  core.Vec{X: core.Fixed(pb.GetAimX()), Y: core.Fixed(pb.GetAimY())},
		},
	}
	in.Controls = in.Controls.Sanitize()
	return in
}

// clampMove 截断到 int8 前先限幅，避免溢出后符号翻转
func clampMove(v int32) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ========== 批量输入 ==========

func InputBatchToProto(batch *InputBatch) *platformerv1.InputBatch {
	pb := &platformerv1.InputBatch{
		Seq:    batch.Seq,
		Inputs: make([]*platformerv1.InputData, 0, len(batch.Inputs)),
	}
	if batch.HasAck {
		pb.AckTick = uint32(batch.AckTick)
		pb.HasAck = true
	}
	for _, in := range batch.Inputs {
		pb.Inputs = append(pb.Inputs, InputToProto(in))
	}
	return pb
}

func ProtoToInputBatch(pb *platformerv1.InputBatch) *InputBatch {
	batch := &InputBatch{
		Seq:     pb.GetSeq(),
		AckTick: core.Tick(pb.GetAckTick()),
		HasAck:  pb.GetHasAck(),
		Inputs:  make([]core.PlayerInput, 0, len(pb.GetInputs())),
	}
	for _, in := range pb.GetInputs() {
		batch.Inputs = append(batch.Inputs, ProtoToInput(in))
	}
	return batch
}

// ========== 服务器消息 ==========

func WelcomeToProto(msg *Welcome) *platformerv1.Welcome {
	return &platformerv1.Welcome{
		PlayerId:         uint32(msg.PlayerID),
		SessionToken:     msg.SessionToken,
		TickRate:         msg.TickRate,
		ServerTick:       uint32(msg.ServerTick),
		SnapshotInterval: msg.SnapshotInterval,
		Reconnected:      msg.Reconnected,
	}
}

func ProtoToWelcome(pb *platformerv1.Welcome) *Welcome {
	return &Welcome{
		PlayerID:         core.PlayerID(pb.GetPlayerId()),
		SessionToken:     pb.GetSessionToken(),
		TickRate:         pb.GetTickRate(),
		ServerTick:       core.Tick(pb.GetServerTick()),
		SnapshotInterval: pb.GetSnapshotInterval(),
		Reconnected:      pb.GetReconnected(),
	}
}

func SnapshotFrameToProto(frame *SnapshotFrame) *platformerv1.SnapshotFrame {
	pb := &platformerv1.SnapshotFrame{
		ServerTick: uint32(frame.ServerTick),
		Snapshot:   frame.Snapshot,
	}
	if frame.HasInputAck {
		pb.InputAck = uint32(frame.InputAck)
		pb.HasInputAck = true
	}
	return pb
}

func ProtoToSnapshotFrame(pb *platformerv1.SnapshotFrame) *SnapshotFrame {
	return &SnapshotFrame{
		ServerTick:  core.Tick(pb.GetServerTick()),
		InputAck:    core.Tick(pb.GetInputAck()),
		HasInputAck: pb.GetHasInputAck(),
		Snapshot:    pb.GetSnapshot(),
	}
}
