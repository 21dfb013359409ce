package protocol

import (
	platformerv1 "platformer/api/gen/platformer/v1"
	"platformer/pkg/core"
)

// ========== 客户端消息构造 ==========

// NewHelloPacket 构造加入请求
func NewHelloPacket(name, sessionToken string) (*Packet, error) {
	return newPacket(MessageHello, &platformerv1.Hello{
		Name:         name,
		SessionToken: sessionToken,
	})
}

// NewInputPacket 构造输入包
func NewInputPacket(batch *InputBatch) (*Packet, error) {
	return newPacket(MessageInput, InputBatchToProto(batch))
}

// NewFullSnapshotRequestPacket 构造完整快照请求
func NewFullSnapshotRequestPacket(lastTick core.Tick) (*Packet, error) {
	return newPacket(MessageFullSnapshotRequest, &platformerv1.FullSnapshotRequest{
		LastTick: uint32(lastTick),
	})
}

// NewPingPacket 构造心跳
func NewPingPacket(sentAt int64) (*Packet, error) {
	return newPacket(MessagePing, &platformerv1.Ping{SentAt: sentAt})
}

// NewLeavePacket 构造主动离开
func NewLeavePacket() (*Packet, error) {
	return newPacket(MessageLeave, &platformerv1.Leave{})
}

// ========== 服务器消息构造 ==========

// NewWelcomePacket 构造加入响应
func NewWelcomePacket(msg *Welcome) (*Packet, error) {
	return newPacket(MessageWelcome, WelcomeToProto(msg))
}

// NewRejectPacket 构造拒绝消息
func NewRejectPacket(reason string) (*Packet, error) {
	return newPacket(MessageReject, &platformerv1.Reject{Reason: reason})
}

// NewSnapshotPacket 构造快照包
func NewSnapshotPacket(frame *SnapshotFrame) (*Packet, error) {
	return newPacket(MessageSnapshot, SnapshotFrameToProto(frame))
}

// NewPongPacket 构造心跳回应
func NewPongPacket(sentAt int64, serverTick core.Tick) (*Packet, error) {
	return newPacket(MessagePong, &platformerv1.Pong{
		SentAt:     sentAt,
		ServerTick: uint32(serverTick),
	})
}

// ========== 解析 ==========

func ParseHello(pkt *Packet) (*Hello, error) {
	pb := &platformerv1.Hello{}
	if err := parsePayload(pkt, MessageHello, pb); err != nil {
		return nil, err
	}
	return &Hello{Name: pb.GetName(), SessionToken: pb.GetSessionToken()}, nil
}

func ParseWelcome(pkt *Packet) (*Welcome, error) {
	pb := &platformerv1.Welcome{}
	if err := parsePayload(pkt, MessageWelcome, pb); err != nil {
		return nil, err
	}
	return ProtoToWelcome(pb), nil
}

func ParseReject(pkt *Packet) (*Reject, error) {
	pb := &platformerv1.Reject{}
	if err := parsePayload(pkt, MessageReject, pb); err != nil {
		return nil, err
	}
	return &Reject{Reason: pb.GetReason()}, nil
}

func ParseInput(pkt *Packet) (*InputBatch, error) {
	pb := &platformerv1.InputBatch{}
	if err := parsePayload(pkt, MessageInput, pb); err != nil {
		return nil, err
	}
	return ProtoToInputBatch(pb), nil
}

func ParseSnapshot(pkt *Packet) (*SnapshotFrame, error) {
	pb := &platformerv1.SnapshotFrame{}
	if err := parsePayload(pkt, MessageSnapshot, pb); err != nil {
		return nil, err
	}
	return ProtoToSnapshotFrame(pb), nil
}

func ParseFullSnapshotRequest(pkt *Packet) (*FullSnapshotRequest, error) {
	pb := &platformerv1.FullSnapshotRequest{}
	if err := parsePayload(pkt, MessageFullSnapshotRequest, pb); err != nil {
		return nil, err
	}
	return &FullSnapshotRequest{LastTick: core.Tick(pb.GetLastTick())}, nil
}

func ParsePing(pkt *Packet) (*Ping, error) {
	pb := &platformerv1.Ping{}
	if err := parsePayload(pkt, MessagePing, pb); err != nil {
		return nil, err
	}
	return &Ping{SentAt: pb.GetSentAt()}, nil
}

func ParsePong(pkt *Packet) (*Pong, error) {
	pb := &platformerv1.Pong{}
	if err := parsePayload(pkt, MessagePong, pb); err != nil {
		return nil, err
	}
	return &Pong{SentAt: pb.GetSentAt(), ServerTick: core.Tick(pb.GetServerTick())}, nil
}
