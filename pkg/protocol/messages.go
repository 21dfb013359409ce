package protocol

import "platformer/pkg/core"

// Hello 客户端加入请求；SessionToken 非空表示重连
type Hello struct {
	Name         string
	SessionToken string
}

// Welcome 服务器接受加入
type Welcome struct {
	PlayerID         core.PlayerID
	SessionToken     string
	TickRate         uint32 // 每秒 tick 数
	ServerTick       core.Tick
	SnapshotInterval uint32
	Reconnected      bool
}

// Reject 服务器拒绝加入
type Reject struct {
	Reason string
}

// InputBatch 客户端输入包：本 tick 的输入加上最近未确认的若干输入（冗余抗丢包），
// 同时捎带客户端已应用的最新快照 tick 作为确认
type InputBatch struct {
	Seq     uint32
	AckTick core.Tick
	HasAck  bool
	Inputs  []core.PlayerInput
}

// SnapshotFrame 服务器快照包
type SnapshotFrame struct {
	ServerTick  core.Tick
	InputAck    core.Tick // 服务器收到的该客户端最新输入 tick
	HasInputAck bool
	Snapshot    []byte // snapshot.Marshal 的结果
}

// FullSnapshotRequest 客户端缺少基线，请求完整快照
type FullSnapshotRequest struct {
	LastTick core.Tick
}

// Ping 心跳
type Ping struct {
	SentAt int64 // 发送方 UnixMilli
}

// Pong 心跳回应，原样带回 SentAt
type Pong struct {
	SentAt     int64
	ServerTick core.Tick
}
