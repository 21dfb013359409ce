package server

import "platformer/pkg/protocol"

type EventKind int

const (
	EventUnknown EventKind = iota
	EventHello
	EventInput
	EventFullSnapshotRequest
	EventPing
	EventPong
	EventLeave
)

type ServerEvent struct {
	Kind        EventKind
	Hello       *protocol.Hello
	Input       *protocol.InputBatch
	FullRequest *protocol.FullSnapshotRequest
	Ping        *protocol.Ping
	Pong        *protocol.Pong
}
