package server

import "platformer/pkg/core"

// Session 房间看到的一条客户端连接
// 除 DrainInputs 外的方法可以在任意 goroutine 调用
type Session interface {
	PlayerID() core.PlayerID
	SetPlayerID(id core.PlayerID)
	Send(data []byte) error
	Ack() *AckState
	// DrainInputs 取出接收队列中当前全部输入，只由房间循环调用
	DrainInputs(fn func(core.PlayerInput)) int
	CloseWithoutNotify()
}
