package server

import (
	"testing"
	"time"

	"platformer/internal/transport"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/snapshot"
)

// readUntil 读取数据包直到 match 返回 true
func readUntil(t *testing.T, conn transport.Conn, match func(*protocol.Packet) bool) *protocol.Packet {
	t.Helper()
	found := make(chan *protocol.Packet, 1)
	go func() {
		for {
			data, err := conn.ReadPacket()
			if err != nil {
				close(found)
				return
			}
			pkt, err := protocol.UnmarshalPacket(data)
			if err == nil && match(pkt) {
				found <- pkt
				return
			}
		}
	}()

	select {
	case pkt, ok := <-found:
		if !ok {
			t.Fatal("连接在收到期望消息前关闭")
		}
		return pkt
	case <-time.After(3 * time.Second):
		t.Fatal("等待消息超时")
		return nil
	}
}

func mustEncode(pkt *protocol.Packet, err error) []byte {
	data, err := protocol.Encode(pkt, err)
	if err != nil {
		panic(err)
	}
	return data
}

func isType(typ protocol.MessageType) func(*protocol.Packet) bool {
	return func(pkt *protocol.Packet) bool { return pkt.Type == typ }
}

func TestServerEndToEnd(t *testing.T) {
	srv := NewGameServer(testConfig(), nil, nil)
	ln := transport.NewMemoryListener(256)
	srv.Serve(ln)
	defer srv.Shutdown()

	conn, err := ln.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := conn.WritePacket(mustEncode(protocol.NewHelloPacket("zoe", ""))); err != nil {
		t.Fatalf("发送 Hello: %v", err)
	}

	welcome, err := protocol.ParseWelcome(readUntil(t, conn, isType(protocol.MessageWelcome)))
	if err != nil {
		t.Fatalf("ParseWelcome: %v", err)
	}
	if welcome.PlayerID == 0 || welcome.TickRate != 50 {
		t.Fatalf("Welcome = %+v", welcome)
	}

	// 第一个快照为完整快照，且玩家最终出现在世界中
	var tracker = snapshot.NewTracker(100)
	for {
		frame, err := protocol.ParseSnapshot(readUntil(t, conn, isType(protocol.MessageSnapshot)))
		if err != nil {
			t.Fatalf("ParseSnapshot: %v", err)
		}
		snap, err := snapshot.Unmarshal(frame.Snapshot)
		if err != nil {
			t.Fatalf("snapshot.Unmarshal: %v", err)
		}
		world, err := tracker.Accept(snap)
		if err != nil {
			t.Fatalf("Accept: %v", err)
		}
		if _, ok := world.PlayerEntity(welcome.PlayerID); ok {
			break
		}
	}

	// 发送输入并确认，服务器回报收到的最新输入 tick
	latest, _ := tracker.LatestTick()
	batch := &protocol.InputBatch{
		Seq:     1,
		AckTick: latest,
		HasAck:  true,
		Inputs: []core.PlayerInput{
			{Tick: latest + 20, Controls: core.Controls{Move: 1}},
		},
	}
	if err := conn.WritePacket(mustEncode(protocol.NewInputPacket(batch))); err != nil {
		t.Fatalf("发送输入: %v", err)
	}
	readUntil(t, conn, func(pkt *protocol.Packet) bool {
		if pkt.Type != protocol.MessageSnapshot {
			return false
		}
		frame, err := protocol.ParseSnapshot(pkt)
		return err == nil && frame.HasInputAck && frame.InputAck == latest+20
	})

	// Ping 得到带服务器 tick 的 Pong
	if err := conn.WritePacket(mustEncode(protocol.NewPingPacket(12345))); err != nil {
		t.Fatalf("发送 Ping: %v", err)
	}
	pong, err := protocol.ParsePong(readUntil(t, conn, isType(protocol.MessagePong)))
	if err != nil {
		t.Fatalf("ParsePong: %v", err)
	}
	if pong.SentAt != 12345 || pong.ServerTick < latest {
		t.Fatalf("Pong = %+v", pong)
	}
}

func TestServerRejectsBadToken(t *testing.T) {
	srv := NewGameServer(testConfig(), nil, nil)
	ln := transport.NewMemoryListener(256)
	srv.Serve(ln)
	defer srv.Shutdown()

	conn, err := ln.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := conn.WritePacket(mustEncode(protocol.NewHelloPacket("mallory", "forged"))); err != nil {
		t.Fatal(err)
	}
	reject, err := protocol.ParseReject(readUntil(t, conn, isType(protocol.MessageReject)))
	if err != nil {
		t.Fatalf("ParseReject: %v", err)
	}
	if reject.Reason == "" {
		t.Fatal("拒绝原因为空")
	}
}
