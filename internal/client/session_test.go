package client

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"platformer/internal/config"
	"platformer/internal/server"
	"platformer/internal/transport"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/snapshot"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Net.JWTSecret = "test-secret"
	return cfg
}

// runUntil 驱动 Update 直到 cond 成立
func runUntil(t *testing.T, s *Session, what string, cond func(RenderView) bool) RenderView {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Update(time.Now())
		if view := s.LatestRenderView(); cond(view) {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("等待%s超时, 状态 %s", what, s.State())
	return RenderView{}
}

func startServer(t *testing.T, cfg config.Config) *transport.MemoryListener {
	t.Helper()
	srv := server.NewGameServer(cfg, nil, nil)
	ln := transport.NewMemoryListener(256)
	srv.Serve(ln)
	t.Cleanup(srv.Shutdown)
	return ln
}

func TestSessionPredictsAgainstServer(t *testing.T) {
	cfg := testConfig()
	ln := startServer(t, cfg)

	net := NewNetworkClientWithDialer(ln.Dial, "ada")
	s := NewSession(cfg, core.DefaultLevel(), net)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	s.SubmitInput(core.Controls{Move: 1})
	view := runUntil(t, s, "本地玩家出现", func(v RenderView) bool {
		return v.State == StatePlaying && v.Local != nil
	})
	if view.LocalID != net.PlayerID() || view.LocalID == 0 {
		t.Fatalf("LocalID = %d, want %d", view.LocalID, net.PlayerID())
	}

	// 预测领先于已确认的权威 tick，且输入被服务器确认
	runUntil(t, s, "输入确认", func(RenderView) bool {
		confirmed, ok := s.Predictor().Confirmed()
		return ok && s.Predictor().Predicted() > confirmed && s.hasInputAck
	})
}

func TestSessionReconnectKeepsPlayer(t *testing.T) {
	cfg := testConfig()
	ln := startServer(t, cfg)

	net := NewNetworkClientWithDialer(ln.Dial, "ada")
	s := NewSession(cfg, core.DefaultLevel(), net)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	runUntil(t, s, "同步", func(v RenderView) bool { return v.State == StatePlaying })
	pid := net.PlayerID()

	// 模拟连接断开
	_ = net.conn.Close()
	runUntil(t, s, "开始重连", func(v RenderView) bool { return v.State == StateReconnecting })

	s.reconnectAt = time.Now()
	runUntil(t, s, "重连后同步", func(v RenderView) bool {
		return v.State == StatePlaying && v.Local != nil
	})
	if net.PlayerID() != pid || !net.Welcome().Reconnected {
		t.Fatalf("重连后 PlayerID = %d (原 %d), Reconnected = %v", net.PlayerID(), pid, net.Welcome().Reconnected)
	}
}

func TestStaleSnapshotLoggedSparingly(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, w := newTestWorld(t)
	s := NewSession(testConfig(), core.DefaultLevel(), nil)
	now := time.Now()
	s.onWelcome(&protocol.Welcome{PlayerID: localID, ServerTick: w.Tick}, now)

	data, err := snapshot.Marshal(snapshot.Diff(w, nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	frame := &protocol.SnapshotFrame{ServerTick: w.Tick, Snapshot: data}
	s.handleFrame(frame, now)
	if s.State() != StatePlaying {
		t.Fatalf("State = %s, want playing", s.State())
	}

	for i := 0; i < 3; i++ {
		s.handleFrame(frame, now.Add(time.Duration(i)*time.Millisecond))
	}
	s.handleFrame(frame, now.Add(staleLogInterval+time.Second))

	if s.staleDropped != 4 {
		t.Fatalf("staleDropped = %d, want 4", s.staleDropped)
	}
	if n := strings.Count(buf.String(), "丢弃过期快照"); n != 2 {
		t.Fatalf("过期快照日志 %d 条, want 2:\n%s", n, buf.String())
	}
}
