package server

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"platformer/internal/config"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/snapshot"
)

type fakeSession struct {
	mu     sync.Mutex
	pid    core.PlayerID
	ack    AckState
	inbox  []core.PlayerInput
	sent   [][]byte
	closed bool
}

func (s *fakeSession) PlayerID() core.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pid
}

func (s *fakeSession) SetPlayerID(id core.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pid = id
}

func (s *fakeSession) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrConnectionClosed
	}
	s.sent = append(s.sent, data)
	return nil
}

func (s *fakeSession) Ack() *AckState { return &s.ack }

func (s *fakeSession) DrainInputs(fn func(core.PlayerInput)) int {
	s.mu.Lock()
	inbox := s.inbox
	s.inbox = nil
	pid := s.pid
	s.mu.Unlock()
	for _, in := range inbox {
		in.Player = pid
		fn(in)
	}
	return len(inbox)
}

func (s *fakeSession) CloseWithoutNotify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *fakeSession) queue(inputs ...core.PlayerInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox = append(s.inbox, inputs...)
}

// packets 取出并清空已发送的数据包
func (s *fakeSession) packets(t *testing.T) []*protocol.Packet {
	t.Helper()
	s.mu.Lock()
	sent := s.sent
	s.sent = nil
	s.mu.Unlock()

	out := make([]*protocol.Packet, 0, len(sent))
	for _, data := range sent {
		pkt, err := protocol.UnmarshalPacket(data)
		if err != nil {
			t.Fatalf("UnmarshalPacket: %v", err)
		}
		out = append(out, pkt)
	}
	return out
}

func (s *fakeSession) snapshots(t *testing.T) []*snapshot.Snapshot {
	t.Helper()
	var out []*snapshot.Snapshot
	for _, pkt := range s.packets(t) {
		if pkt.Type != protocol.MessageSnapshot {
			continue
		}
		frame, err := protocol.ParseSnapshot(pkt)
		if err != nil {
			t.Fatalf("ParseSnapshot: %v", err)
		}
		snap, err := snapshot.Unmarshal(frame.Snapshot)
		if err != nil {
			t.Fatalf("snapshot.Unmarshal: %v", err)
		}
		out = append(out, snap)
	}
	return out
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Net.JWTSecret = "test-secret"
	cfg.Sim.SnapshotInterval = 1
	return cfg
}

func newTestRoom(t *testing.T, cfg config.Config) *Room {
	t.Helper()
	tokens := NewTokenIssuer(cfg.Net.JWTSecret, time.Minute)
	return NewRoom(context.Background(), cfg, core.DefaultLevel(), tokens, nil)
}

func join(t *testing.T, r *Room, s Session, name, token string) *protocol.Welcome {
	t.Helper()
	if err := r.handleJoin(joinRequest{session: s, hello: &protocol.Hello{Name: name, SessionToken: token}}); err != nil {
		t.Fatalf("handleJoin: %v", err)
	}
	fs := s.(*fakeSession)
	for _, pkt := range fs.packets(t) {
		if pkt.Type == protocol.MessageWelcome {
			w, err := protocol.ParseWelcome(pkt)
			if err != nil {
				t.Fatalf("ParseWelcome: %v", err)
			}
			return w
		}
	}
	t.Fatal("没有收到 Welcome")
	return nil
}

func TestInputGapUsesDefaultControls(t *testing.T) {
	r := newTestRoom(t, testConfig())
	s := &fakeSession{}
	welcome := join(t, r, s, "alice", "")
	pid := welcome.PlayerID

	r.tick()
	if _, ok := r.world.PlayerEntity(pid); !ok {
		t.Fatalf("tick %d 后玩家 %d 不在世界中", r.world.Tick, pid)
	}
	start, _ := r.store.Get(r.world.Tick)

	// tick 10-12 的输入丢失
	sent := make(map[core.Tick]core.PlayerInput)
	for tick := core.Tick(2); tick <= 13; tick++ {
		if tick >= 10 && tick <= 12 {
			continue
		}
		in := core.PlayerInput{Tick: tick, Controls: core.Controls{Move: 1}}
		if tick == 9 {
			in.Fire = true
			in.Aim = core.V(1, 0)
		}
		if tick == 13 {
			in.Move = -1
		}
		sent[tick] = core.PlayerInput{Player: pid, Tick: tick, Controls: in.Controls}
		s.queue(in)
	}

	var gapTicks []core.Tick
	for r.world.Tick < 13 {
		before := r.InputGaps(pid)
		r.tick()
		if r.InputGaps(pid) > before {
			gapTicks = append(gapTicks, r.world.Tick)
		}
	}

	if want := []core.Tick{10, 11, 12}; !slices.Equal(gapTicks, want) {
		t.Fatalf("缺失 tick = %v, want %v", gapTicks, want)
	}
	if got := r.InputGaps(pid); got != 3 {
		t.Fatalf("InputGaps = %d, want 3", got)
	}

	w11, ok := r.store.Get(11)
	if !ok {
		t.Fatal("tick 11 不在历史中")
	}
	e, _ := w11.PlayerEntity(pid)
	if e.Last.Move != 1 || e.Last.Fire {
		t.Fatalf("tick 11 的替代输入 = %+v, want Move=1 且不开火", e.Last)
	}
	e, _ = r.world.PlayerEntity(pid)
	if e.Last.Move != -1 {
		t.Fatalf("tick 13 Move = %d, want -1", e.Last.Move)
	}

	// 与直接模拟同一组输入的结果逐位一致
	sim := core.NewSimulator(core.DefaultLevel(), core.DefaultTuning())
	ref := start
	for tick := start.Tick + 1; tick <= 13; tick++ {
		inputs := map[core.PlayerID]core.PlayerInput{}
		if in, ok := sent[tick]; ok {
			inputs[pid] = in
		}
		ref = sim.Step(ref, inputs)
	}
	if !ref.Equal(r.world) {
		t.Fatal("服务器世界与参考模拟不一致")
	}
}

func TestLateAndDuplicateInputsIgnored(t *testing.T) {
	r := newTestRoom(t, testConfig())
	s := &fakeSession{}
	pid := join(t, r, s, "bob", "").PlayerID
	for i := 0; i < 5; i++ {
		r.tick()
	}

	s.queue(
		core.PlayerInput{Tick: 3, Controls: core.Controls{Move: -1}}, // 已封存
		core.PlayerInput{Tick: 6, Controls: core.Controls{Move: 1}},
		core.PlayerInput{Tick: 6, Controls: core.Controls{Move: -1}}, // 重复，保留第一份
	)
	r.tick()

	e, _ := r.world.PlayerEntity(pid)
	if e.Last.Move != 1 {
		t.Fatalf("Move = %d, want 1", e.Last.Move)
	}
	w3, _ := r.store.Get(3)
	if e3, _ := w3.PlayerEntity(pid); e3.Last.Move != 0 {
		t.Fatalf("过期输入改写了历史: %+v", e3.Last)
	}
}

func TestSnapshotBaselineSelection(t *testing.T) {
	r := newTestRoom(t, testConfig())
	s := &fakeSession{}
	join(t, r, s, "carol", "")

	r.tick()
	snaps := s.snapshots(t)
	if len(snaps) != 1 || !snaps[0].Full {
		t.Fatalf("第一个快照应为完整快照: %+v", snaps)
	}

	// 确认之后发送相对确认 tick 的增量
	s.ack.Observe(snaps[0].Tick)
	r.tick()
	r.tick()
	snaps = s.snapshots(t)
	if len(snaps) != 2 {
		t.Fatalf("快照数 = %d, want 2", len(snaps))
	}
	for _, snap := range snaps {
		if snap.Full || snap.Baseline != 1 {
			t.Fatalf("快照 %d: Full=%v Baseline=%d, want 增量基于 1", snap.Tick, snap.Full, snap.Baseline)
		}
	}

	// 客户端请求完整快照
	s.ack.RequestFull()
	r.tick()
	r.tick()
	snaps = s.snapshots(t)
	if !snaps[0].Full {
		t.Fatal("请求之后应发送完整快照")
	}
	if !snaps[1].Full {
		t.Fatal("确认被重置后仍应发送完整快照")
	}

	// 确认超出保留窗口
	s.ack.Observe(r.world.Tick)
	for i := 0; i < r.cfg.Sim.RetentionTicks; i++ {
		r.tick()
	}
	s.snapshots(t)
	r.tick()
	if snaps = s.snapshots(t); !snaps[0].Full {
		t.Fatal("确认 tick 超出保留窗口时应发送完整快照")
	}
}

func TestSnapshotCarriesInputAck(t *testing.T) {
	r := newTestRoom(t, testConfig())
	s := &fakeSession{}
	join(t, r, s, "dave", "")
	s.queue(core.PlayerInput{Tick: 4, Controls: core.Controls{Jump: true}})
	r.tick()

	for _, pkt := range s.packets(t) {
		if pkt.Type != protocol.MessageSnapshot {
			continue
		}
		frame, err := protocol.ParseSnapshot(pkt)
		if err != nil {
			t.Fatal(err)
		}
		if !frame.HasInputAck || frame.InputAck != 4 {
			t.Fatalf("InputAck = %d (%v), want 4", frame.InputAck, frame.HasInputAck)
		}
		return
	}
	t.Fatal("没有快照")
}

func TestJoinLeaveAndReconnect(t *testing.T) {
	r := newTestRoom(t, testConfig())
	first := &fakeSession{}
	welcome := join(t, r, first, "erin", "")
	pid := welcome.PlayerID
	if welcome.Reconnected || welcome.SessionToken == "" {
		t.Fatalf("首次加入 Welcome = %+v", welcome)
	}
	r.tick()

	// 同一令牌接管会话，角色保留
	second := &fakeSession{}
	again := join(t, r, second, "", welcome.SessionToken)
	if again.PlayerID != pid || !again.Reconnected {
		t.Fatalf("重连 Welcome = %+v, want 玩家 %d", again, pid)
	}
	if !first.closed {
		t.Fatal("旧连接应被关闭")
	}
	before, _ := r.world.PlayerEntity(pid)
	r.tick()
	if _, ok := r.world.PlayerEntity(pid); !ok {
		t.Fatal("重连后角色消失")
	}
	if before.ID == 0 {
		t.Fatal("重连前角色不存在")
	}

	// 旧连接的离开通知不影响新连接
	r.handleLeave(leaveRequest{playerID: pid, session: first})
	r.tick()
	if _, ok := r.world.PlayerEntity(pid); !ok {
		t.Fatal("过期的离开请求移除了玩家")
	}

	r.handleLeave(leaveRequest{playerID: pid, session: second})
	r.tick()
	if _, ok := r.world.PlayerEntity(pid); ok {
		t.Fatal("离开后角色仍在世界中")
	}

	// 离开后凭令牌重新加入，重新出生
	third := &fakeSession{}
	if w := join(t, r, third, "", again.SessionToken); w.PlayerID != pid {
		t.Fatalf("重新加入 PlayerID = %d, want %d", w.PlayerID, pid)
	}
	r.tick()
	if _, ok := r.world.PlayerEntity(pid); !ok {
		t.Fatal("凭令牌重新加入后没有角色")
	}
}

// 旧连接已提交的未来输入在重连后作废，同一 tick 以新连接的输入为准
func TestReconnectDiscardsOldSessionInputs(t *testing.T) {
	r := newTestRoom(t, testConfig())
	first := &fakeSession{}
	welcome := join(t, r, first, "ivan", "")
	pid := welcome.PlayerID
	r.tick()

	first.queue(
		core.PlayerInput{Tick: 3, Controls: core.Controls{Move: -1}},
		core.PlayerInput{Tick: 4, Controls: core.Controls{Move: -1}},
	)
	r.tick()

	second := &fakeSession{}
	join(t, r, second, "", welcome.SessionToken)
	second.queue(
		core.PlayerInput{Tick: 3, Controls: core.Controls{Move: 1}},
		core.PlayerInput{Tick: 4, Controls: core.Controls{Move: 1}},
	)
	for r.world.Tick < 4 {
		r.tick()
	}

	for tick := core.Tick(3); tick <= 4; tick++ {
		w, ok := r.store.Get(tick)
		if !ok {
			t.Fatalf("tick %d 不在历史中", tick)
		}
		e, _ := w.PlayerEntity(pid)
		if e.Last.Move != 1 {
			t.Fatalf("tick %d 生效的输入 Move = %d, want 新连接的 1", tick, e.Last.Move)
		}
	}
}

func TestReconnectRespectsCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.Net.MaxPlayers = 1
	r := newTestRoom(t, cfg)

	a := &fakeSession{}
	welcome := join(t, r, a, "judy", "")
	r.tick()
	r.handleLeave(leaveRequest{playerID: welcome.PlayerID, session: a})
	r.tick()
	ken := join(t, r, &fakeSession{}, "ken", "")

	err := r.handleJoin(joinRequest{session: &fakeSession{}, hello: &protocol.Hello{SessionToken: welcome.SessionToken}})
	if !errors.Is(err, ErrRoomFull) {
		t.Fatalf("err = %v, want ErrRoomFull", err)
	}
	if len(r.players) != 1 {
		t.Fatalf("players = %d, want 1", len(r.players))
	}

	// 仍在房间中的玩家凭令牌接管会话不受人数限制
	if w := join(t, r, &fakeSession{}, "", ken.SessionToken); w.PlayerID != ken.PlayerID || !w.Reconnected {
		t.Fatalf("接管会话 Welcome = %+v", w)
	}
}

func TestJoinRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Net.MaxPlayers = 1
	r := newTestRoom(t, cfg)
	join(t, r, &fakeSession{}, "frank", "")

	err := r.handleJoin(joinRequest{session: &fakeSession{}, hello: &protocol.Hello{Name: "grace"}})
	if !errors.Is(err, ErrRoomFull) {
		t.Fatalf("err = %v, want ErrRoomFull", err)
	}

	err = r.handleJoin(joinRequest{session: &fakeSession{}, hello: &protocol.Hello{SessionToken: "garbage"}})
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestBotsAlwaysHaveInput(t *testing.T) {
	cfg := testConfig()
	cfg.Bots.Count = 2
	r := newTestRoom(t, cfg)

	r.tick()
	if got := len(r.world.Players()); got != 2 {
		t.Fatalf("机器人数 = %d, want 2", got)
	}
	for i := 0; i < 50; i++ {
		r.tick()
	}
	for _, pid := range r.world.Players() {
		if gaps := r.InputGaps(pid); gaps != 0 {
			t.Fatalf("机器人 %d 缺失输入 %d 次", pid, gaps)
		}
	}
}
