package snapshot

import (
	"errors"
	"math/rand"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"platformer/pkg/core"
)

// history 生成一段带随机输入的世界序列，下标即 tick
func history(ticks int) []*core.WorldState {
	level := core.DefaultLevel()
	sim := core.NewSimulator(level, core.DefaultTuning())
	w := level.InitialWorld(11)
	for pid := core.PlayerID(1); pid <= 4; pid++ {
		w = sim.AddPlayer(w, pid)
	}

	r := rand.New(rand.NewSource(3))
	out := []*core.WorldState{w}
	for i := 0; i < ticks; i++ {
		inputs := make(map[core.PlayerID]core.PlayerInput)
		for pid := core.PlayerID(1); pid <= 4; pid++ {
			inputs[pid] = core.PlayerInput{Player: pid, Tick: w.Tick + 1, Controls: core.Controls{
				Move: int8(r.Intn(3) - 1),
				Jump: r.Intn(3) == 0,
				Fire: r.Intn(8) == 0,
				Aim:  core.V(r.Intn(100)-50, r.Intn(100)-50),
			}}
		}
		w = sim.Step(w, inputs)
		out = append(out, w)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	worlds := history(300)

	tests := []struct {
		name         string
		target, base int
		full         bool
	}{
		{"full", 150, 0, true},
		{"delta 1 tick", 151, 150, false},
		{"delta 10 ticks", 200, 190, false},
		{"delta across spawns", 299, 100, false},
		{"delta identical", 120, 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := worlds[tt.target]
			var base *core.WorldState
			if !tt.full {
				base = worlds[tt.base]
			}

			decoded, err := Unmarshal(mustMarshal(t, Diff(target, base)))
			if err != nil {
				t.Fatal(err)
			}
			if decoded.Full != tt.full {
				t.Fatalf("Full = %v", decoded.Full)
			}
			got, err := Apply(decoded, base)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(target) {
				t.Fatalf("tick %d 解码结果与原世界不一致", target.Tick)
			}
		})
	}
}

func TestDeltaSmallerThanFull(t *testing.T) {
	worlds := history(60)
	full := mustMarshal(t, Diff(worlds[60], nil))
	delta := mustMarshal(t, Diff(worlds[60], worlds[59]))
	if len(delta) >= len(full) {
		t.Fatalf("增量 %d 字节不小于完整 %d 字节", len(delta), len(full))
	}
}

// 服务器在 tick 100，客户端确认到 90，期间只有两个实体移动
func TestDeltaContainsOnlyChangedEntities(t *testing.T) {
	level := core.DefaultLevel()
	sim := core.NewSimulator(level, core.DefaultTuning())
	w := level.InitialWorld(5)
	for pid := core.PlayerID(1); pid <= 3; pid++ {
		w = sim.AddPlayer(w, pid)
	}
	for i := 0; i < 200; i++ {
		w = sim.Step(w, nil)
	}
	w = w.Clone()
	w.Tick = 90
	base := w

	movers := map[core.PlayerID]bool{1: true, 3: true}
	for w.Tick < 100 {
		inputs := map[core.PlayerID]core.PlayerInput{}
		for pid := range movers {
			inputs[pid] = core.PlayerInput{Player: pid, Tick: w.Tick + 1, Controls: core.Controls{Move: 1}}
		}
		w = sim.Step(w, inputs)
	}

	s := Diff(w, base)
	if s.Full || s.Baseline != 90 || s.Tick != 100 {
		t.Fatalf("snapshot header = tick %d baseline %d full %v", s.Tick, s.Baseline, s.Full)
	}
	if len(s.Entities) != 2 || len(s.Removed) != 0 {
		t.Fatalf("增量应只包含 2 个实体, got %d (removed %d)", len(s.Entities), len(s.Removed))
	}
	for _, d := range s.Entities {
		e, _ := w.Find(d.ID)
		if !movers[e.Owner] {
			t.Fatalf("实体 %d 不应出现在增量中", d.ID)
		}
		if d.Mask&FieldKind != 0 || d.Mask&FieldOwner != 0 {
			t.Fatalf("未变化字段被编码: mask=%b", d.Mask)
		}
	}
}

func TestApplyWrongBaseline(t *testing.T) {
	worlds := history(20)
	s := Diff(worlds[20], worlds[10])

	if _, err := Apply(s, nil); !IsDesync(err) {
		t.Fatalf("缺少基线应返回 DesyncError, got %v", err)
	}
	_, err := Apply(s, worlds[9])
	var de *DesyncError
	if !errors.As(err, &de) || de.Baseline != 10 || de.Tick != 20 {
		t.Fatalf("基线不匹配应返回 DesyncError, got %v", err)
	}
}

func TestTrackerStaleAndDesync(t *testing.T) {
	worlds := history(120)
	tr := NewTracker(32)

	if _, err := tr.Accept(Diff(worlds[80], nil)); err != nil {
		t.Fatal(err)
	}
	// 客户端从未收到 90，增量 100<-90 无法解码
	if _, err := tr.Accept(Diff(worlds[100], worlds[90])); !IsDesync(err) {
		t.Fatalf("期望 DesyncError, got %v", err)
	}
	// 增量 100<-80 可以解码
	got, err := tr.Accept(Diff(worlds[100], worlds[80]))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(worlds[100]) {
		t.Fatal("解码结果错误")
	}

	for _, tick := range []int{99, 100} {
		if _, err := tr.Accept(Diff(worlds[tick], nil)); !errors.Is(err, ErrStaleSnapshot) {
			t.Fatalf("tick %d 应作为过期快照丢弃, got %v", tick, err)
		}
	}
	latest, _ := tr.Latest()
	if !latest.Equal(worlds[100]) {
		t.Fatal("过期快照不应改变状态")
	}

	tr.Reset()
	if _, ok := tr.LatestTick(); ok {
		t.Fatal("Reset 后不应有已应用快照")
	}
	if _, err := tr.Accept(Diff(worlds[90], nil)); err != nil {
		t.Fatalf("Reset 后应接受更早的完整快照: %v", err)
	}
}

func mustMarshal(t *testing.T, s *Snapshot) []byte {
	t.Helper()
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

// 旧版本不认识的 mask 位与字段被忽略
func TestUnmarshalIgnoresUnknownBits(t *testing.T) {
	worlds := history(30)
	pb := ToProto(Diff(worlds[30], nil))
	pb.Entities[0].Mask |= 1 << 30
	data, err := proto.Marshal(pb)
	if err != nil {
		t.Fatal(err)
	}
	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendString(data, "future")

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Entities[0].Mask != FieldAll {
		t.Fatalf("Mask = %b, want %b", decoded.Entities[0].Mask, FieldAll)
	}
	got, err := Apply(decoded, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(worlds[30]) {
		t.Fatal("解码结果与原世界不一致")
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("期望解析失败")
	}
}
