package replay

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"platformer/pkg/core"
)

func worlds(n int) []*core.WorldState {
	level := core.DefaultLevel()
	sim := core.NewSimulator(level, core.DefaultTuning())
	w := level.InitialWorld(9)
	w = sim.AddPlayer(w, 1)
	w = sim.AddPlayer(w, 2)

	out := make([]*core.WorldState, 0, n)
	for i := 0; i < n; i++ {
		inputs := map[core.PlayerID]core.PlayerInput{
			1: {Player: 1, Tick: w.Tick + 1, Controls: core.Controls{Move: 1, Jump: i%20 < 3, Fire: i%15 == 0, Aim: core.V(100, -10)}},
			2: {Player: 2, Tick: w.Tick + 1, Controls: core.Controls{Move: -1, Fire: i%25 == 0, Aim: core.V(-100, 0)}},
		}
		w = sim.Step(w, inputs)
		out = append(out, w)
	}
	return out
}

func TestWriteAndPlay(t *testing.T) {
	src := worlds(120)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{TickRate: 50, Seed: 9}, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, world := range src {
		if err := w.Record(world); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if h := r.Header(); h.TickRate != 50 || h.Seed != 9 || h.Version != Version {
		t.Fatalf("header = %+v", h)
	}

	keyframes := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if rec.Keyframe {
			keyframes++
		}
	}
	// 第一条 + tick 50 + tick 100
	if keyframes != 3 {
		t.Fatalf("关键帧数 = %d", keyframes)
	}

	r, _ = NewReader(bytes.NewReader(buf.Bytes()))
	p := NewPlayer(r)
	for i, want := range src {
		got, err := p.Next()
		if err != nil {
			t.Fatalf("第 %d 条: %v", i, err)
		}
		if !got.Equal(want) {
			t.Fatalf("tick %d 还原结果不一致", want.Tick)
		}
	}
	if _, err := p.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("期望 EOF, got %v", err)
	}
}

func TestGapForcesKeyframe(t *testing.T) {
	src := worlds(10)

	var buf bytes.Buffer
	w, _ := NewWriter(&buf, Header{}, 1000)
	_ = w.Record(src[0])
	_ = w.Record(src[1])
	_ = w.Record(src[5]) // 跳过了 tick
	_ = w.Close()

	r, _ := NewReader(&buf)
	var flags []bool
	for {
		rec, err := r.Next()
		if err != nil {
			break
		}
		flags = append(flags, rec.Keyframe)
	}
	want := []bool{true, false, true}
	if len(flags) != len(want) {
		t.Fatalf("记录数 = %d", len(flags))
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Fatalf("记录 %d keyframe = %v", i, flags[i])
		}
	}
}

func TestBadHeader(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("garbage"))); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("期望 ErrBadHeader, got %v", err)
	}
}
