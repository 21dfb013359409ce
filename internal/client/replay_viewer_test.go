package client

import (
	"bytes"
	"testing"
	"time"

	"platformer/pkg/core"
	"platformer/pkg/replay"
)

func recordReplay(t *testing.T, ticks int) *bytes.Buffer {
	t.Helper()
	level := core.DefaultLevel()
	sim := core.NewSimulator(level, core.DefaultTuning())
	w := sim.AddPlayer(level.InitialWorld(3), 1)

	var buf bytes.Buffer
	rec, err := replay.NewWriter(&buf, replay.Header{TickRate: 50, Seed: 3}, 20)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for i := 0; i < ticks; i++ {
		w = sim.Step(w, map[core.PlayerID]core.PlayerInput{
			1: {Player: 1, Tick: w.Tick + 1, Controls: core.Controls{Move: 1}},
		})
		if err := rec.Record(w); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return &buf
}

func TestReplayViewerPlayback(t *testing.T) {
	v, err := NewReplayViewer(recordReplay(t, 60), 5, 96)
	if err != nil {
		t.Fatalf("NewReplayViewer: %v", err)
	}
	if v.Header().TickRate != 50 {
		t.Fatalf("Header = %+v", v.Header())
	}

	start := time.Now()
	tick := 20 * time.Millisecond
	if err := v.Update(start); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := v.Update(start.Add(10*tick + tick/2)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	view := v.LatestRenderView()
	if view.State != StatePlaying || view.Tick != 11 || len(view.Entities) == 0 {
		t.Fatalf("view = state %s tick %d entities %d", view.State, view.Tick, len(view.Entities))
	}
	if v.Finished() {
		t.Fatal("录像还未读完")
	}

	if err := v.Update(start.Add(100 * tick)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !v.Finished() || v.LatestRenderView().State != StateClosed {
		t.Fatalf("播放结束后 finished=%v state=%s", v.Finished(), v.LatestRenderView().State)
	}
}

func TestReplayViewerRejectsGarbage(t *testing.T) {
	if _, err := NewReplayViewer(bytes.NewReader([]byte("not a replay")), 5, 96); err == nil {
		t.Fatal("非录像数据应返回错误")
	}
}
