package timeline

import (
	"errors"
	"testing"

	"platformer/pkg/core"
)

func TestRingOverwrite(t *testing.T) {
	r := NewRing[int](4)
	for tick := core.Tick(0); tick < 6; tick++ {
		r.Put(tick, int(tick)*10)
	}
	if _, ok := r.Get(1); ok {
		t.Fatal("tick 1 应已被 tick 5 覆盖")
	}
	if v, ok := r.Get(5); !ok || v != 50 {
		t.Fatalf("Get(5) = %d, %v", v, ok)
	}
	r.Delete(5)
	if _, ok := r.Get(5); ok {
		t.Fatal("Delete 后不应再读到")
	}
	r.Delete(0) // 槽位已被 tick 4 复用，不能误删
	if _, ok := r.Get(4); !ok {
		t.Fatal("tick 4 不应被误删")
	}
}

func TestWorldStoreWindow(t *testing.T) {
	s := NewWorldStore(8)
	if _, err := s.Latest(); !errors.Is(err, ErrStoreEmpty) {
		t.Fatalf("空存储应返回 ErrStoreEmpty, got %v", err)
	}

	for tick := core.Tick(0); tick <= 20; tick++ {
		if err := s.Put(&core.WorldState{Tick: tick}); err != nil {
			t.Fatal(err)
		}
	}
	if s.LatestTick() != 20 || s.Oldest() != 13 {
		t.Fatalf("latest=%d oldest=%d", s.LatestTick(), s.Oldest())
	}
	if s.Contains(12) || !s.Contains(13) {
		t.Fatal("窗口边界错误")
	}
	if err := s.Put(&core.WorldState{Tick: 22}); err == nil {
		t.Fatal("跳过 tick 应失败")
	}

	// 回滚覆盖不会改变 latest
	replaced := &core.WorldState{Tick: 15, NextID: 99}
	if err := s.Put(replaced); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(15); got != replaced || s.LatestTick() != 20 {
		t.Fatal("覆盖写入错误")
	}
	if _, ok := s.Get(21); ok {
		t.Fatal("未来 tick 不应可读")
	}

	s.Reset(&core.WorldState{Tick: 100})
	if s.LatestTick() != 100 || s.Contains(20) {
		t.Fatal("Reset 后应只剩新起点")
	}
}

func TestInputHistoryServerPolicy(t *testing.T) {
	h := NewInputHistory(16, KeepFirst)
	in := func(pid core.PlayerID, tick core.Tick, move int8) core.PlayerInput {
		return core.PlayerInput{Player: pid, Tick: tick, Controls: core.Controls{Move: move}}
	}

	tests := []struct {
		name  string
		input core.PlayerInput
		want  error
	}{
		{"first", in(1, 5, 1), nil},
		{"duplicate keeps first", in(1, 5, -1), ErrInputDuplicate},
		{"other player same tick", in(2, 5, -1), nil},
		{"too far ahead", in(1, 17, 0), ErrInputOutOfWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := h.Submit(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("Submit = %v, want %v", err, tt.want)
			}
		})
	}

	got, _ := h.Get(1, 5)
	if got.Move != 1 {
		t.Fatalf("应保留最先收到的输入, got move=%d", got.Move)
	}

	inputs, missing := h.Collect(5, []core.PlayerID{3, 1, 2})
	if len(inputs) != 2 || len(missing) != 1 || missing[0] != 3 {
		t.Fatalf("Collect: inputs=%v missing=%v", inputs, missing)
	}

	h.Seal(5)
	if err := h.Submit(in(1, 5, 0)); !errors.Is(err, ErrInputLate) {
		t.Fatalf("封存后的输入应过期, got %v", err)
	}
	h.Seal(3)
	if sealed, _ := h.Sealed(); sealed != 5 {
		t.Fatalf("Seal 不应后退, got %d", sealed)
	}
	if err := h.Submit(in(1, 21, 0)); err != nil {
		t.Fatalf("窗口随封存前移: %v", err)
	}
	if newest, _ := h.Newest(1); newest != 21 {
		t.Fatalf("Newest = %d", newest)
	}
}

func TestInputHistoryClientPolicy(t *testing.T) {
	h := NewInputHistory(16, KeepLatest)
	_ = h.Submit(core.PlayerInput{Player: 1, Tick: 3, Controls: core.Controls{Move: 1}})
	if err := h.Submit(core.PlayerInput{Player: 1, Tick: 3, Controls: core.Controls{Move: -1}}); err != nil {
		t.Fatal(err)
	}
	got, _ := h.Get(1, 3)
	if got.Move != -1 {
		t.Fatal("客户端应以最后一次修改为准")
	}

	_ = h.Submit(core.PlayerInput{Player: 1, Tick: 4})
	_ = h.Submit(core.PlayerInput{Player: 1, Tick: 6})
	r := h.Range(1, 2, 6)
	if len(r) != 3 || r[0].Tick != 3 || r[2].Tick != 6 {
		t.Fatalf("Range = %v", r)
	}

	h.RemovePlayer(1)
	if _, ok := h.Get(1, 3); ok {
		t.Fatal("移除玩家后输入应丢弃")
	}
}
