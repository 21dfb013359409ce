package ai

import (
	"testing"

	"platformer/pkg/core"
)

var arena = []string{
	"####################",
	"#..................#",
	"#..S.......S.......#",
	"####################",
}

func arenaLevel(t *testing.T) *core.Level {
	t.Helper()
	level, err := core.ParseLevel(arena)
	if err != nil {
		t.Fatal(err)
	}
	return level
}

func TestBotFiresAtNearbyEnemy(t *testing.T) {
	level := arenaLevel(t)
	sim := core.NewSimulator(level, core.DefaultTuning())
	w := level.InitialWorld(1)
	w = sim.AddPlayer(w, 1)
	w = sim.AddPlayer(w, 2)

	bot := NewControllerWithConfig(1, level, 7, &BotConfigHard)
	c := bot.Decide(w)
	if !c.Fire {
		t.Fatalf("射程内冷却结束应开火: %+v", c)
	}

	// 开火后下一次思考前不会重复开火
	w = sim.Step(w, map[core.PlayerID]core.PlayerInput{1: {Player: 1, Tick: w.Tick + 1, Controls: c}})
	if next := bot.Decide(w); next.Fire {
		t.Fatal("两次思考之间不应重复开火")
	}
}

func TestBotDodgesProjectile(t *testing.T) {
	level := arenaLevel(t)
	w := &core.WorldState{
		Tick:   10,
		NextID: 4,
		Entities: []core.Entity{
			{ID: 1, Kind: core.KindPlayer, Owner: 1, Pos: core.V(240, 80), Health: 10},
			{ID: 2, Kind: core.KindPlayer, Owner: 2, Pos: core.V(560, 80), Health: 10},
			{ID: 3, Kind: core.KindProjectile, Owner: 2, Pos: core.V(140, 80), Vel: core.V(20, 0), Timer: 50},
		},
	}

	bot := NewControllerWithConfig(1, level, 7, &BotConfigHard)
	c := bot.Decide(w)
	if !c.Jump || c.Move != 1 {
		t.Fatalf("子弹从左侧来，应向右跳开: %+v", c)
	}
}

func TestBotDeterministic(t *testing.T) {
	level := core.DefaultLevel()
	sim := core.NewSimulator(level, core.DefaultTuning())

	run := func() []core.Controls {
		w := level.InitialWorld(3)
		for pid := core.PlayerID(1); pid <= 3; pid++ {
			w = sim.AddPlayer(w, pid)
		}
		bots := []*Controller{
			NewController(1, level, 99),
			NewController(2, level, 99),
			NewControllerWithConfig(3, level, 99, &BotConfigHard),
		}
		var out []core.Controls
		for i := 0; i < 400; i++ {
			inputs := make(map[core.PlayerID]core.PlayerInput)
			for _, b := range bots {
				c := b.Decide(w)
				out = append(out, c)
				inputs[b.PlayerID] = core.PlayerInput{Player: b.PlayerID, Tick: w.Tick + 1, Controls: c}
			}
			w = sim.Step(w, inputs)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("第 %d 个决策不一致: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDeadBotIdles(t *testing.T) {
	level := arenaLevel(t)
	w := &core.WorldState{Tick: 1, NextID: 2, Entities: []core.Entity{
		{ID: 1, Kind: core.KindPlayer, Owner: 1, Pos: core.V(240, 80), Flags: core.FlagDead, Timer: 5},
	}}
	bot := NewController(1, level, 1)
	if c := bot.Decide(w); c != (core.Controls{}) {
		t.Fatalf("死亡时应无操作: %+v", c)
	}
	if c := NewController(9, level, 1).Decide(w); c != (core.Controls{}) {
		t.Fatalf("不在世界中时应无操作: %+v", c)
	}
}
