package core

import "testing"

func TestFixedMulSymmetric(t *testing.T) {
	tests := []struct {
		a, b Fixed
	}{
		{FromInt(3), FromRatio(1, 2)},
		{1, FromRatio(1, 2)},
		{FromInt(10), FromRatio(95, 100)},
		{FromRatio(7, 3), FromRatio(5, 7)},
	}
	for _, tt := range tests {
		if got, neg := tt.a.Mul(tt.b), (-tt.a).Mul(tt.b); got != -neg {
			t.Errorf("%d*%d: %d vs %d", tt.a, tt.b, got, neg)
		}
	}
	// 摩擦最终能让速度归零
	v := Fixed(-1)
	if v.Mul(FromRatio(1, 2)) != 0 {
		t.Error("小速度乘摩擦应归零")
	}
}

func TestSaturatedAdd(t *testing.T) {
	lo, hi := FromInt(-10), FromInt(10)
	tests := []struct {
		name           string
		current, delta Fixed
		want           Fixed
	}{
		{"normal", 0, FromInt(2), FromInt(2)},
		{"clamp", FromInt(9), FromInt(2), hi},
		{"already over", FromInt(15), FromInt(2), FromInt(15)},
		{"negative clamp", FromInt(-9), FromInt(-2), lo},
		{"decelerate from over", FromInt(15), FromInt(-2), FromInt(13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SaturatedAdd(lo, hi, tt.current, tt.delta); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   Vec
		want Vec
	}{
		{V(5, 0), Vec{X: FixedOne}},
		{V(0, -3), Vec{Y: -FixedOne}},
		{V(0, 0), Vec{}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	d := V(3, 4).Normalize()
	if d.X != FromRatio(3, 5) || d.Y != FromRatio(4, 5) {
		t.Errorf("Normalize(3,4) = %v", d)
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"###", "#S"}},
		{"unknown", []string{"#X#"}},
		{"no spawn", []string{"###", "#.#"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLevel(tt.rows); err == nil {
				t.Error("期望解析失败")
			}
		})
	}
}

func TestMoveBoxStopsAtWall(t *testing.T) {
	level, err := ParseLevel([]string{
		"#####",
		"#S..#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}
	start := level.Spawns[0]
	res := level.MoveBox(start, V(200, 0), PlayerHalf)
	if !res.HitX || res.Vel.X != 0 {
		t.Fatalf("应撞墙: %+v", res)
	}
	// 右墙左边缘在 x=128，盒子右边缘贴墙误差不超过 1 个单位
	right := res.Pos.X + PlayerHalf
	if right > FromInt(128) || right < FromInt(128)-2 {
		t.Fatalf("贴墙位置错误: right=%d", right)
	}
	if level.BoxSolid(res.Pos, PlayerHalf) {
		t.Fatal("移动后不应嵌入墙体")
	}
}
