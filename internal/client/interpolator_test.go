package client

import (
	"math"
	"testing"

	"platformer/pkg/core"
)

func worldAt(tick core.Tick, x int) *core.WorldState {
	return &core.WorldState{
		Tick:   tick,
		NextID: 2,
		Entities: []core.Entity{
			{ID: 1, Kind: core.KindPlayer, Owner: 2, Pos: core.V(x, 100)},
		},
	}
}

func sampleX(t *testing.T, ip *Interpolator, renderTick float64) (float64, bool) {
	t.Helper()
	out := ip.Sample(renderTick)
	if len(out) != 1 {
		t.Fatalf("Sample(%v) 返回 %d 个实体", renderTick, len(out))
	}
	return out[0].X, out[0].Extrapolated
}

func TestInterpolatorSample(t *testing.T) {
	tests := []struct {
		name       string
		worlds     []*core.WorldState
		renderTick float64
		wantX      float64
		wantExtrap bool
	}{
		{"早于缓冲区", []*core.WorldState{worldAt(10, 100), worldAt(12, 120)}, 5, 100, false},
		{"两快照之间", []*core.WorldState{worldAt(10, 100), worldAt(12, 120)}, 11, 110, false},
		{"恰好在快照上", []*core.WorldState{worldAt(10, 100), worldAt(12, 120)}, 12, 120, false},
		{"传送不插值", []*core.WorldState{worldAt(10, 100), worldAt(12, 600)}, 11, 600, false},
		{"外推", []*core.WorldState{worldAt(10, 100), worldAt(12, 120)}, 14, 140, true},
		{"外推上限", []*core.WorldState{worldAt(10, 100), worldAt(12, 120)}, 40, 170, true},
		{"传送后不外推", []*core.WorldState{worldAt(10, 100), worldAt(12, 600)}, 14, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := NewInterpolator(5, 96)
			for _, w := range tt.worlds {
				ip.Add(w)
			}
			x, extrap := sampleX(t, ip, tt.renderTick)
			if math.Abs(x-tt.wantX) > 1e-9 || extrap != tt.wantExtrap {
				t.Fatalf("X = %v extrapolated %v, want %v %v", x, extrap, tt.wantX, tt.wantExtrap)
			}
		})
	}
}

func TestInterpolatorBuffer(t *testing.T) {
	ip := NewInterpolator(5, 96)
	if ip.Sample(10) != nil {
		t.Fatal("空缓冲区应返回 nil")
	}

	ip.Add(worldAt(10, 100))
	ip.Add(worldAt(8, 50)) // 更旧，忽略
	ip.Add(worldAt(10, 70))
	if ip.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ip.Len())
	}

	for tick := core.Tick(11); tick < 11+InterpolationBufferSize+5; tick++ {
		ip.Add(worldAt(tick, 100))
	}
	if ip.Len() != InterpolationBufferSize {
		t.Fatalf("Len = %d, want %d", ip.Len(), InterpolationBufferSize)
	}

	// 插值后丢弃不再需要的旧快照
	last := core.Tick(10 + InterpolationBufferSize + 5)
	ip.Sample(float64(last) - 0.5)
	if ip.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ip.Len())
	}

	ip.Reset()
	if ip.Len() != 0 {
		t.Fatalf("Reset 后 Len = %d", ip.Len())
	}
}
