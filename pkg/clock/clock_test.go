package clock

import (
	"math"
	"testing"
	"time"

	"platformer/pkg/core"
)

type manualTime struct {
	t time.Time
}

func (m *manualTime) now() time.Time { return m.t }

func (m *manualTime) add(d time.Duration) { m.t = m.t.Add(d) }

func TestServerClockMonotonic(t *testing.T) {
	mt := &manualTime{t: time.Unix(1000, 0)}
	c := NewServerClock(20*time.Millisecond, mt.now)

	if got := c.NowTick(); got != 0 {
		t.Fatalf("NowTick = %d, want 0", got)
	}
	mt.add(205 * time.Millisecond)
	if got := c.NowTick(); got != 10 {
		t.Fatalf("NowTick = %d, want 10", got)
	}
	mt.add(-100 * time.Millisecond)
	if got := c.NowTick(); got != 10 {
		t.Fatalf("时间回拨后 NowTick = %d, want 10", got)
	}
}

func testConfig() ClientConfig {
	return ClientConfig{
		TickDuration:     20 * time.Millisecond,
		LeadTicks:        2,
		DriftAheadTicks:  3,
		DriftBehindTicks: 3,
		DriftNudge:       0.05,
		ResyncJumpTicks:  50,
	}
}

func TestClientClockTarget(t *testing.T) {
	c := NewClientClock(testConfig())
	base := time.Unix(1000, 0)

	c.ObserveRTT(100 * time.Millisecond)
	c.ObserveServerTick(500, base)

	// 100ms 往返 = 5 tick，领先 2 tick
	if got := c.TargetTick(base); got != 507 {
		t.Fatalf("TargetTick = %d, want 507", got)
	}
	// 经过 40ms = 2 tick；估计服务器 tick = 500 + 2 + 2.5
	if got := c.EstimateServerTick(base.Add(40 * time.Millisecond)); got != 504 {
		t.Fatalf("EstimateServerTick = %d, want 504", got)
	}

	// 旧 tick 被忽略
	c.ObserveServerTick(490, base.Add(time.Second))
	if got := c.TargetTick(base); got != 507 {
		t.Fatalf("旧 tick 不应影响估计, got %d", got)
	}
}

func TestClientClockDriftCorrection(t *testing.T) {
	c := NewClientClock(testConfig())
	now := time.Unix(1000, 0)
	c.ObserveRTT(0)
	c.ObserveServerTick(100, now)

	// 首次校正允许跳转
	if corr := c.Correct(0, now); !corr.Jump || corr.JumpTo != 102 {
		t.Fatalf("首次校正应跳转到 102: %+v", corr)
	}

	tests := []struct {
		name      string
		predicted core.Tick
		wantRate  float64
		wantJump  bool
	}{
		{"on target", 102, 1, false},
		{"slightly ahead", 105, 1, false},
		{"too far ahead", 106, 0.95, false},
		{"too far behind", 98, 1.05, false},
		{"huge divergence", 300, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corr := c.Correct(tt.predicted, now)
			if math.Abs(corr.Rate-tt.wantRate) > 1e-9 || corr.Jump != tt.wantJump {
				t.Fatalf("Correct(%d) = %+v", tt.predicted, corr)
			}
		})
	}

	c.Reset()
	if c.Synced() {
		t.Fatal("Reset 后应未同步")
	}
	c.ObserveServerTick(1000, now)
	if corr := c.Correct(1001, now); !corr.Jump {
		t.Fatal("重连后首次校正应跳转")
	}
}

func TestClientClockAdvance(t *testing.T) {
	c := NewClientClock(testConfig())
	now := time.Unix(1000, 0)
	if n := c.Advance(now); n != 0 {
		t.Fatalf("首次 Advance = %d", n)
	}
	if n := c.Advance(now.Add(50 * time.Millisecond)); n != 2 {
		t.Fatalf("50ms Advance = %d, want 2", n)
	}
	// 余下 10ms + 10ms = 1 tick
	if n := c.Advance(now.Add(60 * time.Millisecond)); n != 1 {
		t.Fatalf("Advance = %d, want 1", n)
	}
	// 长时间卡顿被截断
	if n := c.Advance(now.Add(10 * time.Second)); n != 10 {
		t.Fatalf("卡顿 Advance = %d, want 10", n)
	}
}
