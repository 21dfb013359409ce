package server

import "testing"

func TestAckStateMonotonic(t *testing.T) {
	var a AckState
	if _, ok := a.Acked(); ok {
		t.Fatal("零值不应有确认")
	}

	a.Observe(0)
	if tick, ok := a.Acked(); !ok || tick != 0 {
		t.Fatalf("Acked = %d, %v; want 0, true", tick, ok)
	}
	a.Observe(10)
	a.Observe(4)
	if tick, _ := a.Acked(); tick != 10 {
		t.Fatalf("Acked = %d, want 10", tick)
	}

	a.RequestFull()
	if !a.TakeFullRequest() {
		t.Fatal("应有完整快照请求")
	}
	if a.TakeFullRequest() {
		t.Fatal("请求只应被取出一次")
	}

	a.Reset()
	if _, ok := a.Acked(); ok {
		t.Fatal("Reset 后不应有确认")
	}
}
