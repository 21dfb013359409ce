package client

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"platformer/pkg/core"
	"platformer/pkg/replay"
)

// ReplayViewer 按录像的 tick 频率回放，提供与 Session 相同的渲染接口
type ReplayViewer struct {
	player       *replay.Player
	header       replay.Header
	tickDuration time.Duration
	interp       *Interpolator

	start     time.Time
	firstTick float64
	lastTick  float64
	finished  bool

	mu   sync.Mutex
	view RenderView
}

// NewReplayViewer 读取录像头并准备回放
func NewReplayViewer(in io.Reader, maxExtrapolationTicks int, snapThresholdPx float64) (*ReplayViewer, error) {
	reader, err := replay.NewReader(in)
	if err != nil {
		return nil, err
	}
	header := reader.Header()
	if header.TickRate <= 0 {
		return nil, fmt.Errorf("录像 tick 频率非法: %d", header.TickRate)
	}
	return &ReplayViewer{
		player:       replay.NewPlayer(reader),
		header:       header,
		tickDuration: time.Second / time.Duration(header.TickRate),
		interp:       NewInterpolator(maxExtrapolationTicks, snapThresholdPx),
		firstTick:    -1,
	}, nil
}

func (v *ReplayViewer) Header() replay.Header {
	return v.header
}

// Finished 录像已读完
func (v *ReplayViewer) Finished() bool {
	return v.finished
}

// Update 读取到当前时刻为止的记录并发布渲染数据
func (v *ReplayViewer) Update(now time.Time) error {
	if v.start.IsZero() {
		v.start = now
	}

	elapsed := float64(now.Sub(v.start)) / float64(v.tickDuration)
	// 多读一个记录作为插值的右端
	for !v.finished && (v.firstTick < 0 || v.lastTick <= v.firstTick+elapsed+1) {
		w, err := v.player.Next()
		if errors.Is(err, io.EOF) {
			v.finished = true
			break
		}
		if err != nil {
			return err
		}
		if v.firstTick < 0 {
			v.firstTick = float64(w.Tick)
		}
		v.lastTick = float64(w.Tick)
		v.interp.Add(w)
	}

	renderTick := v.firstTick + elapsed
	view := RenderView{
		State:      StatePlaying,
		Tick:       core.Tick(max(renderTick, 0)),
		RenderTick: renderTick,
		Entities:   v.interp.Sample(renderTick),
		Rate:       1,
	}
	if v.finished && renderTick >= v.lastTick {
		view.State = StateClosed
	}

	v.mu.Lock()
	v.view = view
	v.mu.Unlock()
	return nil
}

// LatestRenderView 最近一次 Update 发布的渲染数据
func (v *ReplayViewer) LatestRenderView() RenderView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view
}

// SubmitInput 回放不接受输入
func (v *ReplayViewer) SubmitInput(core.Controls) {}
