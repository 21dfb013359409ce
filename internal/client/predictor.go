package client

import (
	"errors"
	"fmt"
	"math"

	"platformer/pkg/core"
	"platformer/pkg/snapshot"
	"platformer/pkg/timeline"
)

var (
	// ErrRetentionWindowExceeded 最早未确认的预测超出保留窗口，必须等待完整快照重新同步
	ErrRetentionWindowExceeded = errors.New("预测超出保留窗口")
	// ErrNotSynced 尚未收到第一个权威快照
	ErrNotSynced = errors.New("尚未与服务器同步")
)

// PredictionRecord 一个已预测 tick 的结果及当时使用的本地输入
type PredictionRecord struct {
	Tick  core.Tick
	World *core.WorldState
	Input core.PlayerInput
}

// Outcome 应用权威快照的结果
type Outcome int

const (
	OutcomeMatched    Outcome = iota // 预测与权威一致
	OutcomeRolledBack                // 回滚并重放
	OutcomeAdopted                   // 权威领先于预测，直接采用
	OutcomeResynced                  // 预测记录已丢失，强制重新同步
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeRolledBack:
		return "rolled_back"
	case OutcomeAdopted:
		return "adopted"
	case OutcomeResynced:
		return "resynced"
	}
	return "unknown"
}

// Reconciliation ApplySnapshot 的结果
type Reconciliation struct {
	Tick     core.Tick
	Outcome  Outcome
	Replayed int     // 重放的 tick 数
	ErrorPx  float64 // 本地玩家位置误差（像素）
	Snapped  bool    // 误差过大，直接拉回
}

// PredictorConfig 预测参数
type PredictorConfig struct {
	Window          int     // 预测记录与输入的保留窗口
	SnapThresholdPx float64 // 超过该误差直接拉回（例如重生）
	OffsetDecay     float64 // 每 tick 渲染偏移保留的比例
}

// Predictor 客户端预测与回滚，不做任何 I/O，只由 Session 的拥有者 goroutine 使用
type Predictor struct {
	sim   *core.Simulator
	local core.PlayerID
	cfg   PredictorConfig

	tracker *snapshot.Tracker
	records *timeline.Ring[PredictionRecord]
	inputs  *timeline.InputHistory

	predicted *core.WorldState
	confirmed core.Tick
	synced    bool

	// 本地玩家的渲染偏移（像素），回滚时吸收位置误差并逐 tick 衰减
	offsetX, offsetY float64
}

// NewPredictor 创建预测器，local 为本地玩家
func NewPredictor(sim *core.Simulator, local core.PlayerID, cfg PredictorConfig) *Predictor {
	return &Predictor{
		sim:     sim,
		local:   local,
		cfg:     cfg,
		tracker: snapshot.NewTracker(cfg.Window),
		records: timeline.NewRing[PredictionRecord](cfg.Window),
		inputs:  timeline.NewInputHistory(cfg.Window, timeline.KeepLatest),
	}
}

func (p *Predictor) LocalPlayer() core.PlayerID {
	return p.local
}

func (p *Predictor) Synced() bool {
	return p.synced
}

// Predicted 最新预测的 tick
func (p *Predictor) Predicted() core.Tick {
	if p.predicted == nil {
		return 0
	}
	return p.predicted.Tick
}

// Confirmed 最新的权威 tick
func (p *Predictor) Confirmed() (core.Tick, bool) {
	return p.confirmed, p.synced
}

// World 最新预测的世界
func (p *Predictor) World() *core.WorldState {
	return p.predicted
}

// LastApplied 已应用的最新权威快照 tick（作为确认发给服务器）
func (p *Predictor) LastApplied() (core.Tick, bool) {
	return p.tracker.LatestTick()
}

// RenderOffset 本地玩家当前的渲染偏移
func (p *Predictor) RenderOffset() (float64, float64) {
	return p.offsetX, p.offsetY
}

// Desync 丢弃全部预测状态，等待完整快照
func (p *Predictor) Desync() {
	p.synced = false
	p.predicted = nil
	p.tracker.Reset()
	p.records.Reset()
	p.inputs.Reset()
	p.offsetX, p.offsetY = 0, 0
}

// SubmitInput 记录下一个待预测 tick 的本地输入，tick 被模拟前可以反复修改
func (p *Predictor) SubmitInput(c core.Controls) (core.PlayerInput, error) {
	if !p.synced {
		return core.PlayerInput{}, ErrNotSynced
	}
	in := core.PlayerInput{Player: p.local, Tick: p.predicted.Tick + 1, Controls: c.Sanitize()}
	if err := p.inputs.Submit(in); err != nil {
		return core.PlayerInput{}, err
	}
	return in, nil
}

// Tick 预测一个 tick，只使用本地输入，远端玩家沿用上一操作
// 返回本 tick 实际使用的本地输入（需要发给服务器）
func (p *Predictor) Tick() (core.PlayerInput, error) {
	if !p.synced {
		return core.PlayerInput{}, ErrNotSynced
	}
	next := p.predicted.Tick + 1
	if int(next-p.confirmed) > p.cfg.Window {
		return core.PlayerInput{}, ErrRetentionWindowExceeded
	}

	in, ok := p.inputs.Get(p.local, next)
	if !ok {
		in = core.PlayerInput{Player: p.local, Tick: next, Controls: p.defaultControls()}
		if err := p.inputs.Submit(in); err != nil {
			return core.PlayerInput{}, fmt.Errorf("tick %d 替代输入: %w", next, err)
		}
	}

	world := p.sim.Step(p.predicted, map[core.PlayerID]core.PlayerInput{p.local: in})
	p.records.Put(next, PredictionRecord{Tick: next, World: world, Input: in})
	p.inputs.Seal(next)
	p.predicted = world
	p.decayOffset()
	return in, nil
}

// defaultControls 没有本地输入时显式使用与服务器相同的替代策略
func (p *Predictor) defaultControls() core.Controls {
	if e, ok := p.predicted.PlayerEntity(p.local); ok {
		return core.DefaultControls(e.Last)
	}
	return core.Controls{}
}

// UnackedInputs 最近 n 个 tick 中服务器尚未确认的本地输入，按 tick 升序
func (p *Predictor) UnackedInputs(ack core.Tick, hasAck bool, n int) []core.PlayerInput {
	if !p.synced {
		return nil
	}
	to := p.predicted.Tick
	from := core.Tick(0)
	if to > core.Tick(n) {
		from = to - core.Tick(n)
	}
	if hasAck && ack > from {
		from = ack
	}
	return p.inputs.Range(p.local, from, to)
}

// ApplySnapshot 应用权威快照并与预测对账
// 过期快照返回 snapshot.ErrStaleSnapshot，基线缺失返回 *snapshot.DesyncError
func (p *Predictor) ApplySnapshot(s *snapshot.Snapshot) (Reconciliation, error) {
	auth, err := p.tracker.Accept(s)
	if err != nil {
		return Reconciliation{}, err
	}
	t := auth.Tick

	if !p.synced || t > p.predicted.Tick {
		p.rebase(auth)
		return Reconciliation{Tick: t, Outcome: OutcomeAdopted}, nil
	}

	rec, ok := p.records.Get(t)
	if !ok {
		p.rebase(auth)
		return Reconciliation{Tick: t, Outcome: OutcomeResynced}, nil
	}

	if rec.World.Equal(auth) {
		p.confirm(t)
		return Reconciliation{Tick: t, Outcome: OutcomeMatched}, nil
	}

	return p.rollback(auth), nil
}

// rollback 从权威世界重放到已预测的 tick
func (p *Predictor) rollback(auth *core.WorldState) Reconciliation {
	t := auth.Tick
	target := p.predicted.Tick
	beforeX, beforeY, hadLocal := p.localPosition(p.predicted)

	world := auth
	replayed := 0
	for tick := t + 1; tick <= target; tick++ {
		r, ok := p.records.Get(tick)
		if !ok {
			r = PredictionRecord{Input: core.PlayerInput{Player: p.local, Tick: tick}}
		}
		world = p.sim.Step(world, map[core.PlayerID]core.PlayerInput{p.local: r.Input})
		p.records.Put(tick, PredictionRecord{Tick: tick, World: world, Input: r.Input})
		replayed++
	}
	p.predicted = world
	p.confirm(t)

	result := Reconciliation{Tick: t, Outcome: OutcomeRolledBack, Replayed: replayed}
	afterX, afterY, hasLocal := p.localPosition(world)
	if hadLocal && hasLocal {
		dx, dy := beforeX-afterX, beforeY-afterY
		result.ErrorPx = math.Hypot(dx, dy)
		p.offsetX += dx
		p.offsetY += dy
		if math.Hypot(p.offsetX, p.offsetY) > p.cfg.SnapThresholdPx {
			p.offsetX, p.offsetY = 0, 0
			result.Snapped = true
		}
	}
	return result
}

// rebase 以权威世界为新的预测起点
func (p *Predictor) rebase(auth *core.WorldState) {
	p.records.Reset()
	p.inputs.Reset()
	p.inputs.Seal(auth.Tick)
	p.predicted = auth
	p.confirmed = auth.Tick
	p.synced = true
	p.offsetX, p.offsetY = 0, 0
}

// confirm 丢弃 <= t 的预测记录
func (p *Predictor) confirm(t core.Tick) {
	start := p.confirmed + 1
	if span := core.Tick(p.cfg.Window); t >= span && t-span+1 > start {
		start = t - span + 1
	}
	for tick := start; tick <= t; tick++ {
		p.records.Delete(tick)
	}
	if t > p.confirmed {
		p.confirmed = t
	}
}

func (p *Predictor) localPosition(w *core.WorldState) (float64, float64, bool) {
	e, ok := w.PlayerEntity(p.local)
	if !ok {
		return 0, 0, false
	}
	return e.Pos.X.Float(), e.Pos.Y.Float(), true
}

func (p *Predictor) decayOffset() {
	p.offsetX *= p.cfg.OffsetDecay
	p.offsetY *= p.cfg.OffsetDecay
	if math.Abs(p.offsetX) < 0.01 {
		p.offsetX = 0
	}
	if math.Abs(p.offsetY) < 0.01 {
		p.offsetY = 0
	}
}
