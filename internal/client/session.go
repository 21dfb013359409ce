package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"platformer/internal/config"
	"platformer/internal/metrics"
	"platformer/pkg/clock"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/snapshot"
)

// State 会话状态
type State int

const (
	StateConnecting   State = iota // 已加入，等待第一个完整快照
	StatePlaying                   // 正常预测
	StateResyncing                 // 已请求完整快照
	StateReconnecting              // 连接断开，等待重连
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StatePlaying:
		return "playing"
	case StateResyncing:
		return "resyncing"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// RenderView 渲染层需要的全部数据
type RenderView struct {
	State      State
	Tick       core.Tick // 预测 tick
	RenderTick float64   // 远端实体的渲染时刻
	LocalID    core.PlayerID
	Local      *RenderEntity  // 本地玩家（预测位置 + 纠错偏移），不存在时为 nil
	Entities   []RenderEntity // 远端实体（插值）
	RTT        time.Duration
	Rate       float64
}

// Session 连接一个服务器的客户端时间线
// Update 只能由一个 goroutine 调用；SubmitInput 与 LatestRenderView 可在渲染 goroutine 调用
type Session struct {
	cfg    config.Config
	sim    *core.Simulator
	net    *NetworkClient
	clock  *clock.ClientClock
	interp *Interpolator

	predictor *Predictor
	state     State

	inputAck        core.Tick
	hasInputAck     bool
	lastPing        time.Time
	reconnectAt     time.Time
	fullRequestedAt time.Time
	staleDropped    uint64
	staleLog        *rate.Limiter

	mu       sync.Mutex
	controls core.Controls
	view     RenderView
}

// NewSession 创建会话，Start 之后开始连接
func NewSession(cfg config.Config, level *core.Level, net *NetworkClient) *Session {
	c := cfg.Client
	return &Session{
		cfg: cfg,
		sim: core.NewSimulator(level, core.DefaultTuning()),
		net: net,
		clock: clock.NewClientClock(clock.ClientConfig{
			TickDuration:     cfg.Sim.TickDuration(),
			LeadTicks:        c.LeadTicks,
			DriftAheadTicks:  c.DriftAheadTicks,
			DriftBehindTicks: c.DriftBehindTicks,
			DriftNudge:       c.DriftNudge,
			ResyncJumpTicks:  c.ResyncJumpTicks,
		}),
		interp:   NewInterpolator(c.MaxExtrapolationTicks, c.SnapThresholdPx),
		state:    StateConnecting,
		staleLog: rate.NewLimiter(rate.Every(staleLogInterval), 1),
	}
}

// Start 连接服务器并加入
func (s *Session) Start() error {
	if err := s.net.Connect(); err != nil {
		return err
	}
	s.onWelcome(s.net.Welcome(), time.Now())
	return nil
}

func (s *Session) onWelcome(w *protocol.Welcome, now time.Time) {
	s.predictor = NewPredictor(s.sim, w.PlayerID, PredictorConfig{
		Window:          s.cfg.Sim.RetentionTicks,
		SnapThresholdPx: s.cfg.Client.SnapThresholdPx,
		OffsetDecay:     s.cfg.Client.OffsetDecay,
	})
	s.clock.Reset()
	s.clock.ObserveServerTick(w.ServerTick, now)
	s.interp.Reset()
	s.hasInputAck = false
	s.setState(StateConnecting)
}

// Run 驱动 Update 直到 ctx 取消
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Sim.TickDuration() / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case now := <-ticker.C:
			s.Update(now)
		}
	}
}

// Close 离开服务器
func (s *Session) Close() {
	s.net.Leave()
	s.setState(StateClosed)
	s.publish(time.Now())
}

// SubmitInput 设置当前按住的操作，下一次预测时使用
func (s *Session) SubmitInput(c core.Controls) {
	s.mu.Lock()
	s.controls = c
	s.mu.Unlock()
}

// LatestRenderView 最近一次 Update 发布的渲染数据
func (s *Session) LatestRenderView() RenderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// State 只能在 Update 所在 goroutine 调用，渲染侧使用 RenderView.State
func (s *Session) State() State {
	return s.state
}

func (s *Session) Predictor() *Predictor {
	return s.predictor
}

// Update 处理网络消息、推进预测并发布渲染数据
func (s *Session) Update(now time.Time) {
	switch s.state {
	case StateClosed:
		return
	case StateReconnecting:
		s.tryReconnect(now)
		s.publish(now)
		return
	}

	if err := s.net.ReceiveError(); err != nil {
		log.Printf("连接断开: %v", err)
		s.beginReconnect(now)
		s.publish(now)
		return
	}

	for pong := s.net.ReceivePong(); pong != nil; pong = s.net.ReceivePong() {
		s.clock.ObserveRTT(now.Sub(time.UnixMilli(pong.SentAt)))
	}
	for frame := s.net.ReceiveSnapshot(); frame != nil; frame = s.net.ReceiveSnapshot() {
		s.handleFrame(frame, now)
	}

	if s.predictor.Synced() && s.state != StateResyncing {
		s.advance(now)
	}

	if now.Sub(s.lastPing) >= pingInterval {
		s.lastPing = now
		_ = s.net.SendPing(now)
	}

	s.publish(now)
}

func (s *Session) handleFrame(frame *protocol.SnapshotFrame, now time.Time) {
	snap, err := snapshot.Unmarshal(frame.Snapshot)
	if err != nil {
		log.Printf("快照解码失败: %v", err)
		return
	}

	rec, err := s.predictor.ApplySnapshot(snap)
	switch {
	case errors.Is(err, snapshot.ErrStaleSnapshot):
		metrics.RecordStaleSnapshot()
		s.staleDropped++
		if s.staleLog.AllowN(now, 1) {
			log.Printf("丢弃过期快照 tick %d (累计 %d 个)", snap.Tick, s.staleDropped)
		}
		return
	case snapshot.IsDesync(err):
		s.requestFull("desync")
		return
	case err != nil:
		log.Printf("应用快照失败: %v", err)
		return
	}

	s.clock.ObserveServerTick(frame.ServerTick, now)
	if frame.HasInputAck && (!s.hasInputAck || frame.InputAck > s.inputAck) {
		s.inputAck = frame.InputAck
		s.hasInputAck = true
	}
	if w, ok := s.predictor.tracker.Latest(); ok {
		s.interp.Add(w)
	}

	switch rec.Outcome {
	case OutcomeRolledBack:
		metrics.RecordRollback(rec.Replayed)
		if rec.Snapped {
			log.Printf("tick %d: 位置误差 %.1f px，直接拉回", rec.Tick, rec.ErrorPx)
		}
	case OutcomeResynced:
		metrics.RecordResync("record_evicted")
	}

	if s.state != StatePlaying {
		log.Printf("已同步到 tick %d (%s)", rec.Tick, rec.Outcome)
		s.setState(StatePlaying)
	}
}

// advance 按时钟推进预测
func (s *Session) advance(now time.Time) {
	predicted := s.predictor.Predicted()
	correction := s.clock.Correct(predicted, now)
	n := s.clock.Advance(now)
	if correction.Jump {
		if correction.JumpTo < predicted {
			log.Printf("预测领先目标 %d tick，重新同步", predicted-correction.JumpTo)
			s.resync("clock_jump")
			return
		}
		// 预测落后目标太多，一次补齐
		n = min(int(correction.JumpTo-predicted), s.cfg.Sim.RetentionTicks/2)
	}

	for i := 0; i < n; i++ {
		if !s.predictOne() {
			return
		}
	}
}

func (s *Session) predictOne() bool {
	s.mu.Lock()
	controls := s.controls
	s.mu.Unlock()

	if _, err := s.predictor.SubmitInput(controls); err != nil {
		log.Printf("记录输入失败: %v", err)
	}
	if _, err := s.predictor.Tick(); err != nil {
		if errors.Is(err, ErrRetentionWindowExceeded) {
			log.Printf("预测领先权威超过 %d tick", s.cfg.Sim.RetentionTicks)
			s.resync("retention")
		}
		return false
	}

	ack, hasAck := s.predictor.LastApplied()
	inputs := s.predictor.UnackedInputs(s.inputAck, s.hasInputAck, s.cfg.Client.InputRedundancy)
	if err := s.net.SendInputs(inputs, ack, hasAck); err != nil && !errors.Is(err, ErrSendQueueFull) {
		log.Printf("发送输入失败: %v", err)
	}
	return true
}

func (s *Session) requestFull(reason string) {
	now := time.Now()
	if s.state == StateResyncing && now.Sub(s.fullRequestedAt) < fullRequestRetry {
		return
	}
	s.fullRequestedAt = now

	metrics.RecordResync(reason)
	last, _ := s.predictor.LastApplied()
	if err := s.net.RequestFullSnapshot(last); err != nil {
		log.Printf("请求完整快照失败: %v", err)
	}
	s.setState(StateResyncing)
}

// resync 丢弃预测与时钟，等待完整快照重新开始
func (s *Session) resync(reason string) {
	s.requestFull(reason)
	s.predictor.Desync()
	s.clock.Reset()
	s.interp.Reset()
}

func (s *Session) beginReconnect(now time.Time) {
	s.net.Close()
	s.predictor.Desync()
	s.setState(StateReconnecting)
	s.reconnectAt = now
}

func (s *Session) tryReconnect(now time.Time) {
	if now.Before(s.reconnectAt) {
		return
	}
	if err := s.net.Connect(); err != nil {
		log.Printf("重连失败: %v", err)
		if errors.Is(err, ErrRejected) {
			// 令牌失效，作为新玩家加入
			s.net.SetSessionToken("")
		}
		s.reconnectAt = now.Add(reconnectBackoff)
		return
	}
	s.onWelcome(s.net.Welcome(), now)
	metrics.RecordResync("reconnect")
}

func (s *Session) setState(state State) {
	if s.state != state {
		log.Printf("会话状态: %s -> %s", s.state, state)
	}
	s.state = state
}

// publish 组装渲染数据
func (s *Session) publish(now time.Time) {
	view := RenderView{
		State: s.state,
		RTT:   s.clock.RTT(),
		Rate:  s.clock.Rate(),
	}

	if s.predictor != nil {
		view.LocalID = s.predictor.LocalPlayer()
		view.Tick = s.predictor.Predicted()

		view.RenderTick = s.clock.EstimateServerFloat(now) - s.cfg.Client.InterpolationDelayTicks
		for _, e := range s.interp.Sample(view.RenderTick) {
			if e.Kind == core.KindPlayer && e.Owner == view.LocalID {
				continue
			}
			view.Entities = append(view.Entities, e)
		}

		if world := s.predictor.World(); world != nil {
			if e, ok := world.PlayerEntity(view.LocalID); ok {
				local := renderEntity(e)
				ox, oy := s.predictor.RenderOffset()
				local.X += ox
				local.Y += oy
				view.Local = &local
			}
		}
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}
