package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"platformer/internal/config"
	"platformer/internal/metrics"
	"platformer/pkg/ai"
	"platformer/pkg/clock"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/replay"
	"platformer/pkg/timeline"
)

const (
	// 一次定时器事件最多补跑的 tick 数，避免长时间阻塞加入与离开
	maxCatchUpTicks = 10
	statsLogSeconds = 5
)

var (
	ErrRoomFull   = errors.New("服务器已满")
	ErrRoomClosed = errors.New("房间已关闭")
)

// Room 权威模拟循环：唯一拥有世界、输入历史与世界历史的 goroutine
type Room struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg    config.Config
	sim    *core.Simulator
	clock  *clock.ServerClock
	world  *core.WorldState
	store  *timeline.WorldStore
	inputs *timeline.InputHistory
	tokens *TokenIssuer
	sink   replay.Sink

	sessions     map[core.PlayerID]Session
	players      map[core.PlayerID]*playerSlot
	bots         []*ai.Controller
	nextPlayerID core.PlayerID

	// 在下一次 Step 之后生效的成员变化
	pendingJoins  []core.PlayerID
	pendingLeaves []core.PlayerID

	joinCh  chan joinRequest
	leaveCh chan leaveRequest

	currentTick   atomic.Uint32
	encodeWorkers int
	stats         roomStats
	behindWarned  bool
}

type playerSlot struct {
	name      string
	bot       bool
	gaps      uint64
	gapStreak int
}

type joinRequest struct {
	session Session
	hello   *protocol.Hello
	respCh  chan error
}

type leaveRequest struct {
	playerID core.PlayerID
	session  Session
}

// NewRoom 创建房间，机器人在第一个 tick 之后出现
func NewRoom(parent context.Context, cfg config.Config, level *core.Level, tokens *TokenIssuer, sink replay.Sink) *Room {
	ctx, cancel := context.WithCancel(parent)

	world := level.InitialWorld(cfg.Sim.Seed)
	store := timeline.NewWorldStore(cfg.Sim.RetentionTicks)
	_ = store.Put(world)

	r := &Room{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           cfg,
		sim:           core.NewSimulator(level, core.DefaultTuning()),
		clock:         clock.NewServerClock(cfg.Sim.TickDuration(), nil),
		world:         world,
		store:         store,
		inputs:        timeline.NewInputHistory(cfg.Sim.RetentionTicks, timeline.KeepFirst),
		tokens:        tokens,
		sink:          sink,
		sessions:      make(map[core.PlayerID]Session),
		players:       make(map[core.PlayerID]*playerSlot),
		nextPlayerID:  1,
		joinCh:        make(chan joinRequest),
		leaveCh:       make(chan leaveRequest, 256),
		encodeWorkers: 4,
	}
	r.inputs.Seal(world.Tick)

	for i := 0; i < cfg.Bots.Count; i++ {
		pid := r.allocatePlayerID()
		r.players[pid] = &playerSlot{name: fmt.Sprintf("bot-%d", i+1), bot: true}
		r.bots = append(r.bots, ai.NewController(pid, level, cfg.Bots.Seed+int64(i)))
		r.pendingJoins = append(r.pendingJoins, pid)
	}
	return r
}

func (r *Room) Run(wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(r.clock.TickDuration())
	defer ticker.Stop()

	log.Printf("房间循环启动: %d TPS, 保留 %d tick", r.cfg.Sim.TickRate, r.cfg.Sim.RetentionTicks)

	for {
		select {
		case <-r.ctx.Done():
			r.closeAllSessions()
			r.closeSink()
			log.Println("房间循环停止")
			return

		case req := <-r.joinCh:
			req.respCh <- r.handleJoin(req)

		case req := <-r.leaveCh:
			r.handleLeave(req)

		case <-ticker.C:
			r.advance()
		}
	}
}

func (r *Room) Shutdown() {
	r.cancel()
}

// Join 由连接 goroutine 调用，阻塞到房间处理完毕
func (r *Room) Join(s Session, hello *protocol.Hello) error {
	respCh := make(chan error, 1)

	select {
	case <-r.ctx.Done():
		return ErrRoomClosed
	case r.joinCh <- joinRequest{session: s, hello: hello, respCh: respCh}:
	}

	select {
	case <-r.ctx.Done():
		return ErrRoomClosed
	case err := <-respCh:
		return err
	}
}

func (r *Room) Leave(pid core.PlayerID, s Session) {
	select {
	case <-r.ctx.Done():
	case r.leaveCh <- leaveRequest{playerID: pid, session: s}:
	}
}

// CurrentTick 最新发布的世界 tick，可在任意 goroutine 读取
func (r *Room) CurrentTick() core.Tick {
	return core.Tick(r.currentTick.Load())
}

// InputGaps 玩家累计以默认输入替代的 tick 数
//
// 读取房间内部状态，只能在房间 goroutine 中调用（或房间循环未启动时）。
func (r *Room) InputGaps(pid core.PlayerID) uint64 {
	if slot, ok := r.players[pid]; ok {
		return slot.gaps
	}
	return 0
}

func (r *Room) allocatePlayerID() core.PlayerID {
	pid := r.nextPlayerID
	r.nextPlayerID++
	return pid
}

func (r *Room) handleJoin(req joinRequest) error {
	name := req.hello.Name
	reconnected := false
	var pid core.PlayerID

	if req.hello.SessionToken != "" {
		id, err := r.tokens.Verify(req.hello.SessionToken)
		if err != nil {
			return err
		}
		pid = id
		reconnected = true
		if _, ok := r.players[pid]; !ok && len(r.players) >= r.cfg.Net.MaxPlayers {
			return ErrRoomFull
		}
		if pid >= r.nextPlayerID {
			r.nextPlayerID = pid + 1
		}
		if old, ok := r.sessions[pid]; ok && old != req.session {
			log.Printf("玩家 %d: 新连接接管会话", pid)
			old.CloseWithoutNotify()
		}
		// 旧连接排队的未来输入作废，由新连接重新提交
		r.inputs.RemovePlayer(pid)
		if i := slices.Index(r.pendingLeaves, pid); i >= 0 {
			r.pendingLeaves = slices.Delete(r.pendingLeaves, i, i+1)
		} else if _, inWorld := r.world.PlayerEntity(pid); !inWorld && !slices.Contains(r.pendingJoins, pid) {
			r.pendingJoins = append(r.pendingJoins, pid)
		}
		if slot, ok := r.players[pid]; ok && name == "" {
			name = slot.name
		}
	} else {
		if len(r.players) >= r.cfg.Net.MaxPlayers {
			return ErrRoomFull
		}
		pid = r.allocatePlayerID()
		r.pendingJoins = append(r.pendingJoins, pid)
	}

	token, err := r.tokens.Generate(pid)
	if err != nil {
		return fmt.Errorf("签发会话令牌失败: %w", err)
	}

	slot, ok := r.players[pid]
	if !ok {
		slot = &playerSlot{}
		r.players[pid] = slot
	}
	slot.name = name
	slot.gapStreak = 0

	req.session.SetPlayerID(pid)
	req.session.Ack().Reset()
	r.sessions[pid] = req.session

	welcome := &protocol.Welcome{
		PlayerID:         pid,
		SessionToken:     token,
		TickRate:         uint32(r.cfg.Sim.TickRate),
		ServerTick:       r.world.Tick,
		SnapshotInterval: uint32(r.cfg.Sim.SnapshotInterval),
		Reconnected:      reconnected,
	}
	data, err := protocol.Encode(protocol.NewWelcomePacket(welcome))
	if err != nil {
		return fmt.Errorf("编码欢迎消息失败: %w", err)
	}
	if err := req.session.Send(data); err != nil {
		return fmt.Errorf("发送欢迎消息失败: %w", err)
	}

	if reconnected {
		log.Printf("玩家 %d (%s): 重连成功, tick %d", pid, name, r.world.Tick)
	} else {
		log.Printf("玩家 %d (%s): 加入房间, tick %d", pid, name, r.world.Tick)
	}
	return nil
}

func (r *Room) handleLeave(req leaveRequest) {
	current, ok := r.sessions[req.playerID]
	if !ok || current != req.session {
		// 已被重连替换
		return
	}
	delete(r.sessions, req.playerID)
	delete(r.players, req.playerID)
	r.inputs.RemovePlayer(req.playerID)

	if i := slices.Index(r.pendingJoins, req.playerID); i >= 0 {
		r.pendingJoins = slices.Delete(r.pendingJoins, i, i+1)
	} else {
		r.pendingLeaves = append(r.pendingLeaves, req.playerID)
	}

	log.Printf("玩家 %d: 离开房间", req.playerID)
}

// advance 追上墙钟对应的 tick
func (r *Room) advance() {
	target := r.clock.NowTick()
	for n := 0; r.world.Tick < target && n < maxCatchUpTicks; n++ {
		r.tick()
	}

	behind := r.world.Tick < target
	if behind && !r.behindWarned {
		log.Printf("模拟落后墙钟: tick %d, 目标 %d", r.world.Tick, target)
	}
	r.behindWarned = behind
}

// tick 推进一个 tick：收集输入、模拟、记录、广播
func (r *Room) tick() {
	start := time.Now()
	next := r.world.Tick + 1

	r.drainInputs()
	r.submitBotInputs(next)

	players := r.world.Players()
	inputs, missing := r.inputs.Collect(next, players)
	r.recordGaps(next, players, missing)

	world := r.sim.Step(r.world, inputs)
	world = r.applyMembership(world)

	if err := r.store.Put(world); err != nil {
		log.Printf("写入世界历史失败: %v", err)
	}
	r.inputs.Seal(next)
	r.world = world
	r.currentTick.Store(uint32(world.Tick))

	if r.sink != nil {
		if err := r.sink.Record(world); err != nil {
			log.Printf("录像写入失败，停止录制: %v", err)
			r.closeSink()
		}
	}

	if int(world.Tick)%r.cfg.Sim.SnapshotInterval == 0 {
		r.broadcast(world)
	}

	metrics.RecordTick(time.Since(start))
	metrics.SetPlayers(len(world.Players()))
	r.maybeLogStats(world.Tick)
}

// drainInputs 按玩家 ID 顺序取出各连接收到的输入
func (r *Room) drainInputs() {
	ids := make([]core.PlayerID, 0, len(r.sessions))
	for pid := range r.sessions {
		ids = append(ids, pid)
	}
	slices.Sort(ids)

	for _, pid := range ids {
		r.sessions[pid].DrainInputs(func(in core.PlayerInput) {
			in.Controls = in.Controls.Sanitize()
			if err := r.inputs.Submit(in); err != nil {
				metrics.RecordInputRejected(rejectReason(err))
			}
		})
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, timeline.ErrInputLate):
		return "late"
	case errors.Is(err, timeline.ErrInputDuplicate):
		return "duplicate"
	case errors.Is(err, timeline.ErrInputOutOfWindow):
		return "out_of_window"
	default:
		return "other"
	}
}

func (r *Room) submitBotInputs(next core.Tick) {
	for _, bot := range r.bots {
		if _, ok := r.world.PlayerEntity(bot.PlayerID); !ok {
			continue
		}
		controls := bot.Decide(r.world)
		_ = r.inputs.Submit(core.PlayerInput{Player: bot.PlayerID, Tick: next, Controls: controls})
	}
}

// recordGaps 统计缺失输入，连续缺失只在开始和恢复时打日志
func (r *Room) recordGaps(tick core.Tick, players, missing []core.PlayerID) {
	if len(missing) > 0 {
		metrics.AddInputGaps(len(missing))
	}

	for _, pid := range players {
		slot, ok := r.players[pid]
		if !ok {
			continue
		}
		if slices.Contains(missing, pid) {
			slot.gaps++
			if slot.gapStreak == 0 {
				log.Printf("玩家 %d: tick %d 起缺少输入，沿用上一操作", pid, tick)
			}
			slot.gapStreak++
		} else if slot.gapStreak > 0 {
			log.Printf("玩家 %d: 输入恢复，缺失 %d 个 tick", pid, slot.gapStreak)
			slot.gapStreak = 0
		}
	}
}

func (r *Room) applyMembership(world *core.WorldState) *core.WorldState {
	for _, pid := range r.pendingLeaves {
		world = r.sim.RemovePlayer(world, pid)
	}
	for _, pid := range r.pendingJoins {
		world = r.sim.AddPlayer(world, pid)
	}
	r.pendingLeaves = r.pendingLeaves[:0]
	r.pendingJoins = r.pendingJoins[:0]
	return world
}

func (r *Room) closeAllSessions() {
	for pid, s := range r.sessions {
		s.CloseWithoutNotify()
		delete(r.sessions, pid)
	}
}

func (r *Room) closeSink() {
	if r.sink == nil {
		return
	}
	if err := r.sink.Close(); err != nil {
		log.Printf("关闭录像失败: %v", err)
	}
	r.sink = nil
}
