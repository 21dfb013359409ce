package core

// Simulator 固定步长确定性模拟
// Step 为纯函数：相同的 (prev, inputs) 在任何机器上得到逐位相同的结果
type Simulator struct {
	level    *Level
	tuning   Tuning
	handlers [kindCount]entityHandler
}

// entityHandler 单个实体在一个 tick 内的更新
type entityHandler func(ctx *stepContext, e *Entity)

// 种类处理顺序固定，同种类内按 ID 升序
var phaseOrder = [...]Kind{KindPlayer, KindProjectile, KindPickup, KindTrigger}

// NewSimulator 创建模拟器
func NewSimulator(level *Level, tuning Tuning) *Simulator {
	s := &Simulator{level: level, tuning: tuning}
	s.handlers[KindPlayer] = stepPlayer
	s.handlers[KindProjectile] = stepProjectile
	s.handlers[KindPickup] = stepPickup
	s.handlers[KindTrigger] = stepTrigger
	return s
}

func (s *Simulator) Level() *Level {
	return s.level
}

func (s *Simulator) Tuning() Tuning {
	return s.tuning
}

// stepContext 一次 Step 的可变工作区
type stepContext struct {
	sim      *Simulator
	tick     Tick
	inputs   map[PlayerID]PlayerInput
	entities []Entity
	spawned  []Entity
	nextID   EntityID
	seed     uint64
}

func (ctx *stepContext) random() uint64 {
	var v uint64
	ctx.seed, v = nextRandom(ctx.seed)
	return v
}

func (ctx *stepContext) spawn(e Entity) {
	e.ID = ctx.nextID
	ctx.nextID++
	ctx.spawned = append(ctx.spawned, e)
}

// Step 由 prev 推进一个 tick，inputs 为 prev.Tick+1 的输入
// 缺失输入的玩家按 DefaultControls 处理
func (s *Simulator) Step(prev *WorldState, inputs map[PlayerID]PlayerInput) *WorldState {
	ctx := &stepContext{
		sim:      s,
		tick:     prev.Tick + 1,
		inputs:   inputs,
		entities: make([]Entity, len(prev.Entities), len(prev.Entities)+4),
		nextID:   prev.NextID,
		seed:     prev.Seed,
	}
	copy(ctx.entities, prev.Entities)

	for _, kind := range phaseOrder {
		handle := s.handlers[kind]
		for i := range ctx.entities {
			e := &ctx.entities[i]
			if e.Kind != kind || e.Flags.Has(flagRemoved) {
				continue
			}
			handle(ctx, e)
		}
	}

	out := ctx.entities[:0]
	for _, e := range ctx.entities {
		if !e.Flags.Has(flagRemoved) {
			out = append(out, e)
		}
	}
	// 新实体 ID 更大，追加后仍然有序
	out = append(out, ctx.spawned...)

	return &WorldState{
		Tick:     ctx.tick,
		NextID:   ctx.nextID,
		Seed:     ctx.seed,
		Entities: out,
	}
}

// AddPlayer 返回加入了玩家角色的新世界，玩家已存在时原样返回
func (s *Simulator) AddPlayer(w *WorldState, pid PlayerID) *WorldState {
	if _, ok := w.PlayerEntity(pid); ok {
		return w
	}
	next := w.Clone()
	seed, r := nextRandom(next.Seed)
	next.Seed = seed
	next.Entities = append(next.Entities, Entity{
		ID:     next.NextID,
		Kind:   KindPlayer,
		Owner:  pid,
		Pos:    s.level.Spawns[r%uint64(len(s.level.Spawns))],
		Health: s.tuning.MaxHealth,
	})
	next.NextID++
	return next
}

// RemovePlayer 返回移除了玩家角色的新世界，玩家的子弹保留
func (s *Simulator) RemovePlayer(w *WorldState, pid PlayerID) *WorldState {
	if _, ok := w.PlayerEntity(pid); !ok {
		return w
	}
	next := w.Clone()
	next.Entities = next.Entities[:0]
	for _, e := range w.Entities {
		if e.Kind == KindPlayer && e.Owner == pid {
			continue
		}
		next.Entities = append(next.Entities, e)
	}
	return next
}
