package core

// EntityID 实体稳定标识，由 WorldState.NextID 单调分配
type EntityID uint32

// Kind 实体种类（封闭集合）
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindProjectile
	KindPickup
	KindTrigger

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindPickup:
		return "pickup"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Valid 是否为已知种类
func (k Kind) Valid() bool {
	return k >= KindPlayer && k < kindCount
}

// Flags 实体状态位
type Flags uint16

const (
	FlagGrounded   Flags = 1 << iota // 站在地面
	FlagJumpHeld                     // 跳跃键仍按住，松开前不会再次起跳
	FlagAirJumped                    // 空中二段跳已用
	FlagFacingLeft                   // 朝左
	FlagDead                         // 死亡等待重生
	flagRemoved                      // 本 tick 内待移除，不会出现在结果中
)

func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

func (f *Flags) set(mask Flags, on bool) {
	if on {
		*f |= mask
	} else {
		*f &^= mask
	}
}

// 道具与触发器的变体
const (
	PickupHealth uint8 = 1

	TriggerKill  uint8 = 1
	TriggerBoost uint8 = 2
)

// Entity 模拟实体。值类型且可比较，WorldState 之间可以直接逐字段对比
//
// 各字段按种类解释：
//   - Player: Owner 为控制者，Timer 存活时为开火冷却、死亡时为重生倒计时，Last 为上一 tick 的操作
//   - Projectile: Owner 为发射者，Timer 为剩余寿命
//   - Pickup: Timer 为重生倒计时（0 表示可拾取），Variant 为道具类型
//   - Trigger: Variant 为触发效果
type Entity struct {
	ID      EntityID
	Kind    Kind
	Owner   PlayerID
	Pos     Vec
	Vel     Vec
	Flags   Flags
	Health  int32
	Timer   int32
	Variant uint8
	Last    Controls
}

// Alive 玩家是否存活
func (e *Entity) Alive() bool {
	return e.Kind == KindPlayer && !e.Flags.Has(FlagDead)
}

// Half 碰撞盒半边长
func (e *Entity) Half() Fixed {
	switch e.Kind {
	case KindPlayer:
		return PlayerHalf
	case KindProjectile:
		return ProjectileHalf
	case KindPickup:
		return PickupHalf
	default:
		return TriggerHalf
	}
}

// Overlaps 两个实体的碰撞盒是否相交
func (e *Entity) Overlaps(o *Entity) bool {
	return boxOverlap(e.Pos, e.Half(), o.Pos, o.Half())
}

func boxOverlap(a Vec, ah Fixed, b Vec, bh Fixed) bool {
	return (a.X-b.X).Abs() < ah+bh && (a.Y-b.Y).Abs() < ah+bh
}
