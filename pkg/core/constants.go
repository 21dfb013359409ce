package core

// 模拟频率
const (
	TicksPerSecond = 50
)

// 地图配置（像素）
const (
	TileSize = 32
)

// 碰撞盒半边长
var (
	PlayerHalf     = FromInt(14) // 28x28
	ProjectileHalf = FromInt(4)
	PickupHalf     = FromInt(12)
	TriggerHalf    = FromInt(TileSize / 2)
)

// 单次位移子步长，小于最小碰撞盒防止穿墙
var maxMoveStep = FromInt(8)

// Tuning 物理与玩法参数（单位：像素/tick）
type Tuning struct {
	Gravity            Fixed
	GroundControlSpeed Fixed
	GroundControlAccel Fixed
	GroundFriction     Fixed
	GroundJumpImpulse  Fixed
	AirJumpImpulse     Fixed
	AirControlSpeed    Fixed
	AirControlAccel    Fixed
	AirFriction        Fixed
	MaxVelocity        Fixed

	ProjectileSpeed    Fixed
	ProjectileGravity  Fixed
	ProjectileLifetime int32
	ProjectileDamage   int32
	FireCooldown       int32

	MaxHealth    int32
	RespawnTicks int32

	PickupHeal         int32
	PickupRespawnTicks int32
	BoostImpulse       Fixed
}

// DefaultTuning 默认参数，数值换算自 50 TPS 下的经典平台跳跃手感
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:            FromRatio(1, 2),
		GroundControlSpeed: FromInt(10),
		GroundControlAccel: FromInt(2),
		GroundFriction:     FromRatio(1, 2),
		GroundJumpImpulse:  FromRatio(132, 10),
		AirJumpImpulse:     FromInt(12),
		AirControlSpeed:    FromInt(5),
		AirControlAccel:    FromRatio(3, 2),
		AirFriction:        FromRatio(95, 100),
		MaxVelocity:        FromInt(60),

		ProjectileSpeed:    FromInt(20),
		ProjectileGravity:  FromRatio(1, 4),
		ProjectileLifetime: 2 * TicksPerSecond,
		ProjectileDamage:   3,
		FireCooldown:       TicksPerSecond / 5,

		MaxHealth:    10,
		RespawnTicks: TicksPerSecond / 2,

		PickupHeal:         5,
		PickupRespawnTicks: 15 * TicksPerSecond,
		BoostImpulse:       FromInt(18),
	}
}
