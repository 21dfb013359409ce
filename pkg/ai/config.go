package ai

// BotConfig 机器人的行为参数，用于控制智力水平
type BotConfig struct {
	// ThinkIntervalTicks 思考间隔（tick），值越小反应越快
	ThinkIntervalTicks int

	// MistakeRate 随机失误率 (0.0-1.0)
	MistakeRate float64

	// FireRangePx 开火距离
	FireRangePx int

	// AimJitterPx 瞄准随机偏移
	AimJitterPx int

	// LowHealth 生命值低于该值时优先找血包
	LowHealth int32
}

// 普通难度
var BotConfigNormal = BotConfig{
	ThinkIntervalTicks: 10, // 0.2s
	MistakeRate:        0.05,
	FireRangePx:        320,
	AimJitterPx:        24,
	LowHealth:          4,
}

// 困难难度
var BotConfigHard = BotConfig{
	ThinkIntervalTicks: 3,
	MistakeRate:        0,
	FireRangePx:        480,
	AimJitterPx:        4,
	LowHealth:          6,
}
