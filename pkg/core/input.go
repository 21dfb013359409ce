package core

// Tick 模拟时间单位，一次固定步长
type Tick uint32

// PlayerID 玩家标识，0 表示无
type PlayerID uint32

// Controls 一个 tick 内玩家的操作
type Controls struct {
	Move int8 // -1 左, 0 不动, 1 右
	Jump bool // 按住跳跃
	Fire bool
	Aim  Vec // 瞄准方向（相对玩家，不要求归一化）
}

// PlayerInput 带 tick 标签的输入，(Player, Tick) 唯一
type PlayerInput struct {
	Player PlayerID
	Tick   Tick
	Controls
}

var maxAim = FromInt(4096)

// Sanitize 裁剪来自网络的非法取值
func (c Controls) Sanitize() Controls {
	switch {
	case c.Move < 0:
		c.Move = -1
	case c.Move > 0:
		c.Move = 1
	}
	c.Aim.X = Clamp(c.Aim.X, -maxAim, maxAim)
	c.Aim.Y = Clamp(c.Aim.Y, -maxAim, maxAim)
	return c
}

// DefaultControls 缺失输入时的替代策略：沿用上一 tick 的操作，但不重复开火
// 服务器与客户端预测使用同一策略
func DefaultControls(last Controls) Controls {
	last.Fire = false
	return last
}
