package timeline

import (
	"errors"
	"slices"

	"platformer/pkg/core"
)

// Policy 同一 (玩家, tick) 收到多份输入时的取舍
type Policy int

const (
	// KeepFirst 服务器：保留最先收到的输入
	KeepFirst Policy = iota
	// KeepLatest 客户端：tick 被模拟前以最后一次本地修改为准
	KeepLatest
)

var (
	ErrInputLate        = errors.New("输入已过期")
	ErrInputDuplicate   = errors.New("重复输入")
	ErrInputOutOfWindow = errors.New("输入超出保留窗口")
)

// InputHistory 按玩家、按 tick 保存输入
// Seal(t) 之后 <= t 的输入不可再修改：服务器已消费或客户端已模拟
type InputHistory struct {
	policy  Policy
	window  int
	players map[core.PlayerID]*Ring[core.PlayerInput]
	newest  map[core.PlayerID]core.Tick

	sealed    core.Tick
	hasSealed bool
}

// NewInputHistory 创建输入历史
func NewInputHistory(window int, policy Policy) *InputHistory {
	return &InputHistory{
		policy:  policy,
		window:  window,
		players: make(map[core.PlayerID]*Ring[core.PlayerInput]),
		newest:  make(map[core.PlayerID]core.Tick),
	}
}

// Submit 记录一份输入
func (h *InputHistory) Submit(in core.PlayerInput) error {
	if h.hasSealed && in.Tick <= h.sealed {
		return ErrInputLate
	}
	if in.Tick > h.sealed+core.Tick(h.window) {
		return ErrInputOutOfWindow
	}

	ring, ok := h.players[in.Player]
	if !ok {
		ring = NewRing[core.PlayerInput](h.window)
		h.players[in.Player] = ring
	}
	if _, exists := ring.Get(in.Tick); exists && h.policy == KeepFirst {
		return ErrInputDuplicate
	}
	ring.Put(in.Tick, in)

	if newest, ok := h.newest[in.Player]; !ok || in.Tick > newest {
		h.newest[in.Player] = in.Tick
	}
	return nil
}

// Get 读取玩家在 tick 的输入
func (h *InputHistory) Get(pid core.PlayerID, tick core.Tick) (core.PlayerInput, bool) {
	ring, ok := h.players[pid]
	if !ok {
		return core.PlayerInput{}, false
	}
	return ring.Get(tick)
}

// Collect 取出 tick 的输入，并返回没有输入的玩家（按 ID 升序）
func (h *InputHistory) Collect(tick core.Tick, players []core.PlayerID) (map[core.PlayerID]core.PlayerInput, []core.PlayerID) {
	inputs := make(map[core.PlayerID]core.PlayerInput, len(players))
	var missing []core.PlayerID
	for _, pid := range players {
		if in, ok := h.Get(pid, tick); ok {
			inputs[pid] = in
		} else {
			missing = append(missing, pid)
		}
	}
	slices.Sort(missing)
	return inputs, missing
}

// Range 返回玩家在 (from, to] 区间内已记录的输入，按 tick 升序
func (h *InputHistory) Range(pid core.PlayerID, from, to core.Tick) []core.PlayerInput {
	ring, ok := h.players[pid]
	if !ok || to <= from {
		return nil
	}
	if span := core.Tick(h.window); to-from > span {
		from = to - span
	}
	var out []core.PlayerInput
	for t := from + 1; t <= to; t++ {
		if in, ok := ring.Get(t); ok {
			out = append(out, in)
		}
	}
	return out
}

// Seal 封存 <= tick 的输入，只能前进
func (h *InputHistory) Seal(tick core.Tick) {
	if h.hasSealed && tick <= h.sealed {
		return
	}
	h.sealed = tick
	h.hasSealed = true
}

// Sealed 最近封存的 tick
func (h *InputHistory) Sealed() (core.Tick, bool) {
	return h.sealed, h.hasSealed
}

// Newest 玩家已提交的最大 tick（用于输入确认）
func (h *InputHistory) Newest(pid core.PlayerID) (core.Tick, bool) {
	t, ok := h.newest[pid]
	return t, ok
}

// RemovePlayer 丢弃玩家的全部输入
func (h *InputHistory) RemovePlayer(pid core.PlayerID) {
	delete(h.players, pid)
	delete(h.newest, pid)
}

// Reset 丢弃全部输入并解除封存
func (h *InputHistory) Reset() {
	clear(h.players)
	clear(h.newest)
	h.sealed = 0
	h.hasSealed = false
}
