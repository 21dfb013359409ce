package core

import (
	"fmt"
	"slices"
)

// WorldState 某个 tick 的完整模拟状态
// 发布后不可变：所有修改都返回新的 WorldState
type WorldState struct {
	Tick     Tick
	NextID   EntityID
	Seed     uint64   // 确定性随机数状态
	Entities []Entity // 按 ID 升序
}

// Clone 深拷贝
func (w *WorldState) Clone() *WorldState {
	c := *w
	c.Entities = slices.Clone(w.Entities)
	return &c
}

// Equal 逐字段精确比较（整数状态无需归一化）
func (w *WorldState) Equal(o *WorldState) bool {
	if w == nil || o == nil {
		return w == o
	}
	return w.Tick == o.Tick &&
		w.NextID == o.NextID &&
		w.Seed == o.Seed &&
		slices.Equal(w.Entities, o.Entities)
}

// Find 按 ID 查找实体
func (w *WorldState) Find(id EntityID) (Entity, bool) {
	i, ok := slices.BinarySearchFunc(w.Entities, id, func(e Entity, id EntityID) int {
		switch {
		case e.ID < id:
			return -1
		case e.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return Entity{}, false
	}
	return w.Entities[i], true
}

// PlayerEntity 查找玩家控制的角色实体
func (w *WorldState) PlayerEntity(pid PlayerID) (Entity, bool) {
	for _, e := range w.Entities {
		if e.Kind == KindPlayer && e.Owner == pid {
			return e, true
		}
	}
	return Entity{}, false
}

// Players 世界中的玩家，按实体顺序
func (w *WorldState) Players() []PlayerID {
	var out []PlayerID
	for _, e := range w.Entities {
		if e.Kind == KindPlayer {
			out = append(out, e.Owner)
		}
	}
	return out
}

// Validate 检查实体按 ID 严格升序且 ID 小于 NextID
func (w *WorldState) Validate() error {
	for i, e := range w.Entities {
		if !e.Kind.Valid() {
			return fmt.Errorf("实体 %d 种类非法: %d", e.ID, e.Kind)
		}
		if e.ID >= w.NextID {
			return fmt.Errorf("实体 %d 超出 NextID %d", e.ID, w.NextID)
		}
		if i > 0 && w.Entities[i-1].ID >= e.ID {
			return fmt.Errorf("实体顺序错误: %d 在 %d 之后", e.ID, w.Entities[i-1].ID)
		}
	}
	return nil
}

func (w *WorldState) String() string {
	return fmt.Sprintf("World{tick=%d, entities=%d}", w.Tick, len(w.Entities))
}
