// Package snapshot 世界状态的完整/增量编码
package snapshot

import (
	"slices"

	"github.com/rotisserie/eris"

	"platformer/pkg/core"
)

// Field 实体字段位，增量中只携带变化的字段
type Field uint32

const (
	FieldKind Field = 1 << iota
	FieldOwner
	FieldPosX
	FieldPosY
	FieldVelX
	FieldVelY
	FieldFlags
	FieldHealth
	FieldTimer
	FieldVariant
	FieldMove
	FieldJump
	FieldFire
	FieldAimX
	FieldAimY

	FieldAll Field = 1<<iota - 1
)

// EntityDelta 一个实体的变化；新增实体 Mask 为 FieldAll
type EntityDelta struct {
	ID    core.EntityID
	Mask  Field
	Value core.Entity // 只有 Mask 中的字段有意义
}

// Snapshot tick 时刻的世界，完整或相对 Baseline 的增量
type Snapshot struct {
	Tick     core.Tick
	Baseline core.Tick
	Full     bool
	NextID   core.EntityID
	Seed     uint64
	Entities []EntityDelta
	Removed  []core.EntityID
}

// changedFields 计算 a -> b 的字段差异
func changedFields(a, b *core.Entity) Field {
	var m Field
	if a.Kind != b.Kind {
		m |= FieldKind
	}
	if a.Owner != b.Owner {
		m |= FieldOwner
	}
	if a.Pos.X != b.Pos.X {
		m |= FieldPosX
	}
	if a.Pos.Y != b.Pos.Y {
		m |= FieldPosY
	}
	if a.Vel.X != b.Vel.X {
		m |= FieldVelX
	}
	if a.Vel.Y != b.Vel.Y {
		m |= FieldVelY
	}
	if a.Flags != b.Flags {
		m |= FieldFlags
	}
	if a.Health != b.Health {
		m |= FieldHealth
	}
	if a.Timer != b.Timer {
		m |= FieldTimer
	}
	if a.Variant != b.Variant {
		m |= FieldVariant
	}
	if a.Last.Move != b.Last.Move {
		m |= FieldMove
	}
	if a.Last.Jump != b.Last.Jump {
		m |= FieldJump
	}
	if a.Last.Fire != b.Last.Fire {
		m |= FieldFire
	}
	if a.Last.Aim.X != b.Last.Aim.X {
		m |= FieldAimX
	}
	if a.Last.Aim.Y != b.Last.Aim.Y {
		m |= FieldAimY
	}
	return m
}

// applyFields 把 src 中 mask 指定的字段写入 dst
func applyFields(dst *core.Entity, src *core.Entity, mask Field) {
	if mask&FieldKind != 0 {
		dst.Kind = src.Kind
	}
	if mask&FieldOwner != 0 {
		dst.Owner = src.Owner
	}
	if mask&FieldPosX != 0 {
		dst.Pos.X = src.Pos.X
	}
	if mask&FieldPosY != 0 {
		dst.Pos.Y = src.Pos.Y
	}
	if mask&FieldVelX != 0 {
		dst.Vel.X = src.Vel.X
	}
	if mask&FieldVelY != 0 {
		dst.Vel.Y = src.Vel.Y
	}
	if mask&FieldFlags != 0 {
		dst.Flags = src.Flags
	}
	if mask&FieldHealth != 0 {
		dst.Health = src.Health
	}
	if mask&FieldTimer != 0 {
		dst.Timer = src.Timer
	}
	if mask&FieldVariant != 0 {
		dst.Variant = src.Variant
	}
	if mask&FieldMove != 0 {
		dst.Last.Move = src.Last.Move
	}
	if mask&FieldJump != 0 {
		dst.Last.Jump = src.Last.Jump
	}
	if mask&FieldFire != 0 {
		dst.Last.Fire = src.Last.Fire
	}
	if mask&FieldAimX != 0 {
		dst.Last.Aim.X = src.Last.Aim.X
	}
	if mask&FieldAimY != 0 {
		dst.Last.Aim.Y = src.Last.Aim.Y
	}
}

// Diff 生成 target 的快照；baseline 为 nil 时生成完整快照
// 增量只包含新增实体、移除的 ID 和发生变化的字段
func Diff(target, baseline *core.WorldState) *Snapshot {
	s := &Snapshot{
		Tick:   target.Tick,
		NextID: target.NextID,
		Seed:   target.Seed,
	}

	if baseline == nil {
		s.Full = true
		s.Entities = make([]EntityDelta, len(target.Entities))
		for i, e := range target.Entities {
			s.Entities[i] = EntityDelta{ID: e.ID, Mask: FieldAll, Value: e}
		}
		return s
	}

	s.Baseline = baseline.Tick
	// 两侧都按 ID 升序，归并遍历
	i, j := 0, 0
	for i < len(target.Entities) || j < len(baseline.Entities) {
		switch {
		case j >= len(baseline.Entities) || (i < len(target.Entities) && target.Entities[i].ID < baseline.Entities[j].ID):
			e := target.Entities[i]
			s.Entities = append(s.Entities, EntityDelta{ID: e.ID, Mask: FieldAll, Value: e})
			i++
		case i >= len(target.Entities) || baseline.Entities[j].ID < target.Entities[i].ID:
			s.Removed = append(s.Removed, baseline.Entities[j].ID)
			j++
		default:
			if m := changedFields(&baseline.Entities[j], &target.Entities[i]); m != 0 {
				s.Entities = append(s.Entities, EntityDelta{ID: target.Entities[i].ID, Mask: m, Value: target.Entities[i]})
			}
			i++
			j++
		}
	}
	return s
}

// Apply 由快照重建世界
// 增量快照要求 baseline 恰好是快照引用的 tick，否则返回 *DesyncError
func Apply(s *Snapshot, baseline *core.WorldState) (*core.WorldState, error) {
	if !s.Full && (baseline == nil || baseline.Tick != s.Baseline) {
		return nil, &DesyncError{Tick: s.Tick, Baseline: s.Baseline}
	}

	w := &core.WorldState{
		Tick:   s.Tick,
		NextID: s.NextID,
		Seed:   s.Seed,
	}

	if s.Full {
		w.Entities = make([]core.Entity, 0, len(s.Entities))
		for _, d := range s.Entities {
			e := core.Entity{ID: d.ID}
			applyFields(&e, &d.Value, d.Mask)
			w.Entities = append(w.Entities, e)
		}
	} else {
		changes := make(map[core.EntityID]*EntityDelta, len(s.Entities))
		for i := range s.Entities {
			changes[s.Entities[i].ID] = &s.Entities[i]
		}

		w.Entities = make([]core.Entity, 0, len(baseline.Entities)+len(s.Entities))
		for _, e := range baseline.Entities {
			if slices.Contains(s.Removed, e.ID) {
				continue
			}
			if d, ok := changes[e.ID]; ok {
				applyFields(&e, &d.Value, d.Mask)
				delete(changes, e.ID)
			}
			w.Entities = append(w.Entities, e)
		}
		for _, d := range s.Entities {
			if _, ok := changes[d.ID]; !ok {
				continue
			}
			e := core.Entity{ID: d.ID}
			applyFields(&e, &d.Value, d.Mask)
			w.Entities = append(w.Entities, e)
		}
		slices.SortFunc(w.Entities, func(a, b core.Entity) int {
			return int(int64(a.ID) - int64(b.ID))
		})
	}

	if err := w.Validate(); err != nil {
		return nil, eris.Wrapf(err, "快照 %d 内容非法", s.Tick)
	}
	return w, nil
}
