package snapshot

import (
	"github.com/rotisserie/eris"
	"google.golang.org/protobuf/proto"

	platformerv1 "platformer/api/gen/platformer/v1"
	"platformer/pkg/core"
)

// Marshal 编码快照
func Marshal(s *Snapshot) ([]byte, error) {
	data, err := proto.Marshal(ToProto(s))
	if err != nil {
		return nil, eris.Wrapf(err, "快照 %d 编码失败", s.Tick)
	}
	return data, nil
}

// Unmarshal 解码快照
func Unmarshal(data []byte) (*Snapshot, error) {
	pb := &platformerv1.Snapshot{}
	if err := proto.Unmarshal(data, pb); err != nil {
		return nil, eris.Wrap(err, "快照解析失败")
	}
	return FromProto(pb), nil
}

// ToProto Snapshot -> 生成类型；增量中只写 Mask 置位的字段
func ToProto(s *Snapshot) *platformerv1.Snapshot {
	pb := &platformerv1.Snapshot{
		Tick:     uint32(s.Tick),
		Full:     s.Full,
		NextId:   uint32(s.NextID),
		Seed:     s.Seed,
		Entities: make([]*platformerv1.EntityDelta, 0, len(s.Entities)),
	}
	if !s.Full {
		pb.Baseline = uint32(s.Baseline)
	}
	for i := range s.Entities {
		pb.Entities = append(pb.Entities, deltaToProto(&s.Entities[i]))
	}
	if len(s.Removed) > 0 {
		pb.Removed = make([]uint32, len(s.Removed))
		for i, id := range s.Removed {
			pb.Removed[i] = uint32(id)
		}
	}
	return pb
}

func deltaToProto(d *EntityDelta) *platformerv1.EntityDelta {
	e := &d.Value
	pb := &platformerv1.EntityDelta{Id: uint32(d.ID), Mask: uint32(d.Mask)}
	if d.Mask&FieldKind != 0 {
		pb.Kind = uint32(e.Kind)
	}
	if d.Mask&FieldOwner != 0 {
		pb.Owner = uint32(e.Owner)
	}
	if d.Mask&FieldPosX != 0 {
		pb.PosX = int32(e.Pos.X)
	}
	if d.Mask&FieldPosY != 0 {
		pb.PosY = int32(e.Pos.Y)
	}
	if d.Mask&FieldVelX != 0 {
		pb.VelX = int32(e.Vel.X)
	}
	if d.Mask&FieldVelY != 0 {
		pb.VelY = int32(e.Vel.Y)
	}
	if d.Mask&FieldFlags != 0 {
		pb.Flags = uint32(e.Flags)
	}
	if d.Mask&FieldHealth != 0 {
		pb.Health = e.Health
	}
	if d.Mask&FieldTimer != 0 {
		pb.Timer = e.Timer
	}
	if d.Mask&FieldVariant != 0 {
		pb.Variant = uint32(e.Variant)
	}
	if d.Mask&FieldMove != 0 {
		pb.LastMove = int32(e.Last.Move)
	}
	if d.Mask&FieldJump != 0 {
		pb.LastJump = e.Last.Jump
	}
	if d.Mask&FieldFire != 0 {
		pb.LastFire = e.Last.Fire
	}
	if d.Mask&FieldAimX != 0 {
		pb.LastAimX = int32(e.Last.Aim.X)
	}
	if d.Mask&FieldAimY != 0 {
		pb.LastAimY = int32(e.Last.Aim.Y)
	}
	return pb
}

// FromProto 生成类型 -> Snapshot；未知的 mask 位被丢弃
func FromProto(pb *platformerv1.Snapshot) *Snapshot {
	s := &Snapshot{
		Tick:     core.Tick(pb.GetTick()),
		Baseline: core.Tick(pb.GetBaseline()),
		Full:     pb.GetFull(),
		NextID:   core.EntityID(pb.GetNextId()),
		Seed:     pb.GetSeed(),
	}
	if n := len(pb.GetEntities()); n > 0 {
		s.Entities = make([]EntityDelta, 0, n)
		for _, d := range pb.GetEntities() {
			s.Entities = append(s.Entities, deltaFromProto(d))
		}
	}
	for _, id := range pb.GetRemoved() {
		s.Removed = append(s.Removed, core.EntityID(id))
	}
	return s
}

func deltaFromProto(pb *platformerv1.EntityDelta) EntityDelta {
	d := EntityDelta{
		ID:   core.EntityID(pb.GetId()),
		Mask: Field(pb.GetMask()) & FieldAll,
	}
	d.Value = core.Entity{
		ID:      d.ID,
		Kind:    core.Kind(pb.GetKind()),
		Owner:   core.PlayerID(pb.GetOwner()),
		Pos:     core.Vec{X: core.Fixed(pb.GetPosX()), Y: core.Fixed(pb.GetPosY())},
		Vel:     core.Vec{X: core.Fixed(pb.GetVelX()), Y: core.Fixed(pb.GetVelY())},
		Flags:   core.Flags(pb.GetFlags()),
		Health:  pb.GetHealth(),
		Timer:   pb.GetTimer(),
		Variant: uint8(pb.GetVariant()),
		Last: core.Controls{
			Move: int8(pb.GetLastMove()),
			Jump: pb.GetLastJump(),
			Fire: pb.GetLastFire(),
			Aim:  core.Vec{X: core.Fixed(pb.GetLastAimX()), Y: core.Fixed(pb.GetLastAimY())},
		},
	}
	return d
}
