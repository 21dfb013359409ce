package core

import (
	"errors"
	"fmt"
)

// Tile 地图格子类型
type Tile uint8

const (
	TileEmpty Tile = iota
	TileSolid
)

// Level 静态关卡（不属于 WorldState，客户端与服务器各自持有同一份）
type Level struct {
	Width  int // 格子数
	Height int
	tiles  []Tile

	Spawns []Vec
	items  []levelItem
}

type levelItem struct {
	kind    Kind
	variant uint8
	pos     Vec
}

// 默认关卡：#=实心, .=空地, S=出生点, H=血包, K=死亡区, B=弹射区
// 底部缺口掉出地图即死亡
var defaultLevelTemplate = []string{
	"################################",
	"#..............................#",
	"#....H..................H......#",
	"#..#######...........#######...#",
	"#..............................#",
	"#...........S.......S..........#",
	"#.......###########............#",
	"#..............................#",
	"#..S...........B..........S....#",
	"#######.....#######.....########",
	"#..............................#",
	"#.....H...............H........#",
	"#...S.......KKKK.........S.....#",
	"######..########..#######..#####",
	"......##........##.......##.....",
}

var ErrEmptyLevel = errors.New("关卡为空")

// ParseLevel 从文本模板解析关卡
func ParseLevel(rows []string) (*Level, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLevel
	}

	l := &Level{
		Width:  len(rows[0]),
		Height: len(rows),
		tiles:  make([]Tile, len(rows[0])*len(rows)),
	}

	for ty, row := range rows {
		if len(row) != l.Width {
			return nil, fmt.Errorf("第 %d 行宽度 %d，期望 %d", ty, len(row), l.Width)
		}
		for tx := 0; tx < l.Width; tx++ {
			center := tileCenter(tx, ty)
			switch row[tx] {
			case '#':
				l.tiles[ty*l.Width+tx] = TileSolid
			case '.':
			case 'S':
				l.Spawns = append(l.Spawns, center)
			case 'H':
				l.items = append(l.items, levelItem{kind: KindPickup, variant: PickupHealth, pos: center})
			case 'K':
				l.items = append(l.items, levelItem{kind: KindTrigger, variant: TriggerKill, pos: center})
			case 'B':
				l.items = append(l.items, levelItem{kind: KindTrigger, variant: TriggerBoost, pos: center})
			default:
				return nil, fmt.Errorf("未知地图字符 %q (%d, %d)", row[tx], tx, ty)
			}
		}
	}

	if len(l.Spawns) == 0 {
		return nil, errors.New("关卡没有出生点")
	}
	return l, nil
}

// DefaultLevel 内置关卡
func DefaultLevel() *Level {
	l, err := ParseLevel(defaultLevelTemplate)
	if err != nil {
		panic(err)
	}
	return l
}

func tileCenter(tx, ty int) Vec {
	return V(tx*TileSize+TileSize/2, ty*TileSize+TileSize/2)
}

// PixelSize 关卡像素尺寸
func (l *Level) PixelSize() (int, int) {
	return l.Width * TileSize, l.Height * TileSize
}

// TileAt 返回格子类型，越界视为空
func (l *Level) TileAt(tx, ty int) Tile {
	if tx < 0 || tx >= l.Width || ty < 0 || ty >= l.Height {
		return TileEmpty
	}
	return l.tiles[ty*l.Width+tx]
}

// solidAt 左右和顶部越界视为墙，底部越界为空（可以掉出地图）
func (l *Level) solidAt(tx, ty int) bool {
	if tx < 0 || tx >= l.Width || ty < 0 {
		return true
	}
	if ty >= l.Height {
		return false
	}
	return l.tiles[ty*l.Width+tx] == TileSolid
}

func tileIndex(v Fixed) int {
	t := int64(FromInt(TileSize))
	p := int64(v)
	if p < 0 {
		return int((p - t + 1) / t)
	}
	return int(p / t)
}

// BoxSolid 以 center 为中心、half 为半边长的盒子是否与实心格子重叠
func (l *Level) BoxSolid(center Vec, half Fixed) bool {
	x0 := tileIndex(center.X - half)
	x1 := tileIndex(center.X + half - 1)
	y0 := tileIndex(center.Y - half)
	y1 := tileIndex(center.Y + half - 1)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if l.solidAt(tx, ty) {
				return true
			}
		}
	}
	return false
}

// Grounded 盒子下方一像素是否有地面
func (l *Level) Grounded(pos Vec, half Fixed) bool {
	return l.BoxSolid(Vec{X: pos.X, Y: pos.Y + FixedOne}, half)
}

// KillY 低于该高度视为掉出地图
func (l *Level) KillY() Fixed {
	return FromInt((l.Height + 2) * TileSize)
}

// MoveResult 一次盒体移动的结果
type MoveResult struct {
	Pos  Vec
	Vel  Vec
	HitX bool
	HitY bool
}

// MoveBox 按速度移动盒体，先 X 后 Y 分轴处理，碰撞轴速度清零
func (l *Level) MoveBox(pos, vel Vec, half Fixed) MoveResult {
	res := MoveResult{Pos: pos, Vel: vel}
	res.Pos, res.HitX = l.moveAxis(res.Pos, vel.X, half, true)
	if res.HitX {
		res.Vel.X = 0
	}
	res.Pos, res.HitY = l.moveAxis(res.Pos, vel.Y, half, false)
	if res.HitY {
		res.Vel.Y = 0
	}
	return res
}

func (l *Level) moveAxis(pos Vec, delta, half Fixed, horizontal bool) (Vec, bool) {
	offset := func(p Vec, d Fixed) Vec {
		if horizontal {
			p.X += d
		} else {
			p.Y += d
		}
		return p
	}

	for delta != 0 {
		step := Clamp(delta, -maxMoveStep, maxMoveStep)
		next := offset(pos, step)
		if !l.BoxSolid(next, half) {
			pos = next
			delta -= step
			continue
		}
		// 二分逼近接触面
		for s := step / 2; s != 0; s /= 2 {
			if c := offset(pos, s); !l.BoxSolid(c, half) {
				pos = c
			}
		}
		return pos, true
	}
	return pos, false
}

// InitialWorld 关卡初始世界：放置道具和触发器，没有玩家
func (l *Level) InitialWorld(seed uint64) *WorldState {
	w := &WorldState{NextID: 1, Seed: seed}
	for _, it := range l.items {
		w.Entities = append(w.Entities, Entity{
			ID:      w.NextID,
			Kind:    it.kind,
			Pos:     it.pos,
			Variant: it.variant,
		})
		w.NextID++
	}
	return w
}
