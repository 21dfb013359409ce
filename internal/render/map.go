package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"platformer/pkg/core"
)

var (
	colorSky      = color.RGBA{40, 44, 52, 255}
	colorSolid    = color.RGBA{96, 96, 104, 255}
	colorSolidTop = color.RGBA{140, 140, 150, 255}
)

// LevelRenderer 关卡渲染器，静态格子只绘制一次
type LevelRenderer struct {
	level *core.Level
	cache *ebiten.Image
}

// NewLevelRenderer 创建关卡渲染器
func NewLevelRenderer(level *core.Level) *LevelRenderer {
	return &LevelRenderer{level: level}
}

// Draw 绘制关卡
func (m *LevelRenderer) Draw(screen *ebiten.Image) {
	if m.cache == nil {
		w, h := m.level.PixelSize()
		m.cache = ebiten.NewImage(w, h)
		m.render(m.cache)
	}
	screen.DrawImage(m.cache, nil)
}

func (m *LevelRenderer) render(dst *ebiten.Image) {
	dst.Fill(colorSky)
	for y := 0; y < m.level.Height; y++ {
		for x := 0; x < m.level.Width; x++ {
			if m.level.TileAt(x, y) != core.TileSolid {
				continue
			}
			px := float32(x * core.TileSize)
			py := float32(y * core.TileSize)
			vector.DrawFilledRect(dst, px, py, core.TileSize, core.TileSize, colorSolid, false)
			vector.StrokeRect(dst, px, py, core.TileSize, core.TileSize, 1, color.RGBA{0, 0, 0, 100}, false)

			// 上方为空时画出可站立的表面
			if m.level.TileAt(x, y-1) != core.TileSolid {
				vector.StrokeLine(dst, px, py+1, px+core.TileSize, py+1, 2, colorSolidTop, false)
			}
		}
	}
}
