package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"platformer/internal/client"
	"platformer/pkg/core"
)

// 玩家配色，按玩家 ID 循环使用
var playerPalette = []color.RGBA{
	{240, 240, 240, 255}, // 白
	{230, 70, 70, 255},   // 红
	{70, 130, 230, 255},  // 蓝
	{90, 200, 90, 255},   // 绿
	{230, 200, 60, 255},  // 黄
	{180, 90, 220, 255},  // 紫
}

func playerColor(pid core.PlayerID) color.RGBA {
	return playerPalette[int(pid)%len(playerPalette)]
}

// drawEntity 按种类绘制实体
func drawEntity(screen *ebiten.Image, e client.RenderEntity, local bool) {
	switch e.Kind {
	case core.KindPlayer:
		drawPlayer(screen, e, local)
	case core.KindProjectile:
		c := playerColor(e.Owner)
		vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(core.ProjectileHalf.Float()), c, true)
	case core.KindPickup:
		if e.Flags.Has(core.FlagDead) {
			return
		}
		half := float32(core.PickupHalf.Float())
		x, y := float32(e.X), float32(e.Y)
		green := color.RGBA{60, 200, 90, 255}
		vector.DrawFilledRect(screen, x-half, y-half/3, 2*half, 2*half/3, green, false)
		vector.DrawFilledRect(screen, x-half/3, y-half, 2*half/3, 2*half, green, false)
	case core.KindTrigger:
		half := float32(core.TriggerHalf.Float())
		c := color.RGBA{200, 40, 40, 90}
		if e.Variant == core.TriggerBoost {
			c = color.RGBA{60, 160, 230, 90}
		}
		vector.DrawFilledRect(screen, float32(e.X)-half, float32(e.Y)-half, 2*half, 2*half, c, false)
	}
}

func drawPlayer(screen *ebiten.Image, e client.RenderEntity, local bool) {
	if e.Flags.Has(core.FlagDead) {
		return
	}

	half := float32(core.PlayerHalf.Float())
	x, y := float32(e.X)-half, float32(e.Y)-half
	body := playerColor(e.Owner)
	vector.DrawFilledRect(screen, x, y, 2*half, 2*half, body, false)

	outline := color.RGBA{0, 0, 0, 255}
	if local {
		outline = color.RGBA{255, 220, 0, 255}
	}
	vector.StrokeRect(screen, x, y, 2*half, 2*half, 2, outline, false)

	// 眼睛指示朝向
	eyeX := x + 2*half - 8
	if e.Flags.Has(core.FlagFacingLeft) {
		eyeX = x + 4
	}
	vector.DrawFilledRect(screen, eyeX, y+6, 4, 6, color.RGBA{20, 20, 20, 255}, false)

	// 血条
	ratio := float32(e.Health) / float32(core.DefaultTuning().MaxHealth)
	vector.DrawFilledRect(screen, x, y-6, 2*half, 3, color.RGBA{60, 0, 0, 255}, false)
	vector.DrawFilledRect(screen, x, y-6, 2*half*ratio, 3, color.RGBA{220, 40, 40, 255}, false)
}
