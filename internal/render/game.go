// Package render 基于 ebiten 的调试窗口：绘制 RenderView 并采集键鼠操作
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"platformer/internal/client"
	"platformer/pkg/core"
)

// ControlScheme 按键方案
type ControlScheme int

const (
	ControlWASD  ControlScheme = iota // A/D 移动，W/空格 跳跃，J 或鼠标左键开火
	ControlArrow                      // 方向键移动与跳跃，回车开火
)

func (c ControlScheme) String() string {
	switch c {
	case ControlWASD:
		return "WASD+空格"
	case ControlArrow:
		return "方向键+回车"
	}
	return "未知"
}

// ViewSource 渲染数据来源：在线会话或回放
type ViewSource interface {
	LatestRenderView() client.RenderView
	SubmitInput(c core.Controls)
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// Game Ebiten 游戏循环，只负责采集输入与绘制，模拟在 ViewSource 中进行
type Game struct {
	source        ViewSource
	levelRenderer *LevelRenderer
	width, height int
	controlScheme ControlScheme
	showDebug     bool
}

// NewGame 创建游戏窗口逻辑
func NewGame(source ViewSource, level *core.Level) *Game {
	w, h := level.PixelSize()
	return &Game{
		source:        source,
		levelRenderer: NewLevelRenderer(level),
		width:         w,
		height:        h,
		controlScheme: ControlWASD,
		showDebug:     true,
	}
}

// SetControlScheme 设置控制方案
func (g *Game) SetControlScheme(scheme ControlScheme) {
	g.controlScheme = scheme
}

// Update 采集输入
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}

	view := g.source.LatestRenderView()
	if view.State == client.StateClosed {
		return ebiten.Termination
	}
	g.source.SubmitInput(g.readControls(view.Local))
	return nil
}

// readControls 读取当前按住的按键，瞄准方向为鼠标相对本地玩家的位置
func (g *Game) readControls(local *client.RenderEntity) core.Controls {
	var c core.Controls

	switch g.controlScheme {
	case ControlWASD:
		if ebiten.IsKeyPressed(ebiten.KeyA) {
			c.Move--
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) {
			c.Move++
		}
		c.Jump = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeySpace)
		c.Fire = ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	case ControlArrow:
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			c.Move--
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			c.Move++
		}
		c.Jump = ebiten.IsKeyPressed(ebiten.KeyArrowUp)
		c.Fire = ebiten.IsKeyPressed(ebiten.KeyEnter)
	}

	if local != nil {
		mx, my := ebiten.CursorPosition()
		c.Aim = core.V(mx-int(local.X), my-int(local.Y))
	}
	return c
}

// Draw 绘制游戏画面
func (g *Game) Draw(screen *ebiten.Image) {
	view := g.source.LatestRenderView()

	g.levelRenderer.Draw(screen)

	for _, e := range view.Entities {
		drawEntity(screen, e, false)
	}
	if view.Local != nil {
		drawEntity(screen, *view.Local, true)
	}

	if view.State != client.StatePlaying {
		vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{0, 0, 0, 96}, false)
		drawText(screen, view.State.String(), float64(g.width)/2-40, float64(g.height)/2)
	}

	if g.showDebug {
		g.drawHUD(screen, view)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, view client.RenderView) {
	lines := []string{
		fmt.Sprintf("玩家 %d  %s", view.LocalID, view.State),
		fmt.Sprintf("预测 tick %d  渲染 %.1f", view.Tick, view.RenderTick),
		fmt.Sprintf("RTT %s  时钟倍率 %.3f", view.RTT, view.Rate),
		fmt.Sprintf("实体 %d  FPS %.0f", len(view.Entities), ebiten.ActualFPS()),
	}
	for i, line := range lines {
		drawText(screen, line, 8, float64(8+i*16))
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s, hudFace, op)
}

// Layout 设置屏幕布局
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
