package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"platformer/internal/client"
	"platformer/internal/config"
	"platformer/internal/render"
	"platformer/pkg/ai"
	"platformer/pkg/core"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("加载 .env 失败: %v", err)
	}
	cfg := config.Load()

	flag.StringVar(&cfg.Net.ServerAddr, "server", cfg.Net.ServerAddr, "服务器地址")
	flag.StringVar(&cfg.Net.Protocol, "proto", cfg.Net.Protocol, "传输协议 kcp/tcp/ws")
	name := flag.String("name", "player", "玩家名称")
	headless := flag.Bool("headless", false, "无窗口运行，由机器人控制")
	duration := flag.Duration("duration", 0, "无窗口模式的运行时长，0 表示直到中断")
	replayPath := flag.String("replay", "", "播放录像文件")
	arrows := flag.Bool("arrows", false, "使用方向键+回车")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	var err error
	switch {
	case *replayPath != "":
		err = runReplay(cfg, *replayPath)
	case *headless:
		err = runHeadless(cfg, *name, *duration)
	default:
		scheme := render.ControlWASD
		if *arrows {
			scheme = render.ControlArrow
		}
		err = runWindow(cfg, *name, scheme)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func setupWindow(title string, level *core.Level) {
	w, h := level.PixelSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(60)
}

// runWindow 在线游戏窗口
func runWindow(cfg config.Config, name string, scheme render.ControlScheme) error {
	level := core.DefaultLevel()
	net := client.NewNetworkClient(cfg.Net.ServerAddr, cfg.Net.Protocol, name)
	session := client.NewSession(cfg, level, net)
	if err := session.Start(); err != nil {
		return fmt.Errorf("加入服务器失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = session.Run(ctx)
	}()

	game := render.NewGame(session, level)
	game.SetControlScheme(scheme)
	setupWindow(fmt.Sprintf("Platformer - %s [%s]", name, scheme), level)

	err := ebiten.RunGame(game)
	cancel()
	<-done
	return err
}

// runHeadless 无窗口运行，输入由机器人决策，用于压测与联调
func runHeadless(cfg config.Config, name string, duration time.Duration) error {
	level := core.DefaultLevel()
	net := client.NewNetworkClient(cfg.Net.ServerAddr, cfg.Net.Protocol, name)
	session := client.NewSession(cfg, level, net)
	if err := session.Start(); err != nil {
		return fmt.Errorf("加入服务器失败: %w", err)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	var bot *ai.Controller
	ticker := time.NewTicker(cfg.Sim.TickDuration() / 4)
	defer ticker.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			p := session.Predictor()
			if p != nil && p.Synced() {
				if bot == nil || bot.PlayerID != p.LocalPlayer() {
					bot = ai.NewController(p.LocalPlayer(), level, cfg.Bots.Seed)
				}
				session.SubmitInput(bot.Decide(p.World()))
			}
			session.Update(now)

		case <-report.C:
			view := session.LatestRenderView()
			log.Printf("[%s] tick %d, 远端实体 %d, RTT %s, 倍率 %.3f",
				view.State, view.Tick, len(view.Entities), view.RTT, view.Rate)
		}
	}
}

// runReplay 播放录像
func runReplay(cfg config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	viewer, err := client.NewReplayViewer(f, cfg.Client.MaxExtrapolationTicks, cfg.Client.SnapThresholdPx)
	if err != nil {
		return fmt.Errorf("打开录像失败: %w", err)
	}
	h := viewer.Header()
	log.Printf("录像: %d TPS, 种子 %d, 录制于 %s", h.TickRate, h.Seed, time.UnixMilli(h.CreatedAt).Format(time.DateTime))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(max(h.TickRate, 1)) / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if err := viewer.Update(now); err != nil {
					log.Printf("读取录像失败: %v", err)
					return
				}
			}
		}
	}()

	level := core.DefaultLevel()
	setupWindow("Platformer - 回放", level)
	return ebiten.RunGame(render.NewGame(viewer, level))
}
