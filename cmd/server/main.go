package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"platformer/internal/config"
	"platformer/internal/metrics"
	"platformer/internal/server"
	"platformer/pkg/core"
	"platformer/pkg/replay"
)

func main() {
	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("加载 .env 失败: %v", err)
	}
	cfg := config.Load()

	// 命令行参数优先于环境变量
	flag.StringVar(&cfg.Net.ListenAddr, "addr", cfg.Net.ListenAddr, "服务器监听地址")
	flag.StringVar(&cfg.Net.Protocol, "proto", cfg.Net.Protocol, "传输协议 kcp/tcp/ws")
	flag.StringVar(&cfg.Net.DebugAddr, "debug", cfg.Net.DebugAddr, "调试服务地址，空表示关闭")
	flag.IntVar(&cfg.Bots.Count, "bots", cfg.Bots.Count, "机器人数量")
	flag.Uint64Var(&cfg.Sim.Seed, "seed", cfg.Sim.Seed, "世界随机种子")
	levelPath := flag.String("level", "", "关卡文件，空表示内置关卡")
	recordPath := flag.String("record", "", "录像输出文件")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	level, err := loadLevel(*levelPath)
	if err != nil {
		log.Fatalf("加载关卡失败: %v", err)
	}

	var sink replay.Sink
	if *recordPath != "" {
		sink, err = openRecording(*recordPath, cfg)
		if err != nil {
			log.Fatalf("创建录像失败: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := metrics.ServeDebug(ctx, cfg.Net.DebugAddr); err != nil {
			log.Printf("调试服务退出: %v", err)
		}
	}()

	gameServer := server.NewGameServer(cfg, level, sink)

	// 启动服务器（在新的 goroutine 中）
	go func() {
		if err := gameServer.Start(); err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	log.Println("========================================")
	log.Println("  Platformer 权威服务器")
	log.Println("========================================")
	log.Printf("监听地址: %s://%s", cfg.Net.Protocol, cfg.Net.ListenAddr)
	log.Printf("最大玩家数: %d (机器人 %d)", cfg.Net.MaxPlayers, cfg.Bots.Count)
	log.Printf("服务器 TPS: %d, 保留窗口 %d tick", cfg.Sim.TickRate, cfg.Sim.RetentionTicks)
	if *recordPath != "" {
		log.Printf("录像: %s", *recordPath)
	}
	log.Println("========================================")
	log.Println("按 Ctrl+C 停止服务器")

	<-ctx.Done()

	log.Println("正在关闭服务器...")
	gameServer.Shutdown()

	log.Println("服务器已关闭")
}

func loadLevel(path string) (*core.Level, error) {
	if path == "" {
		return core.DefaultLevel(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows := strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], "\r")
	}
	return core.ParseLevel(rows)
}

func openRecording(path string, cfg config.Config) (replay.Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := replay.NewWriter(f, replay.Header{
		TickRate:  cfg.Sim.TickRate,
		Seed:      cfg.Sim.Seed,
		CreatedAt: time.Now().UnixMilli(),
	}, cfg.Sim.KeyframeInterval)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}
