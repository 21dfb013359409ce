package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"platformer/internal/config"
	"platformer/internal/metrics"
	"platformer/internal/transport"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/replay"
)

// GameServer 游戏服务器：接受连接并把它们交给唯一的房间
type GameServer struct {
	cfg    config.Config
	level  *core.Level
	room   *Room
	tokens *TokenIssuer
	sink   replay.Sink

	listener transport.Listener
	conns    atomic.Int64

	// 控制
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewGameServer 创建新的游戏服务器，sink 为 nil 时不录像
func NewGameServer(cfg config.Config, level *core.Level, sink replay.Sink) *GameServer {
	ctx, cancel := context.WithCancel(context.Background())
	if level == nil {
		level = core.DefaultLevel()
	}

	return &GameServer{
		cfg:      cfg,
		level:    level,
		tokens:   NewTokenIssuer(cfg.Net.JWTSecret, cfg.Net.SessionTTL),
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
		shutdown: make(chan struct{}),
	}
}

// Start 监听配置的地址并阻塞到 Shutdown
func (s *GameServer) Start() error {
	netCfg := s.cfg.Net
	log.Printf("启动游戏服务器: %s://%s", netCfg.Protocol, netCfg.ListenAddr)

	listener, err := transport.Listen(netCfg.Protocol, netCfg.ListenAddr, transport.Options{
		WSPath:      netCfg.WSPath,
		CORSOrigins: netCfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("监听失败: %w", err)
	}

	log.Printf("服务器监听中: %s", listener.Addr())
	s.Serve(listener)

	// 等待关闭信号
	<-s.shutdown

	log.Println("服务器正在关闭...")
	return nil
}

// Serve 在已有的监听器上启动房间循环和接受循环，不阻塞
func (s *GameServer) Serve(listener transport.Listener) {
	s.listener = listener
	s.room = NewRoom(s.ctx, s.cfg, s.level, s.tokens, s.sink)

	s.wg.Add(1)
	go s.room.Run(&s.wg)

	s.wg.Add(1)
	go s.acceptLoop()
}

// Shutdown 优雅关闭服务器
func (s *GameServer) Shutdown() {
	s.shutdownOnce.Do(func() {
		log.Println("正在关闭服务器...")

		s.cancel()
		if s.room != nil {
			s.room.Shutdown()
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
		close(s.shutdown)

		s.wg.Wait()
		log.Println("服务器已关闭")
	})
}

// acceptLoop 接受客户端连接
func (s *GameServer) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				log.Println("停止接受新连接")
				return
			default:
				log.Printf("接受连接失败: %v", err)
				return
			}
		}

		log.Printf("新连接来自: %s", conn.RemoteAddr())

		connection := NewConnection(conn, s)
		s.wg.Add(1)
		go func() {
			s.conns.Add(1)
			metrics.SetConnections(int(s.conns.Load()))
			connection.Handle(s.ctx, &s.wg)
			metrics.SetConnections(int(s.conns.Add(-1)))
		}()
	}
}

// handleHello 处理加入请求，失败时回复拒绝消息
func (s *GameServer) handleHello(conn *Connection, hello *protocol.Hello) error {
	if s.room == nil {
		return fmt.Errorf("房间未初始化")
	}
	if err := s.room.Join(conn, hello); err != nil {
		_ = conn.SendPacket(protocol.NewRejectPacket(err.Error()))
		return err
	}
	return nil
}

// removePlayer 移除玩家
func (s *GameServer) removePlayer(pid core.PlayerID, conn *Connection) {
	if s.room == nil {
		return
	}
	s.room.Leave(pid, conn)
}

func (s *GameServer) currentTick() core.Tick {
	if s.room == nil {
		return 0
	}
	return s.room.CurrentTick()
}
