package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"platformer/internal/metrics"
	"platformer/internal/transport"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
)

var (
	ErrSendQueueFull    = errors.New("发送队列满")
	ErrConnectionClosed = errors.New("连接已关闭")
)

const (
	heartbeatInterval = 5 * time.Second
	heartbeatTimeout  = 15 * time.Second
)

// Connection 表示一个客户端连接
type Connection struct {
	conn     transport.Conn
	server   *GameServer
	playerID atomic.Uint32

	// 发送队列
	sendChan chan []byte
	closeCh  chan struct{}
	closed   bool
	closeMu  sync.Mutex

	// 接收到的输入批次，由房间循环取出
	inbox chan []core.PlayerInput
	ack   AckState

	limiter *rate.Limiter
	limited atomic.Bool

	lastRecvTime atomic.Value
	rtt          atomic.Int64
}

var _ Session = (*Connection)(nil)

// NewConnection 创建新连接，连接到服务器上
func NewConnection(conn transport.Conn, server *GameServer) *Connection {
	netCfg := server.cfg.Net
	c := &Connection{
		conn:     conn,
		server:   server,
		sendChan: make(chan []byte, netCfg.SendQueue),
		closeCh:  make(chan struct{}),
		inbox:    make(chan []core.PlayerInput, netCfg.InboxSize),
		limiter:  rate.NewLimiter(rate.Limit(netCfg.PacketRate), netCfg.PacketBurst),
	}
	c.lastRecvTime.Store(time.Now())
	return c
}

// Handle 处理连接
func (c *Connection) Handle(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Printf("%s: 连接处理开始", c)

	wg.Add(1)
	go c.startHeartbeat(ctx, wg)

	wg.Add(1)
	go c.sendLoop(ctx, wg)

	wg.Add(1)
	go c.receiveLoop(wg)

	// 等待上下文取消或连接关闭
	select {
	case <-ctx.Done():
	case <-c.closeCh:
	}

	c.Close()
}

// Close 关闭连接并让房间移除玩家
func (c *Connection) Close() {
	c.closeWithNotify(true)
}

// CloseWithoutNotify 关闭连接但不触发移除玩家逻辑（会话已被重连接管）
func (c *Connection) CloseWithoutNotify() {
	c.closeWithNotify(false)
}

func (c *Connection) closeWithNotify(notify bool) {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return
	}
	c.closed = true
	close(c.closeCh)
	_ = c.conn.Close()
	close(c.sendChan)
	c.closeMu.Unlock()

	if notify {
		if pid := c.PlayerID(); pid != 0 {
			c.server.removePlayer(pid, c)
		}
	}

	log.Printf("%s: 连接已关闭", c)
}

// Send 发送数据（异步）
func (c *Connection) Send(data []byte) error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.sendChan <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// SendPacket 序列化后发送，配合 protocol.New*Packet 使用
func (c *Connection) SendPacket(pkt *protocol.Packet, err error) error {
	data, err := protocol.Encode(pkt, err)
	if err != nil {
		return err
	}
	return c.Send(data)
}

func (c *Connection) sendLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-c.sendChan:
			if !ok {
				return
			}
			if err := c.conn.WritePacket(data); err != nil {
				log.Printf("%s: 发送失败: %v", c, err)
				c.Close()
				return
			}
		}
	}
}

// receiveLoop 阻塞在 ReadPacket 上，关闭连接会使其返回
func (c *Connection) receiveLoop(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		data, err := c.conn.ReadPacket()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, transport.ErrClosed) {
				log.Printf("%s: 读取失败: %v", c, err)
			}
			c.Close()
			return
		}

		c.onMessageReceived()
		if !c.limiter.Allow() {
			metrics.RecordPacketDropped("rate_limited")
			if !c.limited.Swap(true) {
				log.Printf("%s: 发包过快，开始丢弃", c)
			}
			continue
		}
		c.limited.Store(false)

		if err := c.handleMessage(data); err != nil {
			log.Printf("%s: 处理消息失败: %v", c, err)
		}
	}
}

// handleMessage 处理接收到的消息
func (c *Connection) handleMessage(data []byte) error {
	event, err := DecodePacket(data)
	if err != nil {
		metrics.RecordPacketDropped("malformed")
		return fmt.Errorf("反序列化失败: %w", err)
	}

	switch event.Kind {
	case EventHello:
		if c.PlayerID() != 0 {
			return fmt.Errorf("玩家已加入")
		}
		if err := c.server.handleHello(c, event.Hello); err != nil {
			return fmt.Errorf("加入失败: %w", err)
		}

	case EventInput:
		if c.PlayerID() == 0 {
			metrics.RecordPacketDropped("not_joined")
			return nil
		}
		c.handleInput(event.Input)

	case EventFullSnapshotRequest:
		c.ack.RequestFull()
		metrics.RecordResync("client_request")
		log.Printf("%s: 请求完整快照 (最新 tick %d)", c, event.FullRequest.LastTick)

	case EventPing:
		_ = c.SendPacket(protocol.NewPongPacket(event.Ping.SentAt, c.server.currentTick()))

	case EventPong:
		c.handlePong(event.Pong)

	case EventLeave:
		log.Printf("%s: 主动离开", c)
		c.Close()

	default:
		metrics.RecordPacketDropped("unknown_type")
		return fmt.Errorf("未知消息类型")
	}

	return nil
}

func (c *Connection) handleInput(batch *protocol.InputBatch) {
	if batch.HasAck {
		c.ack.Observe(batch.AckTick)
	}
	if len(batch.Inputs) == 0 {
		return
	}
	select {
	case c.inbox <- batch.Inputs:
	default:
		metrics.RecordPacketDropped("inbox_full")
	}
}

// DrainInputs 取出收件箱中的全部输入，玩家 ID 以连接为准
func (c *Connection) DrainInputs(fn func(core.PlayerInput)) int {
	pid := c.PlayerID()
	n := 0
	for {
		select {
		case batch := <-c.inbox:
			for _, in := range batch {
				in.Player = pid
				fn(in)
				n++
			}
		default:
			return n
		}
	}
}

func (c *Connection) Ack() *AckState {
	return &c.ack
}

// String 返回连接的字符串表示
func (c *Connection) String() string {
	if pid := c.PlayerID(); pid != 0 {
		return fmt.Sprintf("玩家 %d (%s)", pid, c.conn.RemoteAddr())
	}
	return fmt.Sprintf("连接 %s", c.conn.RemoteAddr())
}

func (c *Connection) PlayerID() core.PlayerID {
	return core.PlayerID(c.playerID.Load())
}

func (c *Connection) SetPlayerID(id core.PlayerID) {
	c.playerID.Store(uint32(id))
}

// RTT 最近一次心跳测得的往返延迟
func (c *Connection) RTT() time.Duration {
	return time.Duration(c.rtt.Load()) * time.Millisecond
}

func (c *Connection) startHeartbeat(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeCh:
			return
		case <-ticker.C:
			lastRecv, _ := c.lastRecvTime.Load().(time.Time)
			if !lastRecv.IsZero() && time.Since(lastRecv) > heartbeatTimeout {
				log.Printf("%s: 心跳超时", c)
				c.Close()
				return
			}
			_ = c.SendPacket(protocol.NewPingPacket(time.Now().UnixMilli()))
		}
	}
}

func (c *Connection) handlePong(pong *protocol.Pong) {
	if pong.SentAt <= 0 {
		return
	}
	c.rtt.Store(time.Now().UnixMilli() - pong.SentAt)
}

func (c *Connection) onMessageReceived() {
	c.lastRecvTime.Store(time.Now())
}
