package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"platformer/internal/transport"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
)

var (
	// ErrReconnectRequired 连接已断开，需要凭会话令牌重新连接
	ErrReconnectRequired = errors.New("需要重新连接")
	ErrRejected          = errors.New("服务器拒绝加入")
	ErrSendQueueFull     = errors.New("发送队列满")
)

// Dialer 建立到服务器的连接
type Dialer func() (transport.Conn, error)

// NetworkClient 网络客户端
type NetworkClient struct {
	conn transport.Conn
	dial Dialer
	name string

	// 会话信息
	welcome      *protocol.Welcome
	sessionToken string

	// 网络
	connected atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// 消息队列
	snapshotChan chan *protocol.SnapshotFrame
	pongChan     chan *protocol.Pong
	welcomeChan  chan *protocol.Welcome
	rejectChan   chan *protocol.Reject
	errChan      chan error

	// 发送队列
	inputSeq uint32
	sendChan chan []byte
}

// NewNetworkClient 按协议连接 serverAddr
func NewNetworkClient(serverAddr, proto, name string) *NetworkClient {
	return NewNetworkClientWithDialer(func() (transport.Conn, error) {
		return transport.Dial(proto, serverAddr)
	}, name)
}

// NewNetworkClientWithDialer 使用自定义拨号（例如进程内管道）
func NewNetworkClientWithDialer(dial Dialer, name string) *NetworkClient {
	return &NetworkClient{dial: dial, name: name}
}

// SetSessionToken 设置重连用的会话令牌
func (nc *NetworkClient) SetSessionToken(token string) {
	nc.sessionToken = token
}

func (nc *NetworkClient) SessionToken() string {
	return nc.sessionToken
}

// Connect 连接服务器并等待 Welcome
func (nc *NetworkClient) Connect() error {
	conn, err := nc.dial()
	if err != nil {
		return fmt.Errorf("连接服务器失败: %w", err)
	}

	nc.conn = conn
	nc.ctx, nc.cancel = context.WithCancel(context.Background())
	nc.snapshotChan = make(chan *protocol.SnapshotFrame, snapshotQueueSize)
	nc.pongChan = make(chan *protocol.Pong, 16)
	nc.welcomeChan = make(chan *protocol.Welcome, 1)
	nc.rejectChan = make(chan *protocol.Reject, 1)
	nc.errChan = make(chan error, 1)
	nc.sendChan = make(chan []byte, sendQueueSize)
	nc.connected.Store(true)

	log.Printf("已连接到服务器: %s", conn.RemoteAddr())

	nc.wg.Add(1)
	go nc.receiveLoop()

	nc.wg.Add(1)
	go nc.sendLoop()

	if err := nc.sendPacket(protocol.NewHelloPacket(nc.name, nc.sessionToken)); err != nil {
		nc.Close()
		return fmt.Errorf("发送加入请求失败: %w", err)
	}

	select {
	case welcome := <-nc.welcomeChan:
		nc.welcome = welcome
		nc.sessionToken = welcome.SessionToken
		log.Printf("玩家 ID: %d, 服务器 tick %d, 重连 %v", welcome.PlayerID, welcome.ServerTick, welcome.Reconnected)
		return nil

	case reject := <-nc.rejectChan:
		nc.Close()
		return fmt.Errorf("%w: %s", ErrRejected, reject.Reason)

	case err := <-nc.errChan:
		nc.Close()
		return err

	case <-time.After(connectTimeout):
		nc.Close()
		return errors.New("等待服务器响应超时")
	}
}

// Welcome 最近一次加入的响应
func (nc *NetworkClient) Welcome() *protocol.Welcome {
	return nc.welcome
}

func (nc *NetworkClient) PlayerID() core.PlayerID {
	if nc.welcome == nil {
		return 0
	}
	return nc.welcome.PlayerID
}

func (nc *NetworkClient) IsConnected() bool {
	return nc.connected.Load()
}

// Close 关闭连接
func (nc *NetworkClient) Close() {
	if !nc.connected.Swap(false) {
		return
	}
	nc.cancel()
	_ = nc.conn.Close()
	nc.wg.Wait()
	log.Printf("网络客户端已关闭")
}

// Leave 通知服务器离开后关闭
func (nc *NetworkClient) Leave() {
	if nc.IsConnected() {
		if data, err := protocol.Encode(protocol.NewLeavePacket()); err == nil {
			_ = nc.conn.WritePacket(data)
		}
	}
	nc.Close()
}

// ========== 消息接收 ==========

func (nc *NetworkClient) receiveLoop() {
	defer nc.wg.Done()

	for {
		data, err := nc.conn.ReadPacket()
		if err != nil {
			if nc.connected.Load() {
				nc.reportError(fmt.Errorf("%w: %w", ErrReconnectRequired, err))
			}
			return
		}
		if err := nc.handleMessage(data); err != nil {
			log.Printf("处理消息失败: %v", err)
		}
	}
}

func (nc *NetworkClient) reportError(err error) {
	select {
	case nc.errChan <- err:
	default:
	}
}

func (nc *NetworkClient) handleMessage(data []byte) error {
	pkt, err := protocol.UnmarshalPacket(data)
	if err != nil {
		return fmt.Errorf("反序列化失败: %w", err)
	}

	switch pkt.Type {
	case protocol.MessageSnapshot:
		frame, err := protocol.ParseSnapshot(pkt)
		if err != nil {
			return err
		}
		select {
		case nc.snapshotChan <- frame:
		default:
			// 队列满，丢弃（相当于丢包，后续快照仍可基于确认的基线）
		}

	case protocol.MessageWelcome:
		welcome, err := protocol.ParseWelcome(pkt)
		if err != nil {
			return err
		}
		select {
		case nc.welcomeChan <- welcome:
		default:
		}

	case protocol.MessageReject:
		reject, err := protocol.ParseReject(pkt)
		if err != nil {
			return err
		}
		select {
		case nc.rejectChan <- reject:
		default:
		}

	case protocol.MessagePing:
		ping, err := protocol.ParsePing(pkt)
		if err != nil {
			return err
		}
		return nc.sendPacket(protocol.NewPongPacket(ping.SentAt, 0))

	case protocol.MessagePong:
		pong, err := protocol.ParsePong(pkt)
		if err != nil {
			return err
		}
		select {
		case nc.pongChan <- pong:
		default:
		}

	default:
		return fmt.Errorf("未知消息类型: %s", pkt.Type)
	}
	return nil
}

// ========== 消息发送 ==========

func (nc *NetworkClient) sendLoop() {
	defer nc.wg.Done()

	for {
		select {
		case <-nc.ctx.Done():
			return

		case data := <-nc.sendChan:
			if err := nc.conn.WritePacket(data); err != nil {
				if nc.connected.Load() {
					nc.reportError(fmt.Errorf("%w: %w", ErrReconnectRequired, err))
				}
				return
			}
		}
	}
}

// sendPacket 序列化后放入发送队列
func (nc *NetworkClient) sendPacket(pkt *protocol.Packet, err error) error {
	data, err := protocol.Encode(pkt, err)
	if err != nil {
		return err
	}
	return nc.sendMessage(data)
}

func (nc *NetworkClient) sendMessage(data []byte) error {
	select {
	case nc.sendChan <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// SendInputs 发送输入批次，附带已应用的最新快照 tick 作为确认
func (nc *NetworkClient) SendInputs(inputs []core.PlayerInput, ack core.Tick, hasAck bool) error {
	if !nc.IsConnected() {
		return ErrReconnectRequired
	}
	nc.inputSeq++
	batch := &protocol.InputBatch{
		Seq:     nc.inputSeq,
		AckTick: ack,
		HasAck:  hasAck,
		Inputs:  inputs,
	}
	return nc.sendPacket(protocol.NewInputPacket(batch))
}

// RequestFullSnapshot 缺少增量基线时请求完整快照
func (nc *NetworkClient) RequestFullSnapshot(lastTick core.Tick) error {
	if !nc.IsConnected() {
		return ErrReconnectRequired
	}
	return nc.sendPacket(protocol.NewFullSnapshotRequestPacket(lastTick))
}

// SendPing 发送 Ping，Pong 中带回发送时间用于计算 RTT
func (nc *NetworkClient) SendPing(now time.Time) error {
	if !nc.IsConnected() {
		return ErrReconnectRequired
	}
	return nc.sendPacket(protocol.NewPingPacket(now.UnixMilli()))
}

// ========== 接收（非阻塞）==========

// ReceiveSnapshot 取出一个快照
func (nc *NetworkClient) ReceiveSnapshot() *protocol.SnapshotFrame {
	select {
	case frame := <-nc.snapshotChan:
		return frame
	default:
		return nil
	}
}

// ReceivePong 取出一个 Pong
func (nc *NetworkClient) ReceivePong() *protocol.Pong {
	select {
	case pong := <-nc.pongChan:
		return pong
	default:
		return nil
	}
}

// ReceiveError 取出连接错误
func (nc *NetworkClient) ReceiveError() error {
	select {
	case err := <-nc.errChan:
		return err
	default:
		return nil
	}
}
