package transport

import (
	"net"
	"sync"
)

type pipeAddr string

func (a pipeAddr) Network() string { return "pipe" }
func (a pipeAddr) String() string  { return string(a) }

// pipeConn 进程内连接，写入的切片会被复制
type pipeConn struct {
	name   pipeAddr
	in     <-chan []byte
	out    chan<- []byte
	closed chan struct{}
	peer   *pipeConn
	once   sync.Once
}

// Pipe 创建一对相连的进程内连接，buffer 为每个方向的队列长度
// 队列满时 WritePacket 阻塞，与可靠流式传输的背压一致
func Pipe(buffer int) (Conn, Conn) {
	ab := make(chan []byte, buffer)
	ba := make(chan []byte, buffer)
	a := &pipeConn{name: "pipe-a", in: ba, out: ab, closed: make(chan struct{})}
	b := &pipeConn{name: "pipe-b", in: ab, out: ba, closed: make(chan struct{})}
	a.peer, b.peer = b, a
	return a, b
}

func (c *pipeConn) ReadPacket() ([]byte, error) {
	select {
	case data := <-c.in:
		return data, nil
	case <-c.closed:
		return nil, ErrClosed
	case <-c.peer.closed:
		// 对端关闭后仍把队列中剩余的包读完
		select {
		case data := <-c.in:
			return data, nil
		default:
			return nil, ErrClosed
		}
	}
}

func (c *pipeConn) WritePacket(data []byte) error {
	if len(data) > MaxPacketSize {
		return ErrPacketTooLarge
	}
	buf := append([]byte(nil), data...)
	select {
	case <-c.closed:
		return ErrClosed
	case <-c.peer.closed:
		return ErrClosed
	default:
	}
	select {
	case c.out <- buf:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-c.peer.closed:
		return ErrClosed
	}
}

func (c *pipeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *pipeConn) RemoteAddr() net.Addr {
	return c.peer.name
}

// MemoryListener 进程内监听器，用于测试和单进程演示
type MemoryListener struct {
	conns  chan Conn
	done   chan struct{}
	once   sync.Once
	buffer int
}

// NewMemoryListener 创建进程内监听器
func NewMemoryListener(buffer int) *MemoryListener {
	return &MemoryListener{
		conns:  make(chan Conn),
		done:   make(chan struct{}),
		buffer: buffer,
	}
}

// Dial 建立一条到监听器的连接
func (l *MemoryListener) Dial() (Conn, error) {
	client, server := Pipe(l.buffer)
	select {
	case l.conns <- server:
		return client, nil
	case <-l.done:
		return nil, ErrClosed
	}
}

func (l *MemoryListener) Accept() (Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, ErrClosed
	}
}

func (l *MemoryListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *MemoryListener) Addr() net.Addr {
	return pipeAddr("memory")
}
