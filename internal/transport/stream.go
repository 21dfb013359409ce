package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// streamConn 在字节流上用 4 字节大端长度前缀分帧（tcp 与 kcp 流模式共用）
type streamConn struct {
	conn    net.Conn
	header  [4]byte
	writeMu sync.Mutex
}

func newStreamConn(conn net.Conn) *streamConn {
	return &streamConn{conn: conn}
}

func (c *streamConn) ReadPacket() ([]byte, error) {
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		if _, err := io.ReadFull(c.conn, c.header[:]); err != nil {
			return nil, err
		}
		length := binary.BigEndian.Uint32(c.header[:])
		if length > MaxPacketSize {
			return nil, fmt.Errorf("%w (%d bytes)", ErrPacketTooLarge, length)
		}
		if length == 0 {
			continue
		}

		data := make([]byte, length)
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		if _, err := io.ReadFull(c.conn, data); err != nil {
			return nil, err
		}
		return data, nil
	}
}

func (c *streamConn) WritePacket(data []byte) error {
	if len(data) > MaxPacketSize {
		return fmt.Errorf("%w (%d bytes)", ErrPacketTooLarge, len(data))
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	// 长度和数据体合并成一次写入
	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[4:], data)

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := c.conn.Write(buf)
	return err
}

func (c *streamConn) Close() error {
	return c.conn.Close()
}

func (c *streamConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// ========== tcp ==========

type tcpListener struct {
	listener net.Listener
}

// ListenTCP 监听 tcp
func ListenTCP(addr string) (Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &tcpListener{listener: l}, nil
}

func (l *tcpListener) Accept() (Conn, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	// 禁用 Nagle 算法以减少延迟
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return newStreamConn(conn), nil
}

func (l *tcpListener) Close() error {
	return l.listener.Close()
}

func (l *tcpListener) Addr() net.Addr {
	return l.listener.Addr()
}

// DialTCP 连接 tcp 服务器
func DialTCP(addr string) (Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return newStreamConn(conn), nil
}
