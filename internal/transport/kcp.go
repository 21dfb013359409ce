package transport

import (
	"net"

	kcp "github.com/xtaci/kcp-go/v5"
)

// 快速模式：nodelay=1, interval=10ms, resend=2, nc=1
func tuneKCP(s *kcp.UDPSession) {
	s.SetStreamMode(true)
	s.SetNoDelay(1, 10, 2, 1)
	s.SetWindowSize(256, 256)
	s.SetACKNoDelay(true)
}

type kcpListener struct {
	listener *kcp.Listener
}

// ListenKCP 监听 kcp（不加密，不使用 FEC）
func ListenKCP(addr string) (Listener, error) {
	l, err := kcp.ListenWithOptions(addr, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	return &kcpListener{listener: l}, nil
}

func (l *kcpListener) Accept() (Conn, error) {
	session, err := l.listener.AcceptKCP()
	if err != nil {
		return nil, err
	}
	tuneKCP(session)
	return newStreamConn(session), nil
}

func (l *kcpListener) Close() error {
	return l.listener.Close()
}

func (l *kcpListener) Addr() net.Addr {
	return l.listener.Addr()
}

// DialKCP 连接 kcp 服务器
func DialKCP(addr string) (Conn, error) {
	session, err := kcp.DialWithOptions(addr, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	tuneKCP(session)
	return newStreamConn(session), nil
}
