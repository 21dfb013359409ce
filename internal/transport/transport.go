// Package transport 面向数据包的连接抽象：kcp、tcp、websocket 和进程内管道
//
// 上层只看到完整的数据包，分帧由各实现负责
package transport

import (
	"errors"
	"fmt"
	"net"
	"time"
)

const (
	MaxPacketSize = 64 * 1024       // 单个数据包上限（完整快照可能超过 4KB）
	readTimeout   = 15 * time.Second // 读取超时，心跳间隔的 3 倍
	writeTimeout  = 1 * time.Second  // 写入超时
)

var (
	ErrClosed         = errors.New("连接已关闭")
	ErrPacketTooLarge = errors.New("数据包过大")
)

// Conn 一条双向数据包连接
// ReadPacket 只能由一个 goroutine 调用，WritePacket 可以并发调用
type Conn interface {
	ReadPacket() ([]byte, error)
	WritePacket(data []byte) error
	Close() error
	RemoteAddr() net.Addr
}

// Listener 接受新连接
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
}

// Options 监听参数
type Options struct {
	WSPath      string
	CORSOrigins []string
}

// Listen 按协议创建监听器
func Listen(proto, addr string, opts Options) (Listener, error) {
	switch proto {
	case "tcp":
		return ListenTCP(addr)
	case "kcp":
		return ListenKCP(addr)
	case "ws":
		return ListenWS(addr, opts.WSPath, opts.CORSOrigins)
	default:
		return nil, fmt.Errorf("不支持的协议: %s", proto)
	}
}

// Dial 按协议连接服务器；ws 时 addr 为完整 URL 或 host:port（使用默认路径 /ws）
func Dial(proto, addr string) (Conn, error) {
	switch proto {
	case "", "tcp":
		return DialTCP(addr)
	case "kcp":
		return DialKCP(addr)
	case "ws":
		return DialWS(addr)
	default:
		return nil, fmt.Errorf("不支持的协议: %s", proto)
	}
}
