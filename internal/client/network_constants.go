package client

import "time"

// ===== 网络与插值配置（客户端专用）=====
const (
	// 插值缓冲区大小：存储最近 N 个权威世界
	InterpolationBufferSize = 30

	// 连接与加入的等待时间
	connectTimeout = 5 * time.Second

	// 客户端 Ping 间隔，用于测量往返延迟
	pingInterval = time.Second

	// 完整快照请求未得到响应时的重发间隔
	fullRequestRetry = 500 * time.Millisecond

	// 过期快照日志的最小间隔
	staleLogInterval = 5 * time.Second

	// 重连间隔
	reconnectBackoff = 2 * time.Second

	// 接收队列长度
	snapshotQueueSize = 256
	sendQueueSize     = 256
)
