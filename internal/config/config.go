// Package config 服务器与客户端的全部可调参数
//
// 每一组参数都有 DefaultX() 默认值和 XFromEnv() 环境变量覆盖，
// cmd/* 在启动时先用 godotenv 加载 .env，再调用 Load()
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// 模拟
// =============================================================================

// SimConfig 模拟与历史保留
type SimConfig struct {
	TickRate         int // 每秒 tick 数
	RetentionTicks   int // 世界历史/输入历史/预测记录的保留窗口
	SnapshotInterval int // 每隔多少 tick 发送一次快照
	KeyframeInterval int // 录像中完整关键帧的间隔
	Seed             uint64
}

// DefaultSim 默认 50 TPS，保留 2 秒历史
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:         50,
		RetentionTicks:   100,
		SnapshotInterval: 1,
		KeyframeInterval: 250,
		Seed:             1,
	}
}

// SimFromEnv 环境变量覆盖
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if v := getEnvInt("TICK_RATE", 0); v > 0 {
		cfg.TickRate = v
	}
	if v := getEnvInt("RETENTION_TICKS", 0); v > 0 {
		cfg.RetentionTicks = v
	}
	if v := getEnvInt("SNAPSHOT_INTERVAL", 0); v > 0 {
		cfg.SnapshotInterval = v
	}
	if v := getEnvInt("KEYFRAME_INTERVAL", 0); v > 0 {
		cfg.KeyframeInterval = v
	}
	if v := os.Getenv("WORLD_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	return cfg
}

// TickDuration 每个 tick 的时长
func (c SimConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// =============================================================================
// 网络
// =============================================================================

// NetConfig 监听、限流与会话
type NetConfig struct {
	Protocol    string // kcp / tcp / ws
	ListenAddr  string
	ServerAddr  string // 客户端连接地址
	DebugAddr   string // /metrics /healthz /debug/pprof，空表示关闭
	WSPath      string
	CORSOrigins []string
	MaxPlayers  int
	PacketRate  float64 // 每个连接每秒允许的数据包数
	PacketBurst int
	JWTSecret   string
	SessionTTL  time.Duration
	SendQueue   int // 每个连接的发送队列长度
	InboxSize   int // 每个连接的接收队列长度
}

// DefaultNet 默认 kcp，调试服务只监听本地
func DefaultNet() NetConfig {
	return NetConfig{
		Protocol:    "kcp",
		ListenAddr:  ":8000",
		ServerAddr:  "127.0.0.1:8000",
		DebugAddr:   "127.0.0.1:6060",
		WSPath:      "/ws",
		CORSOrigins: []string{"*"},
		MaxPlayers:  16,
		PacketRate:  200,
		PacketBurst: 400,
		JWTSecret:   "platformer-dev-secret-change-in-production",
		SessionTTL:  5 * time.Minute,
		SendQueue:   256,
		InboxSize:   512,
	}
}

// NetFromEnv 环境变量覆盖
func NetFromEnv() NetConfig {
	cfg := DefaultNet()

	if v := os.Getenv("NET_PROTOCOL"); v != "" {
		cfg.Protocol = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v, ok := os.LookupEnv("DEBUG_ADDR"); ok {
		cfg.DebugAddr = v
	}
	if v := os.Getenv("WS_PATH"); v != "" {
		cfg.WSPath = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnvInt("MAX_PLAYERS", 0); v > 0 {
		cfg.MaxPlayers = v
	}
	if v := getEnvFloat("PACKET_RATE", 0); v > 0 {
		cfg.PacketRate = v
	}
	if v := getEnvInt("PACKET_BURST", 0); v > 0 {
		cfg.PacketBurst = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := getEnvDuration("SESSION_TTL", 0); v > 0 {
		cfg.SessionTTL = v
	}
	return cfg
}

// =============================================================================
// 客户端预测与插值
// =============================================================================

// ClientConfig 时钟漂移、冗余输入、插值与渲染校正
type ClientConfig struct {
	LeadTicks        int
	DriftAheadTicks  int
	DriftBehindTicks int
	DriftNudge       float64
	ResyncJumpTicks  int

	InputRedundancy         int     // 每个输入包额外携带的未确认输入数
	InterpolationDelayTicks float64 // 远端实体渲染落后估计服务器 tick 的量
	MaxExtrapolationTicks   int     // 缺少新快照时最多外推的 tick 数
	SnapThresholdPx         float64 // 本地校正超过该距离直接跳变
	OffsetDecay             float64 // 每 tick 渲染偏移保留的比例
}

// DefaultClient 默认参数
func DefaultClient() ClientConfig {
	return ClientConfig{
		LeadTicks:               2,
		DriftAheadTicks:         3,
		DriftBehindTicks:        1,
		DriftNudge:              0.05,
		ResyncJumpTicks:         25,
		InputRedundancy:         4,
		InterpolationDelayTicks: 2,
		MaxExtrapolationTicks:   5,
		SnapThresholdPx:         96,
		OffsetDecay:             0.8,
	}
}

// ClientFromEnv 环境变量覆盖
func ClientFromEnv() ClientConfig {
	cfg := DefaultClient()

	if v := getEnvInt("LEAD_TICKS", -1); v >= 0 {
		cfg.LeadTicks = v
	}
	if v := getEnvInt("DRIFT_AHEAD_TICKS", 0); v > 0 {
		cfg.DriftAheadTicks = v
	}
	if v := getEnvInt("DRIFT_BEHIND_TICKS", 0); v > 0 {
		cfg.DriftBehindTicks = v
	}
	if v := getEnvFloat("DRIFT_NUDGE", 0); v > 0 {
		cfg.DriftNudge = v
	}
	if v := getEnvInt("RESYNC_JUMP_TICKS", 0); v > 0 {
		cfg.ResyncJumpTicks = v
	}
	if v := getEnvInt("INPUT_REDUNDANCY", -1); v >= 0 {
		cfg.InputRedundancy = v
	}
	if v := getEnvFloat("INTERPOLATION_DELAY_TICKS", -1); v >= 0 {
		cfg.InterpolationDelayTicks = v
	}
	if v := getEnvInt("MAX_EXTRAPOLATION_TICKS", -1); v >= 0 {
		cfg.MaxExtrapolationTicks = v
	}
	if v := getEnvFloat("SNAP_THRESHOLD_PX", 0); v > 0 {
		cfg.SnapThresholdPx = v
	}
	if v := getEnvFloat("OFFSET_DECAY", -1); v >= 0 {
		cfg.OffsetDecay = v
	}
	return cfg
}

// =============================================================================
// 机器人
// =============================================================================

// BotConfig 服务器内置机器人
type BotConfig struct {
	Count int
	Seed  int64
}

func DefaultBots() BotConfig {
	return BotConfig{Count: 0, Seed: 42}
}

func BotsFromEnv() BotConfig {
	cfg := DefaultBots()
	if v := getEnvInt("BOT_COUNT", -1); v >= 0 {
		cfg.Count = v
	}
	if v := getEnvInt("BOT_SEED", 0); v != 0 {
		cfg.Seed = int64(v)
	}
	return cfg
}

// =============================================================================
// 汇总
// =============================================================================

// Config 完整配置
type Config struct {
	Sim    SimConfig
	Net    NetConfig
	Client ClientConfig
	Bots   BotConfig
}

// Default 全部默认值
func Default() Config {
	return Config{
		Sim:    DefaultSim(),
		Net:    DefaultNet(),
		Client: DefaultClient(),
		Bots:   DefaultBots(),
	}
}

// Load 读取环境变量覆盖后的完整配置
func Load() Config {
	return Config{
		Sim:    SimFromEnv(),
		Net:    NetFromEnv(),
		Client: ClientFromEnv(),
		Bots:   BotsFromEnv(),
	}
}

var ErrInvalidConfig = errors.New("配置非法")

// Validate 检查参数之间的约束
func (c Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 || c.Sim.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("TickRate 超出范围: %d", c.Sim.TickRate))
	}
	if c.Sim.RetentionTicks < 2 {
		errs = append(errs, fmt.Errorf("RetentionTicks 过小: %d", c.Sim.RetentionTicks))
	}
	if c.Sim.SnapshotInterval <= 0 || c.Sim.SnapshotInterval >= c.Sim.RetentionTicks {
		errs = append(errs, fmt.Errorf("SnapshotInterval 必须在 1 和保留窗口之间: %d", c.Sim.SnapshotInterval))
	}
	if c.Sim.KeyframeInterval <= 0 {
		errs = append(errs, fmt.Errorf("KeyframeInterval 必须为正: %d", c.Sim.KeyframeInterval))
	}
	switch c.Net.Protocol {
	case "kcp", "tcp", "ws":
	default:
		errs = append(errs, fmt.Errorf("不支持的协议: %s", c.Net.Protocol))
	}
	if c.Net.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("MaxPlayers 必须为正: %d", c.Net.MaxPlayers))
	}
	if c.Net.JWTSecret == "" {
		errs = append(errs, errors.New("JWTSecret 为空"))
	}
	if c.Client.ResyncJumpTicks <= c.Client.DriftAheadTicks || c.Client.ResyncJumpTicks <= c.Client.DriftBehindTicks {
		errs = append(errs, fmt.Errorf("ResyncJumpTicks 必须大于漂移阈值: %d", c.Client.ResyncJumpTicks))
	}
	if c.Client.DriftNudge <= 0 || c.Client.DriftNudge >= 1 {
		errs = append(errs, fmt.Errorf("DriftNudge 超出范围: %v", c.Client.DriftNudge))
	}
	if c.Client.OffsetDecay < 0 || c.Client.OffsetDecay >= 1 {
		errs = append(errs, fmt.Errorf("OffsetDecay 超出范围: %v", c.Client.OffsetDecay))
	}
	if c.Client.InputRedundancy >= c.Sim.RetentionTicks {
		errs = append(errs, fmt.Errorf("InputRedundancy 超过保留窗口: %d", c.Client.InputRedundancy))
	}
	if c.Bots.Count < 0 || c.Bots.Count > c.Net.MaxPlayers {
		errs = append(errs, fmt.Errorf("机器人数量超出范围: %d", c.Bots.Count))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// =============================================================================
// 工具函数
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
