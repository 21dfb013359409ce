package server

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"

	"platformer/internal/metrics"
	"platformer/pkg/core"
	"platformer/pkg/protocol"
	"platformer/pkg/snapshot"
)

// snapshotCache 同一 tick 内按基线缓存编码结果，确认到同一 tick 的客户端共享一次编码
type snapshotCache struct {
	world *core.WorldState

	mu     sync.Mutex
	full   cachedSnapshot
	deltas map[core.Tick]*cachedSnapshot
}

type cachedSnapshot struct {
	once sync.Once
	data []byte
	err  error
}

func newSnapshotCache(world *core.WorldState) *snapshotCache {
	return &snapshotCache{world: world, deltas: make(map[core.Tick]*cachedSnapshot)}
}

// encode base 为 nil 时编码完整快照
func (c *snapshotCache) encode(base *core.WorldState) ([]byte, error) {
	entry := &c.full
	if base != nil {
		c.mu.Lock()
		entry = c.deltas[base.Tick]
		if entry == nil {
			entry = &cachedSnapshot{}
			c.deltas[base.Tick] = entry
		}
		c.mu.Unlock()
	}
	entry.once.Do(func() {
		entry.data, entry.err = snapshot.Marshal(snapshot.Diff(c.world, base))
	})
	return entry.data, entry.err
}

// baselineFor 选择增量快照的基线：客户端确认过且仍在保留窗口内的最新 tick
// 返回 nil 表示发送完整快照
func (r *Room) baselineFor(s Session, now core.Tick) *core.WorldState {
	ack := s.Ack()
	if ack.TakeFullRequest() {
		ack.Reset()
		return nil
	}
	acked, ok := ack.Acked()
	if !ok || acked >= now || int(now-acked) >= r.cfg.Sim.RetentionTicks {
		return nil
	}
	base, ok := r.store.Get(acked)
	if !ok {
		return nil
	}
	return base
}

type outgoingSnapshot struct {
	session     Session
	base        *core.WorldState
	inputAck    core.Tick
	hasInputAck bool
}

// broadcast 为每个连接编码并发送快照；选择基线在房间 goroutine 内完成，编码并行
func (r *Room) broadcast(world *core.WorldState) {
	if len(r.sessions) == 0 {
		return
	}

	jobs := make([]outgoingSnapshot, 0, len(r.sessions))
	for pid, s := range r.sessions {
		inputAck, hasInputAck := r.inputs.Newest(pid)
		jobs = append(jobs, outgoingSnapshot{
			session:     s,
			base:        r.baselineFor(s, world.Tick),
			inputAck:    inputAck,
			hasInputAck: hasInputAck,
		})
	}

	cache := newSnapshotCache(world)
	swg := sizedwaitgroup.New(r.encodeWorkers)
	for _, job := range jobs {
		swg.Add()
		go func(job outgoingSnapshot) {
			defer swg.Done()

			encoded, err := cache.encode(job.base)
			if err != nil {
				log.Printf("玩家 %d: 快照编码失败: %v", job.session.PlayerID(), err)
				return
			}
			frame := &protocol.SnapshotFrame{
				ServerTick:  world.Tick,
				InputAck:    job.inputAck,
				HasInputAck: job.hasInputAck,
				Snapshot:    encoded,
			}
			data, err := protocol.Encode(protocol.NewSnapshotPacket(frame))
			if err != nil {
				log.Printf("玩家 %d: 快照包编码失败: %v", job.session.PlayerID(), err)
				return
			}
			if err := job.session.Send(data); err != nil {
				if errors.Is(err, ErrSendQueueFull) {
					metrics.RecordPacketDropped("send_queue_full")
				}
				return
			}
			full := job.base == nil
			metrics.RecordSnapshot(full, len(data))
			r.stats.add(len(data), full)
		}(job)
	}
	swg.Wait()
}

// roomStats 周期性带宽统计
type roomStats struct {
	bytes  atomic.Int64
	full   atomic.Int64
	deltas atomic.Int64
}

func (s *roomStats) add(n int, full bool) {
	s.bytes.Add(int64(n))
	if full {
		s.full.Add(1)
	} else {
		s.deltas.Add(1)
	}
}

func (r *Room) maybeLogStats(tick core.Tick) {
	interval := core.Tick(r.cfg.Sim.TickRate * statsLogSeconds)
	if interval == 0 || tick%interval != 0 {
		return
	}
	bytes := r.stats.bytes.Swap(0)
	full := r.stats.full.Swap(0)
	deltas := r.stats.deltas.Swap(0)
	if full+deltas == 0 {
		return
	}
	log.Printf("tick %d: %d 名玩家, 快照 %s (%s/s), 完整 %d, 增量 %d",
		tick,
		len(r.world.Players()),
		humanize.Bytes(uint64(bytes)),
		humanize.Bytes(uint64(bytes/statsLogSeconds)),
		full,
		deltas,
	)
}
