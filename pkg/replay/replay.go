// Package replay 权威世界的录像流：每个 tick 一条 msgpack 记录，
// 周期性写入完整关键帧，其余为相对上一 tick 的增量快照
package replay

import (
	"bufio"
	"errors"
	"io"

	"github.com/rotisserie/eris"
	"github.com/vmihailenco/msgpack/v5"

	"platformer/pkg/core"
	"platformer/pkg/snapshot"
)

const (
	Magic   = "PLTR"
	Version = 1
)

var ErrBadHeader = errors.New("不是录像文件")

// Sink 接收每个权威 tick 的世界状态
type Sink interface {
	Record(w *core.WorldState) error
	Close() error
}

// Header 录像文件头
type Header struct {
	Magic     string `msgpack:"magic"`
	Version   int    `msgpack:"version"`
	TickRate  int    `msgpack:"tick_rate"`
	Seed      uint64 `msgpack:"seed"`
	CreatedAt int64  `msgpack:"created_at"` // UnixMilli
}

// Record 一条录像记录，Data 为 snapshot.Marshal 的结果
type Record struct {
	Tick     core.Tick `msgpack:"tick"`
	Keyframe bool      `msgpack:"keyframe"`
	Data     []byte    `msgpack:"data"`
}

// Writer 把世界序列写成录像流
type Writer struct {
	buf      *bufio.Writer
	enc      *msgpack.Encoder
	closer   io.Closer
	keyframe int

	prev    *core.WorldState
	records int
}

// NewWriter 写入文件头；keyframeInterval 个 tick 写一次完整关键帧
// out 实现 io.Closer 时由 Close 一并关闭
func NewWriter(out io.Writer, header Header, keyframeInterval int) (*Writer, error) {
	if keyframeInterval <= 0 {
		keyframeInterval = 1
	}
	header.Magic = Magic
	header.Version = Version

	buf := bufio.NewWriter(out)
	w := &Writer{
		buf:      buf,
		enc:      msgpack.NewEncoder(buf),
		keyframe: keyframeInterval,
	}
	if c, ok := out.(io.Closer); ok {
		w.closer = c
	}
	if err := w.enc.Encode(&header); err != nil {
		return nil, eris.Wrap(err, "写入录像文件头失败")
	}
	return w, nil
}

// Record 追加一个 tick；与上一条不连续时自动写关键帧
func (w *Writer) Record(world *core.WorldState) error {
	var base *core.WorldState
	if w.prev != nil && world.Tick == w.prev.Tick+1 && int(world.Tick)%w.keyframe != 0 {
		base = w.prev
	}

	data, err := snapshot.Marshal(snapshot.Diff(world, base))
	if err != nil {
		return err
	}
	rec := Record{
		Tick:     world.Tick,
		Keyframe: base == nil,
		Data:     data,
	}
	if err := w.enc.Encode(&rec); err != nil {
		return eris.Wrapf(err, "写入 tick %d 失败", world.Tick)
	}
	w.prev = world
	w.records++
	return nil
}

// Records 已写入的记录数
func (w *Writer) Records() int {
	return w.records
}

// Close 刷新缓冲并关闭底层输出
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return eris.Wrap(err, "刷新录像失败")
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Reader 顺序读取录像记录
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader 读取并校验文件头
func NewReader(in io.Reader) (*Reader, error) {
	r := &Reader{dec: msgpack.NewDecoder(bufio.NewReader(in))}
	if err := r.dec.Decode(&r.header); err != nil {
		return nil, eris.Wrap(ErrBadHeader, err.Error())
	}
	if r.header.Magic != Magic {
		return nil, eris.Wrapf(ErrBadHeader, "magic %q", r.header.Magic)
	}
	if r.header.Version != Version {
		return nil, eris.Errorf("不支持的录像版本 %d", r.header.Version)
	}
	return r, nil
}

// Header 文件头
func (r *Reader) Header() Header {
	return r.header
}

// Next 下一条记录，结束时返回 io.EOF
func (r *Reader) Next() (*Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, eris.Wrap(err, "读取录像记录失败")
	}
	return &rec, nil
}

// Player 把录像还原为世界序列
type Player struct {
	reader *Reader
	prev   *core.WorldState
}

func NewPlayer(r *Reader) *Player {
	return &Player{reader: r}
}

// Next 下一个世界状态，结束时返回 io.EOF
// 缺少基线的增量记录（截断的录像开头）会被跳过直到下一个关键帧
func (p *Player) Next() (*core.WorldState, error) {
	for {
		rec, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		s, err := snapshot.Unmarshal(rec.Data)
		if err != nil {
			return nil, eris.Wrapf(err, "tick %d", rec.Tick)
		}

		w, err := snapshot.Apply(s, p.prev)
		if snapshot.IsDesync(err) {
			p.prev = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		p.prev = w
		return w, nil
	}
}
