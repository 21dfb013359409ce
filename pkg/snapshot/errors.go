package snapshot

import (
	"errors"
	"fmt"

	"platformer/pkg/core"
)

// ErrStaleSnapshot 快照 tick 不大于已应用的最新 tick，直接丢弃
var ErrStaleSnapshot = errors.New("过期快照")

// DesyncError 增量快照的基线在本地不存在，需要请求完整快照
type DesyncError struct {
	Tick     core.Tick // 快照 tick
	Baseline core.Tick // 快照引用的基线
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("快照 %d 的基线 %d 不存在", e.Tick, e.Baseline)
}

// IsDesync 判断是否为基线缺失
func IsDesync(err error) bool {
	var de *DesyncError
	return errors.As(err, &de)
}
