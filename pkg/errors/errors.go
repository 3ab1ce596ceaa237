package errors

import (
	"fmt"
	"strings"
)

// BlockedError 删除操作被业务规则阻止（如讲者仍有关联讲座）。
// Blockers 携带若干阻塞实体的名称，供调用方提示人工处理。
type BlockedError struct {
	Reason   string
	Blockers []string
}

func (e *BlockedError) Error() string {
	if len(e.Blockers) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Blockers, "、"))
}

// NewBlocked 构造 BlockedError
func NewBlocked(reason string, blockers []string) *BlockedError {
	return &BlockedError{Reason: reason, Blockers: blockers}
}
