package dto

// ── 删除结果 ──
//
// 每个健壮删除操作返回结构化结果：做了什么、动了多少行。
// 被阻止的删除不走这里，而是以 BlockedError 返回给调用方。

// DeleteSpeakerResult 删除讲者结果
type DeleteSpeakerResult struct {
	Message            string `json:"message"`
	ClearedSuggestions int64  `json:"cleared_suggestions"`
}

// DeleteRoomResult 删除场地结果
type DeleteRoomResult struct {
	Message         string `json:"message"`
	ClearedSeminars int64  `json:"cleared_seminars"`
	ClearedSlots    int64  `json:"cleared_slots"`
}

// DeleteSeminarResult 删除讲座结果
type DeleteSeminarResult struct {
	Message      string   `json:"message"`
	ClearedSlots int64    `json:"cleared_slots"`
	DeletedFiles int64    `json:"deleted_files"`
	Warnings     []string `json:"warnings,omitempty"` // 非致命的文件系统清理警告
}

// DeletePlanResult 删除学期计划结果
type DeletePlanResult struct {
	Message            string   `json:"message"`
	DeletedSlots       int64    `json:"deleted_slots"`
	DeletedSuggestions int64    `json:"deleted_suggestions"`
	Warnings           []string `json:"warnings,omitempty"`
}

// DeleteSlotResult 删除时段结果
type DeleteSlotResult struct {
	Message string `json:"message"`
}

// DeleteSuggestionResult 删除讲者推荐结果
type DeleteSuggestionResult struct {
	Message       string   `json:"message"`
	DeletedTokens int64    `json:"deleted_tokens"`
	ClearedSlots  int64    `json:"cleared_slots"`
	Warnings      []string `json:"warnings,omitempty"`
}
