package dto

// ── 分配引擎 ──

// AssignRequest 将讲者推荐绑定到时段
type AssignRequest struct {
	SuggestionID string `json:"suggestion_id" binding:"required,uuid"`
	SlotID       string `json:"slot_id"       binding:"required,uuid"`
}

// AssignResponse 分配结果
type AssignResponse struct {
	SeminarID string `json:"seminar_id"`
	Created   bool   `json:"created"` // true=新建讲座，false=更新已有讲座
	Message   string `json:"message"`
}

// UnassignResponse 取消分配结果
type UnassignResponse struct {
	Message string `json:"message"`
}
