package dto

// ── 讲者自助令牌模块 ──

// IssueTokenRequest 签发令牌请求（suggestion_id 取自路径参数）
type IssueTokenRequest struct {
	SuggestionID string  `json:"-"`
	SeminarID    *string `json:"seminar_id" binding:"omitempty,uuid"`
	Type         string  `json:"type"       binding:"required,oneof=availability details"`
}

// TokenIssueResponse 签发令牌结果
type TokenIssueResponse struct {
	Token     string `json:"token"`
	FormURL   string `json:"form_url"`
	Type      string `json:"type"`
	ExpiresAt string `json:"expires_at"`
}

// TokenInfoResponse 公开表单上下文（令牌校验成功后返回）
type TokenInfoResponse struct {
	Type           string `json:"type"`
	SpeakerName    string `json:"speaker_name"`
	SuggestedTopic string `json:"suggested_topic"`
	ExpiresAt      string `json:"expires_at"`
}

// ── 上传文件模块 ──

// FileResponse 上传文件响应
type FileResponse struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	CreatedAt    string `json:"created_at"`
}

// ── 活动日志模块 ──

// ActivityListRequest 活动日志查询参数
type ActivityListRequest struct {
	SemesterPlanID string `form:"semester_plan_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// ActivityEventResponse 活动日志响应
type ActivityEventResponse struct {
	ID         string  `json:"id"`
	EventType  string  `json:"event_type"`
	Summary    string  `json:"summary"`
	EntityType string  `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
