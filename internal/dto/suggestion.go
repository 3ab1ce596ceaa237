package dto

// ── 讲者推荐模块 ──

// CreateSuggestionRequest 创建讲者推荐请求
// 讲者信息以快照形式提交，可选关联已有 Speaker
type CreateSuggestionRequest struct {
	SpeakerID          *string `json:"speaker_id"          binding:"omitempty,uuid"`
	SemesterPlanID     *string `json:"semester_plan_id"    binding:"omitempty,uuid"`
	SpeakerName        string  `json:"speaker_name"        binding:"required,max=200"`
	SpeakerEmail       string  `json:"speaker_email"       binding:"omitempty,email"`
	SpeakerAffiliation string  `json:"speaker_affiliation" binding:"omitempty,max=255"`
	SuggestedTopic     string  `json:"suggested_topic"`
	Notes              string  `json:"notes"`
}

// UpdateSuggestionRequest 更新讲者推荐请求（状态迁移走专用端点）
type UpdateSuggestionRequest struct {
	SpeakerName        *string `json:"speaker_name"        binding:"omitempty,max=200"`
	SpeakerEmail       *string `json:"speaker_email"       binding:"omitempty,email"`
	SpeakerAffiliation *string `json:"speaker_affiliation" binding:"omitempty,max=255"`
	SuggestedTopic     *string `json:"suggested_topic"`
	Notes              *string `json:"notes"`
}

// TransitionSuggestionRequest 推荐状态迁移请求
type TransitionSuggestionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending contacted checking_availability availability_received confirmed declined completed"`
	Note   string `json:"note"`
}

// SuggestionResponse 讲者推荐响应
type SuggestionResponse struct {
	ID                 string  `json:"id"`
	SpeakerID          *string `json:"speaker_id,omitempty"`
	SemesterPlanID     *string `json:"semester_plan_id,omitempty"`
	SpeakerName        string  `json:"speaker_name"`
	SpeakerEmail       string  `json:"speaker_email"`
	SpeakerAffiliation string  `json:"speaker_affiliation"`
	SuggestedTopic     string  `json:"suggested_topic"`
	Notes              string  `json:"notes"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// WorkflowEntryResponse 联系流程记录响应
type WorkflowEntryResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

// ── 可用时间 ──

// AvailabilityRangeRequest 单条可用时间区间
type AvailabilityRangeRequest struct {
	StartDate  string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate    string `json:"end_date"   binding:"required"`
	Preference string `json:"preference" binding:"required,oneof=preferred possible unavailable"`
}

// SubmitAvailabilityRequest 讲者提交可用时间（公开表单）
type SubmitAvailabilityRequest struct {
	Ranges []AvailabilityRangeRequest `json:"ranges" binding:"required,min=1,dive"`
}

// AvailabilityResponse 可用时间响应
type AvailabilityResponse struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Preference string `json:"preference"`
}
