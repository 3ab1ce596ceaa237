package dto

// ── 学期计划模块 ──

// CreatePlanRequest 创建学期计划请求
type CreatePlanRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	AcademicYear string `json:"academic_year" binding:"required,max=20"`
}

// UpdatePlanRequest 更新学期计划请求
type UpdatePlanRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	AcademicYear *string `json:"academic_year" binding:"omitempty,max=20"`
	Status       *string `json:"status"        binding:"omitempty,oneof=draft active archived"`
}

// PlanResponse 学期计划响应
type PlanResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ── 讲座时段模块 ──

// CreateSlotRequest 创建时段请求
type CreateSlotRequest struct {
	SemesterPlanID string  `json:"semester_plan_id" binding:"required,uuid"`
	Date           string  `json:"date"             binding:"required"` // YYYY-MM-DD
	StartTime      string  `json:"start_time"       binding:"required"` // HH:MM
	EndTime        string  `json:"end_time"         binding:"required"`
	RoomID         *string `json:"room_id"          binding:"omitempty,uuid"`
}

// UpdateSlotRequest 更新时段请求（仅元数据；分配状态由分配引擎维护）
type UpdateSlotRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	RoomID    *string `json:"room_id" binding:"omitempty,uuid"`
	Status    *string `json:"status"  binding:"omitempty,oneof=available reserved cancelled"`
}

// SlotResponse 时段响应
type SlotResponse struct {
	ID                   string        `json:"id"`
	SemesterPlanID       string        `json:"semester_plan_id"`
	Date                 string        `json:"date"`
	StartTime            string        `json:"start_time"`
	EndTime              string        `json:"end_time"`
	Room                 *RoomResponse `json:"room,omitempty"`
	Status               string        `json:"status"`
	AssignedSeminarID    *string       `json:"assigned_seminar_id,omitempty"`
	AssignedSuggestionID *string       `json:"assigned_suggestion_id,omitempty"`
}
