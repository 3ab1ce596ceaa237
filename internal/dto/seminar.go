package dto

// ── 讲座模块 ──

// CreateSeminarRequest 创建讲座请求（临时加场，不经过时段分配）
type CreateSeminarRequest struct {
	Title     string  `json:"title"      binding:"required,max=300"`
	Abstract  string  `json:"abstract"`
	Date      string  `json:"date"       binding:"required"` // YYYY-MM-DD
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time"   binding:"required"`
	RoomID    *string `json:"room_id"    binding:"omitempty,uuid"`
	SpeakerID string  `json:"speaker_id" binding:"required,uuid"`
}

// UpdateSeminarRequest 更新讲座请求
type UpdateSeminarRequest struct {
	Title     *string `json:"title"      binding:"omitempty,max=300"`
	Abstract  *string `json:"abstract"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	RoomID    *string `json:"room_id"    binding:"omitempty,uuid"`
	Status    *string `json:"status"     binding:"omitempty,oneof=planned confirmed cancelled completed"`
}

// SeminarResponse 讲座响应
type SeminarResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Abstract     string           `json:"abstract"`
	Date         string           `json:"date,omitempty"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	Room         *RoomResponse    `json:"room,omitempty"`
	Speaker      *SpeakerResponse `json:"speaker,omitempty"`
	SlotID       *string          `json:"slot_id,omitempty"`
	SuggestionID *string          `json:"suggestion_id,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

// UpsertSeminarDetailsRequest 创建/更新讲座后勤详情
type UpsertSeminarDetailsRequest struct {
	TravelInfo     *string `json:"travel_info"`
	HotelInfo      *string `json:"hotel_info"`
	PaymentInfo    *string `json:"payment_info"`
	DocumentStatus *string `json:"document_status" binding:"omitempty,max=50"`
	DietaryNotes   *string `json:"dietary_notes"`
}

// SeminarDetailsResponse 讲座后勤详情响应
type SeminarDetailsResponse struct {
	SeminarID      string `json:"seminar_id"`
	TravelInfo     string `json:"travel_info"`
	HotelInfo      string `json:"hotel_info"`
	PaymentInfo    string `json:"payment_info"`
	DocumentStatus string `json:"document_status"`
	DietaryNotes   string `json:"dietary_notes"`
	UpdatedAt      string `json:"updated_at"`
}
