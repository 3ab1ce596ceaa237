package dto

// ── 讲者模块 ──

// CreateSpeakerRequest 创建讲者请求
type CreateSpeakerRequest struct {
	Name        string `json:"name"        binding:"required,max=200"`
	Email       string `json:"email"       binding:"omitempty,email"`
	Affiliation string `json:"affiliation" binding:"omitempty,max=255"`
	Bio         string `json:"bio"`
}

// UpdateSpeakerRequest 更新讲者请求（字段均可选）
type UpdateSpeakerRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=200"`
	Email       *string `json:"email"       binding:"omitempty,email"`
	Affiliation *string `json:"affiliation" binding:"omitempty,max=255"`
	Bio         *string `json:"bio"`
}

// SpeakerResponse 讲者响应
type SpeakerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Bio         string `json:"bio"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ── 场地模块 ──

// CreateRoomRequest 创建场地请求
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Building string `json:"building" binding:"omitempty,max=100"`
	Capacity int    `json:"capacity" binding:"omitempty,min=0"`
	Notes    string `json:"notes"`
}

// UpdateRoomRequest 更新场地请求
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=100"`
	Building *string `json:"building" binding:"omitempty,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=0"`
	Notes    *string `json:"notes"`
}

// RoomResponse 场地响应
type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}
