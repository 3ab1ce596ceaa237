package model

import "time"

// 讲座时段状态机: available → reserved|confirmed → available（取消分配）
// cancelled 为终态
const (
	SlotStatusAvailable = "available"
	SlotStatusReserved  = "reserved"
	SlotStatusConfirmed = "confirmed"
	SlotStatusCancelled = "cancelled"
)

// SeminarSlot 讲座时段表 — 对应 seminar_slots
// 时段与讲座的指针对称：slot.assigned_seminar_id 与 seminar.slot_id 必须一致，
// 破坏其中一侧时必须同步修正另一侧（由删除引擎 / 分配引擎保证）。
type SeminarSlot struct {
	SlotID               string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	SemesterPlanID       string    `gorm:"type:uuid;not null"                             json:"semester_plan_id"`
	Date                 time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime            string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime              string    `gorm:"type:time;not null"                             json:"end_time"`
	RoomID               *string   `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	Status               string    `gorm:"type:varchar(20);not null;default:'available'"  json:"status"`
	AssignedSeminarID    *string   `gorm:"type:uuid"                                      json:"assigned_seminar_id,omitempty"`
	AssignedSuggestionID *string   `gorm:"type:uuid"                                      json:"assigned_suggestion_id,omitempty"`
	BaseModel

	// 关联
	SemesterPlan *SemesterPlan `gorm:"foreignKey:SemesterPlanID;references:SemesterPlanID" json:"semester_plan,omitempty"`
	Room         *Room         `gorm:"foreignKey:RoomID;references:RoomID"                 json:"room,omitempty"`
}

// TableName 指定表名
func (SeminarSlot) TableName() string { return "seminar_slots" }
