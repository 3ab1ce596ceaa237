package model

import "time"

// 活动日志事件类型
const (
	EventSpeakerDeleted    = "speaker_deleted"
	EventRoomDeleted       = "room_deleted"
	EventSeminarDeleted    = "seminar_deleted"
	EventPlanDeleted       = "plan_deleted"
	EventSlotDeleted       = "slot_deleted"
	EventSuggestionDeleted = "suggestion_deleted"
	EventSlotAssigned      = "slot_assigned"
	EventSlotUnassigned    = "slot_unassigned"
	EventStatusChanged     = "suggestion_status_changed"
)

// ActivityEvent 活动日志表 — 对应 activity_events
// 仅追加的审计记录，不被任何实体反向引用
type ActivityEvent struct {
	EventID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	EventType      string    `gorm:"type:varchar(50);not null"                      json:"event_type"`
	Summary        string    `gorm:"type:text;not null"                             json:"summary"`
	EntityType     string    `gorm:"type:varchar(30)"                               json:"entity_type"`
	EntityID       *string   `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	SemesterPlanID *string   `gorm:"type:uuid"                                      json:"semester_plan_id,omitempty"`
	ActorID        *string   `gorm:"type:uuid"                                      json:"actor_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ActivityEvent) TableName() string { return "activity_events" }
