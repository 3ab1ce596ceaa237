package model

import "time"

// 讲座状态
const (
	SeminarStatusPlanned   = "planned"
	SeminarStatusConfirmed = "confirmed"
	SeminarStatusCancelled = "cancelled"
	SeminarStatusCompleted = "completed"
)

// Seminar 讲座表 — 对应 seminars
// 讲座可以不占用时段（临时加场），slot_id 唯一：一个时段同时最多绑定一场讲座。
// speaker_id 在 schema 层面允许为空（历史迁移数据），业务上新建讲座必须带讲者。
type Seminar struct {
	SeminarID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"seminar_id"`
	Title        string     `gorm:"type:varchar(300);not null"                     json:"title"`
	Abstract     string     `gorm:"type:text"                                      json:"abstract"`
	Date         *time.Time `gorm:"type:date"                                      json:"date,omitempty"`
	StartTime    string     `gorm:"type:time"                                      json:"start_time"`
	EndTime      string     `gorm:"type:time"                                      json:"end_time"`
	RoomID       *string    `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	SpeakerID    *string    `gorm:"type:uuid"                                      json:"speaker_id,omitempty"`
	SlotID       *string    `gorm:"type:uuid;uniqueIndex"                          json:"slot_id,omitempty"`
	SuggestionID *string    `gorm:"type:uuid"                                      json:"suggestion_id,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	BaseModel

	// 关联
	Speaker *Speaker `gorm:"foreignKey:SpeakerID;references:SpeakerID" json:"speaker,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID;references:RoomID"       json:"room,omitempty"`
}

// TableName 指定表名
func (Seminar) TableName() string { return "seminars" }
