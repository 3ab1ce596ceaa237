package model

import "time"

// 可用时间偏好
const (
	AvailabilityPreferred   = "preferred"
	AvailabilityPossible    = "possible"
	AvailabilityUnavailable = "unavailable"
)

// SpeakerAvailability 讲者可用时间表 — 对应 speaker_availabilities
// 推荐的子实体，随推荐一同删除
type SpeakerAvailability struct {
	AvailabilityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	SuggestionID   string    `gorm:"type:uuid;not null"                             json:"suggestion_id"`
	StartDate      time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Preference     string    `gorm:"type:varchar(20);not null;default:'possible'"   json:"preference"`
	BaseModel
}

// TableName 指定表名
func (SpeakerAvailability) TableName() string { return "speaker_availabilities" }
