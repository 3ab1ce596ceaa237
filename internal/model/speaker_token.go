package model

import "time"

// 讲者自助令牌类型
const (
	TokenTypeAvailability = "availability" // 可用时间征集表单
	TokenTypeDetails      = "details"      // 行程/报销信息表单
)

// SpeakerToken 讲者自助令牌表 — 对应 speaker_tokens
// 面向讲者公开表单的能力凭证，作用域为单个推荐；令牌不得比推荐存活更久
type SpeakerToken struct {
	TokenID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"token_id"`
	SuggestionID string    `gorm:"type:uuid;not null"                             json:"suggestion_id"`
	SeminarID    *string   `gorm:"type:uuid"                                      json:"seminar_id,omitempty"`
	Token        string    `gorm:"type:varchar(64);not null;uniqueIndex"          json:"token"`
	Type         string    `gorm:"type:varchar(20);not null"                      json:"type"`
	ExpiresAt    time.Time `gorm:"not null"                                       json:"expires_at"`
	BaseModel
}

// TableName 指定表名
func (SpeakerToken) TableName() string { return "speaker_tokens" }

// Expired 判断令牌是否已过期
func (t *SpeakerToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
