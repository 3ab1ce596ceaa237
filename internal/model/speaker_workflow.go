package model

// SpeakerWorkflow 讲者联系流程记录表 — 对应 speaker_workflows
// 记录推荐在联系/确认工作流中的每一步（状态迁移、发送邮件、备注等）
type SpeakerWorkflow struct {
	WorkflowID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workflow_id"`
	SuggestionID string `gorm:"type:uuid;not null"                             json:"suggestion_id"`
	Action       string `gorm:"type:varchar(50);not null"                      json:"action"`
	Note         string `gorm:"type:text"                                      json:"note"`
	BaseModel
}

// TableName 指定表名
func (SpeakerWorkflow) TableName() string { return "speaker_workflows" }
