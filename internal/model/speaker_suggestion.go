package model

// 讲者推荐工作流状态：线性推进，declined 可从任意非终态进入
const (
	SuggestionStatusPending              = "pending"
	SuggestionStatusContacted            = "contacted"
	SuggestionStatusCheckingAvailability = "checking_availability"
	SuggestionStatusAvailabilityReceived = "availability_received"
	SuggestionStatusConfirmed            = "confirmed"
	SuggestionStatusDeclined             = "declined"
	SuggestionStatusCompleted            = "completed"
)

// SpeakerSuggestion 讲者推荐表 — 对应 speaker_suggestions
//
// speaker_name/email/affiliation 是提交时的快照字段，与 Speaker 实体刻意不统一：
// 推荐可能尚未（或永远不会）关联到真实 Speaker 记录，且快照必须在
// Speaker 被删除后继续存在。
type SpeakerSuggestion struct {
	SuggestionID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"suggestion_id"`
	SpeakerID          *string `gorm:"type:uuid"                                      json:"speaker_id,omitempty"`
	SemesterPlanID     *string `gorm:"type:uuid"                                      json:"semester_plan_id,omitempty"`
	SpeakerName        string  `gorm:"type:varchar(200);not null"                     json:"speaker_name"`
	SpeakerEmail       string  `gorm:"type:varchar(255)"                              json:"speaker_email"`
	SpeakerAffiliation string  `gorm:"type:varchar(255)"                              json:"speaker_affiliation"`
	SuggestedTopic     string  `gorm:"type:text"                                      json:"suggested_topic"`
	Notes              string  `gorm:"type:text"                                      json:"notes"`
	Status             string  `gorm:"type:varchar(30);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Speaker      *Speaker      `gorm:"foreignKey:SpeakerID;references:SpeakerID"           json:"speaker,omitempty"`
	SemesterPlan *SemesterPlan `gorm:"foreignKey:SemesterPlanID;references:SemesterPlanID" json:"semester_plan,omitempty"`
}

// TableName 指定表名
func (SpeakerSuggestion) TableName() string { return "speaker_suggestions" }

// suggestionStatusOrder 线性工作流中各状态的序号（terminal 状态除外）
var suggestionStatusOrder = map[string]int{
	SuggestionStatusPending:              0,
	SuggestionStatusContacted:            1,
	SuggestionStatusCheckingAvailability: 2,
	SuggestionStatusAvailabilityReceived: 3,
	SuggestionStatusConfirmed:            4,
	SuggestionStatusCompleted:            5,
}

// IsTerminalSuggestionStatus 判断状态是否为终态
func IsTerminalSuggestionStatus(status string) bool {
	return status == SuggestionStatusDeclined || status == SuggestionStatusCompleted
}

// CanTransitionSuggestion 校验推荐状态迁移是否合法：
// 沿线性链前进（允许跳级），或从任意非终态进入 declined。
func CanTransitionSuggestion(from, to string) bool {
	if IsTerminalSuggestionStatus(from) {
		return false
	}
	if to == SuggestionStatusDeclined {
		return true
	}
	fromOrd, ok1 := suggestionStatusOrder[from]
	toOrd, ok2 := suggestionStatusOrder[to]
	if !ok1 || !ok2 {
		return false
	}
	return toOrd > fromOrd
}
