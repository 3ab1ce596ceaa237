package model

// 学期计划状态
const (
	PlanStatusDraft    = "draft"
	PlanStatusActive   = "active"
	PlanStatusArchived = "archived"
)

// SemesterPlan 学期计划表 — 对应 semester_plans
// 一个规划周期的根实体：时段、讲者推荐均挂在计划之下
type SemesterPlan struct {
	SemesterPlanID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_plan_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	AcademicYear   string `gorm:"type:varchar(20);not null"                      json:"academic_year"`
	Status         string `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | active | archived
	BaseModel
}

// TableName 指定表名
func (SemesterPlan) TableName() string { return "semester_plans" }
