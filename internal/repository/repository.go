package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Speaker       SpeakerRepository
	Room          RoomRepository
	SemesterPlan  SemesterPlanRepository
	SeminarSlot   SeminarSlotRepository
	Suggestion    SpeakerSuggestionRepository
	Availability  SpeakerAvailabilityRepository
	Workflow      SpeakerWorkflowRepository
	Token         SpeakerTokenRepository
	Seminar       SeminarRepository
	Details       SeminarDetailsRepository
	UploadedFile  UploadedFileRepository
	ActivityEvent ActivityEventRepository
	User          UserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		Speaker:       NewSpeakerRepo(db),
		Room:          NewRoomRepo(db),
		SemesterPlan:  NewSemesterPlanRepo(db),
		SeminarSlot:   NewSeminarSlotRepo(db),
		Suggestion:    NewSpeakerSuggestionRepo(db),
		Availability:  NewSpeakerAvailabilityRepo(db),
		Workflow:      NewSpeakerWorkflowRepo(db),
		Token:         NewSpeakerTokenRepo(db),
		Seminar:       NewSeminarRepo(db),
		Details:       NewSeminarDetailsRepo(db),
		UploadedFile:  NewUploadedFileRepo(db),
		ActivityEvent: NewActivityEventRepo(db),
		User:          NewUserRepo(db),
	}
}

// BeginTx 开启数据库事务
// 无底层连接（单元测试用 mock 注入）时返回 nil 事务，调用方按 nil 判断跳过提交/回滚
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到指定事务的 Repository 视图
// tx 为 nil 时返回自身（mock 场景下各仓库直接操作内存）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
