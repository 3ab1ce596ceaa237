package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// ActivityEventRepository 活动日志数据访问接口（仅追加）
type ActivityEventRepository interface {
	Create(ctx context.Context, event *model.ActivityEvent) error
	List(ctx context.Context, planID string, offset, limit int) ([]model.ActivityEvent, int64, error)
	DeleteByPlan(ctx context.Context, planID string) error
}

type activityEventRepo struct {
	db *gorm.DB
}

// NewActivityEventRepo 创建 ActivityEventRepository 实例
func NewActivityEventRepo(db *gorm.DB) ActivityEventRepository {
	return &activityEventRepo{db: db}
}

func (r *activityEventRepo) Create(ctx context.Context, event *model.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *activityEventRepo) List(ctx context.Context, planID string, offset, limit int) ([]model.ActivityEvent, int64, error) {
	var events []model.ActivityEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityEvent{})
	if planID != "" {
		db = db.Where("semester_plan_id = ?", planID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&events).Error
	return events, total, err
}

func (r *activityEventRepo) DeleteByPlan(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).
		Where("semester_plan_id = ?", planID).
		Delete(&model.ActivityEvent{}).Error
}
