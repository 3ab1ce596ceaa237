package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SemesterPlanRepository 学期计划数据访问接口
type SemesterPlanRepository interface {
	Create(ctx context.Context, plan *model.SemesterPlan) error
	GetByID(ctx context.Context, id string) (*model.SemesterPlan, error)
	List(ctx context.Context) ([]model.SemesterPlan, error)
	Update(ctx context.Context, plan *model.SemesterPlan) error
	Delete(ctx context.Context, id string) error
}

type semesterPlanRepo struct {
	db *gorm.DB
}

// NewSemesterPlanRepo 创建 SemesterPlanRepository 实例
func NewSemesterPlanRepo(db *gorm.DB) SemesterPlanRepository {
	return &semesterPlanRepo{db: db}
}

func (r *semesterPlanRepo) Create(ctx context.Context, plan *model.SemesterPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *semesterPlanRepo) GetByID(ctx context.Context, id string) (*model.SemesterPlan, error) {
	var plan model.SemesterPlan
	err := r.db.WithContext(ctx).
		Where("semester_plan_id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *semesterPlanRepo) List(ctx context.Context) ([]model.SemesterPlan, error) {
	var plans []model.SemesterPlan
	err := r.db.WithContext(ctx).
		Order("academic_year DESC, name ASC").
		Find(&plans).Error
	return plans, err
}

func (r *semesterPlanRepo) Update(ctx context.Context, plan *model.SemesterPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *semesterPlanRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_plan_id = ?", id).
		Delete(&model.SemesterPlan{}).Error
}
