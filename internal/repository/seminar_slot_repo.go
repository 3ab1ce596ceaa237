package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SeminarSlotRepository 讲座时段数据访问接口
type SeminarSlotRepository interface {
	Create(ctx context.Context, slot *model.SeminarSlot) error
	GetByID(ctx context.Context, id string) (*model.SeminarSlot, error)
	ListByPlan(ctx context.Context, planID string) ([]model.SeminarSlot, error)
	Update(ctx context.Context, slot *model.SeminarSlot) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error

	// ClearBySeminar 解除所有指向该讲座的时段：清空指针并重置为 available
	ClearBySeminar(ctx context.Context, seminarID string) (int64, error)
	// ClearBySuggestion 解除所有指向该推荐的时段：清空指针并重置为 available
	ClearBySuggestion(ctx context.Context, suggestionID string) (int64, error)
	// ClearRoom 将引用该场地的时段置空场地
	ClearRoom(ctx context.Context, roomID string) (int64, error)
}

type seminarSlotRepo struct {
	db *gorm.DB
}

// NewSeminarSlotRepo 创建 SeminarSlotRepository 实例
func NewSeminarSlotRepo(db *gorm.DB) SeminarSlotRepository {
	return &seminarSlotRepo{db: db}
}

func (r *seminarSlotRepo) Create(ctx context.Context, slot *model.SeminarSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *seminarSlotRepo) GetByID(ctx context.Context, id string) (*model.SeminarSlot, error) {
	var slot model.SeminarSlot
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *seminarSlotRepo) ListByPlan(ctx context.Context, planID string) ([]model.SeminarSlot, error) {
	var slots []model.SeminarSlot
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("semester_plan_id = ?", planID).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *seminarSlotRepo) Update(ctx context.Context, slot *model.SeminarSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *seminarSlotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.SeminarSlot{}).Error
}

func (r *seminarSlotRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("slot_id IN ?", ids).
		Delete(&model.SeminarSlot{}).Error
}

func (r *seminarSlotRepo) ClearBySeminar(ctx context.Context, seminarID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SeminarSlot{}).
		Where("assigned_seminar_id = ?", seminarID).
		Updates(map[string]interface{}{
			"assigned_seminar_id":    nil,
			"assigned_suggestion_id": nil,
			"status":                 model.SlotStatusAvailable,
		})
	return result.RowsAffected, result.Error
}

func (r *seminarSlotRepo) ClearBySuggestion(ctx context.Context, suggestionID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SeminarSlot{}).
		Where("assigned_suggestion_id = ?", suggestionID).
		Updates(map[string]interface{}{
			"assigned_seminar_id":    nil,
			"assigned_suggestion_id": nil,
			"status":                 model.SlotStatusAvailable,
		})
	return result.RowsAffected, result.Error
}

func (r *seminarSlotRepo) ClearRoom(ctx context.Context, roomID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SeminarSlot{}).
		Where("room_id = ?", roomID).
		Update("room_id", nil)
	return result.RowsAffected, result.Error
}
