package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SpeakerSuggestionRepository 讲者推荐数据访问接口
type SpeakerSuggestionRepository interface {
	Create(ctx context.Context, suggestion *model.SpeakerSuggestion) error
	GetByID(ctx context.Context, id string) (*model.SpeakerSuggestion, error)
	List(ctx context.Context, planID, status string, offset, limit int) ([]model.SpeakerSuggestion, int64, error)
	ListByPlan(ctx context.Context, planID string) ([]model.SpeakerSuggestion, error)
	Update(ctx context.Context, suggestion *model.SpeakerSuggestion) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error

	// ClearSpeaker 将引用该讲者的推荐置空 speaker_id（快照字段保留）
	ClearSpeaker(ctx context.Context, speakerID string) (int64, error)
}

// SpeakerAvailabilityRepository 讲者可用时间数据访问接口
type SpeakerAvailabilityRepository interface {
	Create(ctx context.Context, availability *model.SpeakerAvailability) error
	ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerAvailability, error)
	DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) error
}

// SpeakerWorkflowRepository 讲者联系流程数据访问接口
type SpeakerWorkflowRepository interface {
	Create(ctx context.Context, entry *model.SpeakerWorkflow) error
	ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerWorkflow, error)
	DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) error
}

// ── SpeakerSuggestion Repository 实现 ──

type speakerSuggestionRepo struct {
	db *gorm.DB
}

// NewSpeakerSuggestionRepo 创建 SpeakerSuggestionRepository 实例
func NewSpeakerSuggestionRepo(db *gorm.DB) SpeakerSuggestionRepository {
	return &speakerSuggestionRepo{db: db}
}

func (r *speakerSuggestionRepo) Create(ctx context.Context, suggestion *model.SpeakerSuggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *speakerSuggestionRepo) GetByID(ctx context.Context, id string) (*model.SpeakerSuggestion, error) {
	var suggestion model.SpeakerSuggestion
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Where("suggestion_id = ?", id).
		First(&suggestion).Error
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *speakerSuggestionRepo) List(ctx context.Context, planID, status string, offset, limit int) ([]model.SpeakerSuggestion, int64, error) {
	var suggestions []model.SpeakerSuggestion
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SpeakerSuggestion{})
	if planID != "" {
		db = db.Where("semester_plan_id = ?", planID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, total, err
}

func (r *speakerSuggestionRepo) ListByPlan(ctx context.Context, planID string) ([]model.SpeakerSuggestion, error) {
	var suggestions []model.SpeakerSuggestion
	err := r.db.WithContext(ctx).
		Where("semester_plan_id = ?", planID).
		Find(&suggestions).Error
	return suggestions, err
}

func (r *speakerSuggestionRepo) Update(ctx context.Context, suggestion *model.SpeakerSuggestion) error {
	return r.db.WithContext(ctx).Save(suggestion).Error
}

func (r *speakerSuggestionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("suggestion_id = ?", id).
		Delete(&model.SpeakerSuggestion{}).Error
}

func (r *speakerSuggestionRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("suggestion_id IN ?", ids).
		Delete(&model.SpeakerSuggestion{}).Error
}

func (r *speakerSuggestionRepo) ClearSpeaker(ctx context.Context, speakerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SpeakerSuggestion{}).
		Where("speaker_id = ?", speakerID).
		Update("speaker_id", nil)
	return result.RowsAffected, result.Error
}

// ── SpeakerAvailability Repository 实现 ──

type speakerAvailabilityRepo struct {
	db *gorm.DB
}

// NewSpeakerAvailabilityRepo 创建 SpeakerAvailabilityRepository 实例
func NewSpeakerAvailabilityRepo(db *gorm.DB) SpeakerAvailabilityRepository {
	return &speakerAvailabilityRepo{db: db}
}

func (r *speakerAvailabilityRepo) Create(ctx context.Context, availability *model.SpeakerAvailability) error {
	return r.db.WithContext(ctx).Create(availability).Error
}

func (r *speakerAvailabilityRepo) ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerAvailability, error) {
	var availabilities []model.SpeakerAvailability
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Order("start_date ASC").
		Find(&availabilities).Error
	return availabilities, err
}

func (r *speakerAvailabilityRepo) DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) error {
	if len(suggestionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("suggestion_id IN ?", suggestionIDs).
		Delete(&model.SpeakerAvailability{}).Error
}

// ── SpeakerWorkflow Repository 实现 ──

type speakerWorkflowRepo struct {
	db *gorm.DB
}

// NewSpeakerWorkflowRepo 创建 SpeakerWorkflowRepository 实例
func NewSpeakerWorkflowRepo(db *gorm.DB) SpeakerWorkflowRepository {
	return &speakerWorkflowRepo{db: db}
}

func (r *speakerWorkflowRepo) Create(ctx context.Context, entry *model.SpeakerWorkflow) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *speakerWorkflowRepo) ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerWorkflow, error) {
	var entries []model.SpeakerWorkflow
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *speakerWorkflowRepo) DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) error {
	if len(suggestionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("suggestion_id IN ?", suggestionIDs).
		Delete(&model.SpeakerWorkflow{}).Error
}
