package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SeminarRepository 讲座数据访问接口
type SeminarRepository interface {
	Create(ctx context.Context, seminar *model.Seminar) error
	GetByID(ctx context.Context, id string) (*model.Seminar, error)
	GetBySlot(ctx context.Context, slotID string) (*model.Seminar, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.Seminar, int64, error)
	Update(ctx context.Context, seminar *model.Seminar) error
	Delete(ctx context.Context, id string) error

	// ListBySpeaker 查询引用该讲者的讲座（limit<=0 表示不限制）
	ListBySpeaker(ctx context.Context, speakerID string, limit int) ([]model.Seminar, error)
	// ListBySlotIDs 查询绑定到任一给定时段的讲座
	ListBySlotIDs(ctx context.Context, slotIDs []string) ([]model.Seminar, error)
	// ClearRoom 将引用该场地的讲座置空场地
	ClearRoom(ctx context.Context, roomID string) (int64, error)
	// ClearSlot 解除讲座到时段的指针（讲座保留，可重新排期）
	ClearSlot(ctx context.Context, seminarID string) error
}

// SeminarDetailsRepository 讲座后勤详情数据访问接口
type SeminarDetailsRepository interface {
	GetBySeminar(ctx context.Context, seminarID string) (*model.SeminarDetails, error)
	Create(ctx context.Context, details *model.SeminarDetails) error
	Update(ctx context.Context, details *model.SeminarDetails) error
	DeleteBySeminar(ctx context.Context, seminarID string) error
}

// ── Seminar Repository 实现 ──

type seminarRepo struct {
	db *gorm.DB
}

// NewSeminarRepo 创建 SeminarRepository 实例
func NewSeminarRepo(db *gorm.DB) SeminarRepository {
	return &seminarRepo{db: db}
}

func (r *seminarRepo) Create(ctx context.Context, seminar *model.Seminar) error {
	return r.db.WithContext(ctx).Create(seminar).Error
}

func (r *seminarRepo) GetByID(ctx context.Context, id string) (*model.Seminar, error) {
	var seminar model.Seminar
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Preload("Room").
		Where("seminar_id = ?", id).
		First(&seminar).Error
	if err != nil {
		return nil, err
	}
	return &seminar, nil
}

func (r *seminarRepo) GetBySlot(ctx context.Context, slotID string) (*model.Seminar, error) {
	var seminar model.Seminar
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Preload("Room").
		Where("slot_id = ?", slotID).
		First(&seminar).Error
	if err != nil {
		return nil, err
	}
	return &seminar, nil
}

func (r *seminarRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Seminar, int64, error) {
	var seminars []model.Seminar
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Seminar{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Speaker").Preload("Room").
		Offset(offset).Limit(limit).
		Order("date ASC, start_time ASC").
		Find(&seminars).Error
	return seminars, total, err
}

func (r *seminarRepo) Update(ctx context.Context, seminar *model.Seminar) error {
	return r.db.WithContext(ctx).Save(seminar).Error
}

func (r *seminarRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("seminar_id = ?", id).
		Delete(&model.Seminar{}).Error
}

func (r *seminarRepo) ListBySpeaker(ctx context.Context, speakerID string, limit int) ([]model.Seminar, error) {
	var seminars []model.Seminar
	db := r.db.WithContext(ctx).
		Where("speaker_id = ?", speakerID).
		Order("date ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&seminars).Error
	return seminars, err
}

func (r *seminarRepo) ListBySlotIDs(ctx context.Context, slotIDs []string) ([]model.Seminar, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}
	var seminars []model.Seminar
	err := r.db.WithContext(ctx).
		Preload("Speaker").
		Preload("Room").
		Where("slot_id IN ?", slotIDs).
		Find(&seminars).Error
	return seminars, err
}

func (r *seminarRepo) ClearRoom(ctx context.Context, roomID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Seminar{}).
		Where("room_id = ?", roomID).
		Update("room_id", nil)
	return result.RowsAffected, result.Error
}

func (r *seminarRepo) ClearSlot(ctx context.Context, seminarID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Seminar{}).
		Where("seminar_id = ?", seminarID).
		Update("slot_id", nil).Error
}

// ── SeminarDetails Repository 实现 ──

type seminarDetailsRepo struct {
	db *gorm.DB
}

// NewSeminarDetailsRepo 创建 SeminarDetailsRepository 实例
func NewSeminarDetailsRepo(db *gorm.DB) SeminarDetailsRepository {
	return &seminarDetailsRepo{db: db}
}

func (r *seminarDetailsRepo) GetBySeminar(ctx context.Context, seminarID string) (*model.SeminarDetails, error) {
	var details model.SeminarDetails
	err := r.db.WithContext(ctx).
		Where("seminar_id = ?", seminarID).
		First(&details).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *seminarDetailsRepo) Create(ctx context.Context, details *model.SeminarDetails) error {
	return r.db.WithContext(ctx).Create(details).Error
}

func (r *seminarDetailsRepo) Update(ctx context.Context, details *model.SeminarDetails) error {
	return r.db.WithContext(ctx).Save(details).Error
}

func (r *seminarDetailsRepo) DeleteBySeminar(ctx context.Context, seminarID string) error {
	return r.db.WithContext(ctx).
		Where("seminar_id = ?", seminarID).
		Delete(&model.SeminarDetails{}).Error
}
