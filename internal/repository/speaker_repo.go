package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SpeakerRepository 讲者数据访问接口
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *model.Speaker) error
	GetByID(ctx context.Context, id string) (*model.Speaker, error)
	GetByEmail(ctx context.Context, email string) (*model.Speaker, error)
	List(ctx context.Context, offset, limit int) ([]model.Speaker, int64, error)
	Update(ctx context.Context, speaker *model.Speaker) error
	Delete(ctx context.Context, id string) error
}

type speakerRepo struct {
	db *gorm.DB
}

// NewSpeakerRepo 创建 SpeakerRepository 实例
func NewSpeakerRepo(db *gorm.DB) SpeakerRepository {
	return &speakerRepo{db: db}
}

func (r *speakerRepo) Create(ctx context.Context, speaker *model.Speaker) error {
	return r.db.WithContext(ctx).Create(speaker).Error
}

func (r *speakerRepo) GetByID(ctx context.Context, id string) (*model.Speaker, error) {
	var speaker model.Speaker
	err := r.db.WithContext(ctx).
		Where("speaker_id = ?", id).
		First(&speaker).Error
	if err != nil {
		return nil, err
	}
	return &speaker, nil
}

func (r *speakerRepo) GetByEmail(ctx context.Context, email string) (*model.Speaker, error) {
	var speaker model.Speaker
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&speaker).Error
	if err != nil {
		return nil, err
	}
	return &speaker, nil
}

func (r *speakerRepo) List(ctx context.Context, offset, limit int) ([]model.Speaker, int64, error) {
	var speakers []model.Speaker
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Speaker{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&speakers).Error
	return speakers, total, err
}

func (r *speakerRepo) Update(ctx context.Context, speaker *model.Speaker) error {
	return r.db.WithContext(ctx).Save(speaker).Error
}

func (r *speakerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("speaker_id = ?", id).
		Delete(&model.Speaker{}).Error
}
