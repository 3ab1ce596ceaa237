package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// UploadedFileRepository 上传文件元数据数据访问接口
type UploadedFileRepository interface {
	Create(ctx context.Context, file *model.UploadedFile) error
	GetByID(ctx context.Context, id string) (*model.UploadedFile, error)
	ListByOwner(ctx context.Context, entityType, entityID string) ([]model.UploadedFile, error)
	Delete(ctx context.Context, id string) error
}

type uploadedFileRepo struct {
	db *gorm.DB
}

// NewUploadedFileRepo 创建 UploadedFileRepository 实例
func NewUploadedFileRepo(db *gorm.DB) UploadedFileRepository {
	return &uploadedFileRepo{db: db}
}

func (r *uploadedFileRepo) Create(ctx context.Context, file *model.UploadedFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *uploadedFileRepo) GetByID(ctx context.Context, id string) (*model.UploadedFile, error) {
	var file model.UploadedFile
	err := r.db.WithContext(ctx).
		Where("file_id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *uploadedFileRepo) ListByOwner(ctx context.Context, entityType, entityID string) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&files).Error
	return files, err
}

func (r *uploadedFileRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("file_id = ?", id).
		Delete(&model.UploadedFile{}).Error
}
