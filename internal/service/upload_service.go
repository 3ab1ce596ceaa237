package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
	"github.com/inaciog/seminars-app-sub000/pkg/storage"
)

// ── 上传文件模块业务错误 ──

var (
	ErrFileNotFound     = errors.New("文件不存在")
	ErrFileOwnerInvalid = errors.New("文件归属实体不存在")
)

// UploadService 上传文件业务接口
// DB 元数据与磁盘文件一起维护：写入先落盘再记行，删除先删行再删盘
type UploadService interface {
	Attach(ctx context.Context, entityType, entityID, originalName, contentType string, size int64, r io.Reader, callerID string) (*dto.FileResponse, error)
	ListByOwner(ctx context.Context, entityType, entityID string) ([]dto.FileResponse, error)
	Open(ctx context.Context, fileID string) (*model.UploadedFile, io.ReadCloser, error)
	Delete(ctx context.Context, fileID string) error
}

type uploadService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(repo *repository.Repository, store storage.Store, logger *zap.Logger) UploadService {
	return &uploadService{repo: repo, store: store, logger: logger}
}

func (s *uploadService) Attach(ctx context.Context, entityType, entityID, originalName, contentType string, size int64, r io.Reader, callerID string) (*dto.FileResponse, error) {
	if err := s.checkOwner(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	storageName := uuid.New().String() + filepath.Ext(originalName)
	if err := s.store.Save(storageName, r); err != nil {
		s.logger.Error("保存上传文件失败", zap.String("filename", storageName), zap.Error(err))
		return nil, err
	}

	file := &model.UploadedFile{
		EntityType:      entityType,
		EntityID:        entityID,
		OriginalName:    originalName,
		StorageFilename: storageName,
		Size:            size,
		ContentType:     contentType,
	}
	file.CreatedBy = &callerID
	file.UpdatedBy = &callerID

	if err := s.repo.UploadedFile.Create(ctx, file); err != nil {
		// 元数据写入失败时回收磁盘文件，避免孤儿
		if rmErr := s.store.Remove(storageName); rmErr != nil && !errors.Is(rmErr, storage.ErrNotExist) {
			s.logger.Warn("回收磁盘文件失败", zap.String("filename", storageName), zap.Error(rmErr))
		}
		s.logger.Error("写入文件元数据失败", zap.Error(err))
		return nil, err
	}

	return toFileResponse(file), nil
}

func (s *uploadService) ListByOwner(ctx context.Context, entityType, entityID string) ([]dto.FileResponse, error) {
	files, err := s.repo.UploadedFile.ListByOwner(ctx, entityType, entityID)
	if err != nil {
		s.logger.Error("列出文件失败", zap.String("entity_id", entityID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.FileResponse, 0, len(files))
	for i := range files {
		result = append(result, *toFileResponse(&files[i]))
	}

	return result, nil
}

func (s *uploadService) Open(ctx context.Context, fileID string) (*model.UploadedFile, io.ReadCloser, error) {
	file, err := s.repo.UploadedFile.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFileNotFound
		}
		s.logger.Error("查询文件失败", zap.String("id", fileID), zap.Error(err))
		return nil, nil, err
	}

	rc, err := s.store.Open(file.StorageFilename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrFileNotFound
		}
		s.logger.Error("打开文件失败", zap.String("filename", file.StorageFilename), zap.Error(err))
		return nil, nil, err
	}

	return file, rc, nil
}

func (s *uploadService) Delete(ctx context.Context, fileID string) error {
	file, err := s.repo.UploadedFile.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		s.logger.Error("查询文件失败", zap.String("id", fileID), zap.Error(err))
		return err
	}

	if err := s.repo.UploadedFile.Delete(ctx, fileID); err != nil {
		s.logger.Error("删除文件元数据失败", zap.String("id", fileID), zap.Error(err))
		return err
	}

	// 磁盘文件丢失不视为失败
	if err := s.store.Remove(file.StorageFilename); err != nil && !errors.Is(err, storage.ErrNotExist) {
		s.logger.Warn("删除磁盘文件失败", zap.String("filename", file.StorageFilename), zap.Error(err))
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *uploadService) checkOwner(ctx context.Context, entityType, entityID string) error {
	switch entityType {
	case model.FileOwnerSeminar:
		if _, err := s.repo.Seminar.GetByID(ctx, entityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFileOwnerInvalid
			}
			return err
		}
	case model.FileOwnerSuggestion:
		if _, err := s.repo.Suggestion.GetByID(ctx, entityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFileOwnerInvalid
			}
			return err
		}
	default:
		return fmt.Errorf("%w: 未知实体类型 %q", ErrFileOwnerInvalid, entityType)
	}
	return nil
}

func toFileResponse(file *model.UploadedFile) *dto.FileResponse {
	return &dto.FileResponse{
		ID:           file.FileID,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		ContentType:  file.ContentType,
		CreatedAt:    file.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
