package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 讲者模块业务错误 ──

var ErrSpeakerNotFound = errors.New("讲者不存在")

// SpeakerService 讲者业务接口
type SpeakerService interface {
	Create(ctx context.Context, req *dto.CreateSpeakerRequest, callerID string) (*dto.SpeakerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SpeakerResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.SpeakerResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSpeakerRequest, callerID string) (*dto.SpeakerResponse, error)
}

type speakerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpeakerService 创建 SpeakerService 实例
func NewSpeakerService(repo *repository.Repository, logger *zap.Logger) SpeakerService {
	return &speakerService{repo: repo, logger: logger}
}

func (s *speakerService) Create(ctx context.Context, req *dto.CreateSpeakerRequest, callerID string) (*dto.SpeakerResponse, error) {
	speaker := &model.Speaker{
		Name:        req.Name,
		Email:       req.Email,
		Affiliation: req.Affiliation,
		Bio:         req.Bio,
	}
	speaker.CreatedBy = &callerID
	speaker.UpdatedBy = &callerID

	if err := s.repo.Speaker.Create(ctx, speaker); err != nil {
		s.logger.Error("创建讲者失败", zap.Error(err))
		return nil, err
	}

	return toSpeakerResponse(speaker), nil
}

func (s *speakerService) GetByID(ctx context.Context, id string) (*dto.SpeakerResponse, error) {
	speaker, err := s.repo.Speaker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		s.logger.Error("查询讲者失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSpeakerResponse(speaker), nil
}

func (s *speakerService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.SpeakerResponse, int64, error) {
	speakers, total, err := s.repo.Speaker.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出讲者失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SpeakerResponse, 0, len(speakers))
	for i := range speakers {
		result = append(result, *toSpeakerResponse(&speakers[i]))
	}

	return result, total, nil
}

func (s *speakerService) Update(ctx context.Context, id string, req *dto.UpdateSpeakerRequest, callerID string) (*dto.SpeakerResponse, error) {
	speaker, err := s.repo.Speaker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		s.logger.Error("查询讲者失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		speaker.Name = *req.Name
	}
	if req.Email != nil {
		speaker.Email = *req.Email
	}
	if req.Affiliation != nil {
		speaker.Affiliation = *req.Affiliation
	}
	if req.Bio != nil {
		speaker.Bio = *req.Bio
	}
	speaker.UpdatedBy = &callerID

	if err := s.repo.Speaker.Update(ctx, speaker); err != nil {
		s.logger.Error("更新讲者失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSpeakerResponse(speaker), nil
}

// ── 内部辅助方法 ──

func toSpeakerResponse(speaker *model.Speaker) *dto.SpeakerResponse {
	return &dto.SpeakerResponse{
		ID:          speaker.SpeakerID,
		Name:        speaker.Name,
		Email:       speaker.Email,
		Affiliation: speaker.Affiliation,
		Bio:         speaker.Bio,
		CreatedAt:   speaker.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   speaker.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
