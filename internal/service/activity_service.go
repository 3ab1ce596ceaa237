package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ActivityService 活动日志业务接口
type ActivityService interface {
	List(ctx context.Context, req *dto.ActivityListRequest) ([]dto.ActivityEventResponse, int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) List(ctx context.Context, req *dto.ActivityListRequest) ([]dto.ActivityEventResponse, int64, error) {
	events, total, err := s.repo.ActivityEvent.List(ctx, req.SemesterPlanID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询活动日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityEventResponse, 0, len(events))
	for i := range events {
		e := &events[i]
		result = append(result, dto.ActivityEventResponse{
			ID:         e.EventID,
			EventType:  e.EventType,
			Summary:    e.Summary,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			CreatedAt:  e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	return result, total, nil
}

// recordActivity 在操作成功提交后追加活动日志
// 审计写入为尽力而为：失败只记日志，不影响主操作结果
func recordActivity(ctx context.Context, repo *repository.Repository, logger *zap.Logger, event *model.ActivityEvent) {
	if err := repo.ActivityEvent.Create(ctx, event); err != nil {
		logger.Warn("写入活动日志失败",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}
