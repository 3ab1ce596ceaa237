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

// ── 学期计划模块业务错误 ──

var ErrPlanNotFound = errors.New("学期计划不存在")

// PlanService 学期计划业务接口
type PlanService interface {
	Create(ctx context.Context, req *dto.CreatePlanRequest, callerID string) (*dto.PlanResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PlanResponse, error)
	List(ctx context.Context) ([]dto.PlanResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlanRequest, callerID string) (*dto.PlanResponse, error)
}

type planService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, logger *zap.Logger) PlanService {
	return &planService{repo: repo, logger: logger}
}

func (s *planService) Create(ctx context.Context, req *dto.CreatePlanRequest, callerID string) (*dto.PlanResponse, error) {
	plan := &model.SemesterPlan{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
		Status:       model.PlanStatusDraft,
	}
	plan.CreatedBy = &callerID
	plan.UpdatedBy = &callerID

	if err := s.repo.SemesterPlan.Create(ctx, plan); err != nil {
		s.logger.Error("创建学期计划失败", zap.Error(err))
		return nil, err
	}

	return toPlanResponse(plan), nil
}

func (s *planService) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	plan, err := s.repo.SemesterPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toPlanResponse(plan), nil
}

func (s *planService) List(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.repo.SemesterPlan.List(ctx)
	if err != nil {
		s.logger.Error("列出学期计划失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *toPlanResponse(&plans[i]))
	}

	return result, nil
}

func (s *planService) Update(ctx context.Context, id string, req *dto.UpdatePlanRequest, callerID string) (*dto.PlanResponse, error) {
	plan, err := s.repo.SemesterPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.AcademicYear != nil {
		plan.AcademicYear = *req.AcademicYear
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	plan.UpdatedBy = &callerID

	if err := s.repo.SemesterPlan.Update(ctx, plan); err != nil {
		s.logger.Error("更新学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toPlanResponse(plan), nil
}

// ── 内部辅助方法 ──

func toPlanResponse(plan *model.SemesterPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           plan.SemesterPlanID,
		Name:         plan.Name,
		AcademicYear: plan.AcademicYear,
		Status:       plan.Status,
		CreatedAt:    plan.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    plan.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
