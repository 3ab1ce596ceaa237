package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 讲座时段模块业务错误 ──

var (
	ErrSlotNotFound    = errors.New("时段不存在")
	ErrSlotDateInvalid = errors.New("时段日期或时间格式无效")
)

// SlotService 讲座时段业务接口
// 删除与分配状态变更分别由删除引擎 / 分配引擎负责
type SlotService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest, callerID string) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	ListByPlan(ctx context.Context, planID string) ([]dto.SlotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSlotRequest, callerID string) (*dto.SlotResponse, error)
}

type slotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(repo *repository.Repository, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, logger: logger}
}

func (s *slotService) Create(ctx context.Context, req *dto.CreateSlotRequest, callerID string) (*dto.SlotResponse, error) {
	// 计划必须存在
	if _, err := s.repo.SemesterPlan.GetByID(ctx, req.SemesterPlanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.Error(err))
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrSlotDateInvalid
	}
	if !validTimeOfDay(req.StartTime) || !validTimeOfDay(req.EndTime) {
		return nil, ErrSlotDateInvalid
	}

	slot := &model.SeminarSlot{
		SemesterPlanID: req.SemesterPlanID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RoomID:         req.RoomID,
		Status:         model.SlotStatusAvailable,
	}
	slot.CreatedBy = &callerID
	slot.UpdatedBy = &callerID

	if err := s.repo.SeminarSlot.Create(ctx, slot); err != nil {
		s.logger.Error("创建时段失败", zap.Error(err))
		return nil, err
	}

	return toSlotResponse(slot), nil
}

func (s *slotService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.SeminarSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSlotResponse(slot), nil
}

func (s *slotService) ListByPlan(ctx context.Context, planID string) ([]dto.SlotResponse, error) {
	slots, err := s.repo.SeminarSlot.ListByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("列出时段失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}

	return result, nil
}

func (s *slotService) Update(ctx context.Context, id string, req *dto.UpdateSlotRequest, callerID string) (*dto.SlotResponse, error) {
	slot, err := s.repo.SeminarSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrSlotDateInvalid
		}
		slot.Date = date
	}
	if req.StartTime != nil {
		if !validTimeOfDay(*req.StartTime) {
			return nil, ErrSlotDateInvalid
		}
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validTimeOfDay(*req.EndTime) {
			return nil, ErrSlotDateInvalid
		}
		slot.EndTime = *req.EndTime
	}
	if req.RoomID != nil {
		slot.RoomID = req.RoomID
	}
	if req.Status != nil {
		slot.Status = *req.Status
	}
	slot.UpdatedBy = &callerID

	if err := s.repo.SeminarSlot.Update(ctx, slot); err != nil {
		s.logger.Error("更新时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSlotResponse(slot), nil
}

// ── 内部辅助方法 ──

// validTimeOfDay 校验 HH:MM 或 HH:MM:SS 格式
func validTimeOfDay(v string) bool {
	if _, err := time.Parse("15:04", v); err == nil {
		return true
	}
	if _, err := time.Parse("15:04:05", v); err == nil {
		return true
	}
	return false
}

func toSlotResponse(slot *model.SeminarSlot) *dto.SlotResponse {
	resp := &dto.SlotResponse{
		ID:                   slot.SlotID,
		SemesterPlanID:       slot.SemesterPlanID,
		Date:                 slot.Date.Format("2006-01-02"),
		StartTime:            slot.StartTime,
		EndTime:              slot.EndTime,
		Status:               slot.Status,
		AssignedSeminarID:    slot.AssignedSeminarID,
		AssignedSuggestionID: slot.AssignedSuggestionID,
	}
	if slot.Room != nil {
		resp.Room = toRoomResponse(slot.Room)
	}
	return resp
}
