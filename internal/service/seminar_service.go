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

// ── 讲座模块业务错误 ──

var (
	ErrSeminarNotFound     = errors.New("讲座不存在")
	ErrSeminarDateInvalid  = errors.New("讲座日期或时间格式无效")
	ErrSeminarNeedsSpeaker = errors.New("讲座必须指定讲者")
)

// SeminarService 讲座业务接口
// 通过时段分配产生讲座由分配引擎负责，这里只处理临时加场与常规维护。
type SeminarService interface {
	Create(ctx context.Context, req *dto.CreateSeminarRequest, callerID string) (*dto.SeminarResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SeminarResponse, error)
	List(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.SeminarResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSeminarRequest, callerID string) (*dto.SeminarResponse, error)

	GetDetails(ctx context.Context, seminarID string) (*dto.SeminarDetailsResponse, error)
	UpsertDetails(ctx context.Context, seminarID string, req *dto.UpsertSeminarDetailsRequest, callerID string) (*dto.SeminarDetailsResponse, error)
}

type seminarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeminarService 创建 SeminarService 实例
func NewSeminarService(repo *repository.Repository, logger *zap.Logger) SeminarService {
	return &seminarService{repo: repo, logger: logger}
}

func (s *seminarService) Create(ctx context.Context, req *dto.CreateSeminarRequest, callerID string) (*dto.SeminarResponse, error) {
	if req.SpeakerID == "" {
		return nil, ErrSeminarNeedsSpeaker
	}
	if _, err := s.repo.Speaker.GetByID(ctx, req.SpeakerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		s.logger.Error("查询讲者失败", zap.Error(err))
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrSeminarDateInvalid
	}
	if !validTimeOfDay(req.StartTime) || !validTimeOfDay(req.EndTime) {
		return nil, ErrSeminarDateInvalid
	}

	speakerID := req.SpeakerID
	seminar := &model.Seminar{
		Title:     req.Title,
		Abstract:  req.Abstract,
		Date:      &date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		RoomID:    req.RoomID,
		SpeakerID: &speakerID,
		Status:    model.SeminarStatusPlanned,
	}
	seminar.CreatedBy = &callerID
	seminar.UpdatedBy = &callerID

	if err := s.repo.Seminar.Create(ctx, seminar); err != nil {
		s.logger.Error("创建讲座失败", zap.Error(err))
		return nil, err
	}

	return toSeminarResponse(seminar), nil
}

func (s *seminarService) GetByID(ctx context.Context, id string) (*dto.SeminarResponse, error) {
	seminar, err := s.repo.Seminar.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		s.logger.Error("查询讲座失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSeminarResponse(seminar), nil
}

func (s *seminarService) List(ctx context.Context, status string, page *dto.PaginationRequest) ([]dto.SeminarResponse, int64, error) {
	seminars, total, err := s.repo.Seminar.List(ctx, status, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出讲座失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SeminarResponse, 0, len(seminars))
	for i := range seminars {
		result = append(result, *toSeminarResponse(&seminars[i]))
	}

	return result, total, nil
}

func (s *seminarService) Update(ctx context.Context, id string, req *dto.UpdateSeminarRequest, callerID string) (*dto.SeminarResponse, error) {
	seminar, err := s.repo.Seminar.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		s.logger.Error("查询讲座失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		seminar.Title = *req.Title
	}
	if req.Abstract != nil {
		seminar.Abstract = *req.Abstract
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrSeminarDateInvalid
		}
		seminar.Date = &date
	}
	if req.StartTime != nil {
		if !validTimeOfDay(*req.StartTime) {
			return nil, ErrSeminarDateInvalid
		}
		seminar.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validTimeOfDay(*req.EndTime) {
			return nil, ErrSeminarDateInvalid
		}
		seminar.EndTime = *req.EndTime
	}
	if req.RoomID != nil {
		seminar.RoomID = req.RoomID
	}
	if req.Status != nil {
		seminar.Status = *req.Status
	}
	seminar.UpdatedBy = &callerID

	if err := s.repo.Seminar.Update(ctx, seminar); err != nil {
		s.logger.Error("更新讲座失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSeminarResponse(seminar), nil
}

func (s *seminarService) GetDetails(ctx context.Context, seminarID string) (*dto.SeminarDetailsResponse, error) {
	if _, err := s.repo.Seminar.GetByID(ctx, seminarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		s.logger.Error("查询讲座失败", zap.String("id", seminarID), zap.Error(err))
		return nil, err
	}

	details, err := s.repo.Details.GetBySeminar(ctx, seminarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 尚未填写详情时返回空白记录
			return &dto.SeminarDetailsResponse{SeminarID: seminarID}, nil
		}
		s.logger.Error("查询讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return nil, err
	}

	return toSeminarDetailsResponse(details), nil
}

func (s *seminarService) UpsertDetails(ctx context.Context, seminarID string, req *dto.UpsertSeminarDetailsRequest, callerID string) (*dto.SeminarDetailsResponse, error) {
	if _, err := s.repo.Seminar.GetByID(ctx, seminarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		s.logger.Error("查询讲座失败", zap.String("id", seminarID), zap.Error(err))
		return nil, err
	}

	details, err := s.repo.Details.GetBySeminar(ctx, seminarID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
			return nil, err
		}
		details = &model.SeminarDetails{SeminarID: seminarID}
		details.CreatedBy = &callerID
		created = true
	}

	if req.TravelInfo != nil {
		details.TravelInfo = *req.TravelInfo
	}
	if req.HotelInfo != nil {
		details.HotelInfo = *req.HotelInfo
	}
	if req.PaymentInfo != nil {
		details.PaymentInfo = *req.PaymentInfo
	}
	if req.DocumentStatus != nil {
		details.DocumentStatus = *req.DocumentStatus
	}
	if req.DietaryNotes != nil {
		details.DietaryNotes = *req.DietaryNotes
	}
	details.UpdatedBy = &callerID

	if created {
		err = s.repo.Details.Create(ctx, details)
	} else {
		err = s.repo.Details.Update(ctx, details)
	}
	if err != nil {
		s.logger.Error("保存讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return nil, err
	}

	return toSeminarDetailsResponse(details), nil
}

// ── 内部辅助方法 ──

func toSeminarResponse(seminar *model.Seminar) *dto.SeminarResponse {
	resp := &dto.SeminarResponse{
		ID:           seminar.SeminarID,
		Title:        seminar.Title,
		Abstract:     seminar.Abstract,
		StartTime:    seminar.StartTime,
		EndTime:      seminar.EndTime,
		SlotID:       seminar.SlotID,
		SuggestionID: seminar.SuggestionID,
		Status:       seminar.Status,
		CreatedAt:    seminar.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    seminar.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if seminar.Date != nil {
		resp.Date = seminar.Date.Format("2006-01-02")
	}
	if seminar.Room != nil {
		resp.Room = toRoomResponse(seminar.Room)
	}
	if seminar.Speaker != nil {
		resp.Speaker = toSpeakerResponse(seminar.Speaker)
	}
	return resp
}

func toSeminarDetailsResponse(details *model.SeminarDetails) *dto.SeminarDetailsResponse {
	return &dto.SeminarDetailsResponse{
		SeminarID:      details.SeminarID,
		TravelInfo:     details.TravelInfo,
		HotelInfo:      details.HotelInfo,
		PaymentInfo:    details.PaymentInfo,
		DocumentStatus: details.DocumentStatus,
		DietaryNotes:   details.DietaryNotes,
		UpdatedAt:      details.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
