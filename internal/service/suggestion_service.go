package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 讲者推荐模块业务错误 ──

var (
	ErrSuggestionNotFound = errors.New("讲者推荐不存在")
	ErrInvalidTransition  = errors.New("推荐状态迁移不合法")
)

// SuggestionService 讲者推荐业务接口
type SuggestionService interface {
	Create(ctx context.Context, req *dto.CreateSuggestionRequest, callerID string) (*dto.SuggestionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SuggestionResponse, error)
	List(ctx context.Context, planID, status string, page *dto.PaginationRequest) ([]dto.SuggestionResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSuggestionRequest, callerID string) (*dto.SuggestionResponse, error)

	// Transition 推进联系工作流状态，每次迁移追加一条流程记录
	Transition(ctx context.Context, id string, req *dto.TransitionSuggestionRequest, callerID string) (*dto.SuggestionResponse, error)
	ListWorkflow(ctx context.Context, id string) ([]dto.WorkflowEntryResponse, error)
	ListAvailability(ctx context.Context, id string) ([]dto.AvailabilityResponse, error)
}

type suggestionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSuggestionService 创建 SuggestionService 实例
func NewSuggestionService(repo *repository.Repository, logger *zap.Logger) SuggestionService {
	return &suggestionService{repo: repo, logger: logger}
}

func (s *suggestionService) Create(ctx context.Context, req *dto.CreateSuggestionRequest, callerID string) (*dto.SuggestionResponse, error) {
	if req.SpeakerID != nil {
		if _, err := s.repo.Speaker.GetByID(ctx, *req.SpeakerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSpeakerNotFound
			}
			s.logger.Error("查询讲者失败", zap.Error(err))
			return nil, err
		}
	}
	if req.SemesterPlanID != nil {
		if _, err := s.repo.SemesterPlan.GetByID(ctx, *req.SemesterPlanID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlanNotFound
			}
			s.logger.Error("查询学期计划失败", zap.Error(err))
			return nil, err
		}
	}

	suggestion := &model.SpeakerSuggestion{
		SpeakerID:          req.SpeakerID,
		SemesterPlanID:     req.SemesterPlanID,
		SpeakerName:        req.SpeakerName,
		SpeakerEmail:       req.SpeakerEmail,
		SpeakerAffiliation: req.SpeakerAffiliation,
		SuggestedTopic:     req.SuggestedTopic,
		Notes:              req.Notes,
		Status:             model.SuggestionStatusPending,
	}
	suggestion.CreatedBy = &callerID
	suggestion.UpdatedBy = &callerID

	if err := s.repo.Suggestion.Create(ctx, suggestion); err != nil {
		s.logger.Error("创建推荐失败", zap.Error(err))
		return nil, err
	}

	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) GetByID(ctx context.Context, id string) (*dto.SuggestionResponse, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) List(ctx context.Context, planID, status string, page *dto.PaginationRequest) ([]dto.SuggestionResponse, int64, error) {
	suggestions, total, err := s.repo.Suggestion.List(ctx, planID, status, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出推荐失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		result = append(result, *toSuggestionResponse(&suggestions[i]))
	}

	return result, total, nil
}

func (s *suggestionService) Update(ctx context.Context, id string, req *dto.UpdateSuggestionRequest, callerID string) (*dto.SuggestionResponse, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.SpeakerName != nil {
		suggestion.SpeakerName = *req.SpeakerName
	}
	if req.SpeakerEmail != nil {
		suggestion.SpeakerEmail = *req.SpeakerEmail
	}
	if req.SpeakerAffiliation != nil {
		suggestion.SpeakerAffiliation = *req.SpeakerAffiliation
	}
	if req.SuggestedTopic != nil {
		suggestion.SuggestedTopic = *req.SuggestedTopic
	}
	if req.Notes != nil {
		suggestion.Notes = *req.Notes
	}
	suggestion.UpdatedBy = &callerID

	if err := s.repo.Suggestion.Update(ctx, suggestion); err != nil {
		s.logger.Error("更新推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) Transition(ctx context.Context, id string, req *dto.TransitionSuggestionRequest, callerID string) (*dto.SuggestionResponse, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !model.CanTransitionSuggestion(suggestion.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, suggestion.Status, req.Status)
	}

	from := suggestion.Status
	suggestion.Status = req.Status
	suggestion.UpdatedBy = &callerID

	if err := s.repo.Suggestion.Update(ctx, suggestion); err != nil {
		s.logger.Error("更新推荐状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	entry := &model.SpeakerWorkflow{
		SuggestionID: suggestion.SuggestionID,
		Action:       fmt.Sprintf("status:%s→%s", from, req.Status),
		Note:         req.Note,
	}
	entry.CreatedBy = &callerID
	entry.UpdatedBy = &callerID
	if err := s.repo.Workflow.Create(ctx, entry); err != nil {
		s.logger.Warn("写入流程记录失败", zap.String("suggestion_id", id), zap.Error(err))
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:      model.EventStatusChanged,
		Summary:        fmt.Sprintf("推荐 %q 状态 %s → %s", suggestion.SpeakerName, from, req.Status),
		EntityType:     "suggestion",
		EntityID:       &suggestion.SuggestionID,
		SemesterPlanID: suggestion.SemesterPlanID,
		ActorID:        &callerID,
	})

	return toSuggestionResponse(suggestion), nil
}

func (s *suggestionService) ListWorkflow(ctx context.Context, id string) ([]dto.WorkflowEntryResponse, error) {
	if _, err := s.repo.Suggestion.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	entries, err := s.repo.Workflow.ListBySuggestion(ctx, id)
	if err != nil {
		s.logger.Error("查询流程记录失败", zap.String("suggestion_id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkflowEntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		result = append(result, dto.WorkflowEntryResponse{
			ID:        e.WorkflowID,
			Action:    e.Action,
			Note:      e.Note,
			CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	return result, nil
}

func (s *suggestionService) ListAvailability(ctx context.Context, id string) ([]dto.AvailabilityResponse, error) {
	if _, err := s.repo.Suggestion.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	ranges, err := s.repo.Availability.ListBySuggestion(ctx, id)
	if err != nil {
		s.logger.Error("查询可用时间失败", zap.String("suggestion_id", id), zap.Error(err))
		return nil, err
	}

	return toAvailabilityResponses(ranges), nil
}

// ── 内部辅助方法 ──

func toSuggestionResponse(suggestion *model.SpeakerSuggestion) *dto.SuggestionResponse {
	return &dto.SuggestionResponse{
		ID:                 suggestion.SuggestionID,
		SpeakerID:          suggestion.SpeakerID,
		SemesterPlanID:     suggestion.SemesterPlanID,
		SpeakerName:        suggestion.SpeakerName,
		SpeakerEmail:       suggestion.SpeakerEmail,
		SpeakerAffiliation: suggestion.SpeakerAffiliation,
		SuggestedTopic:     suggestion.SuggestedTopic,
		Notes:              suggestion.Notes,
		Status:             suggestion.Status,
		CreatedAt:          suggestion.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:          suggestion.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toAvailabilityResponses(ranges []model.SpeakerAvailability) []dto.AvailabilityResponse {
	result := make([]dto.AvailabilityResponse, 0, len(ranges))
	for i := range ranges {
		a := &ranges[i]
		result = append(result, dto.AvailabilityResponse{
			ID:         a.AvailabilityID,
			StartDate:  a.StartDate.Format("2006-01-02"),
			EndDate:    a.EndDate.Format("2006-01-02"),
			Preference: a.Preference,
		})
	}
	return result
}
