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

// ── 分配引擎业务错误 ──

var (
	ErrSlotOccupied    = errors.New("时段已被占用")
	ErrSlotNotAssigned = errors.New("时段当前没有分配")
)

// PlanningService 分配引擎
//
// 维护 时段↔推荐↔讲座 三角的指针一致性：分配产生（或更新）讲座并把
// 三方指针一次性对齐，取消分配把三方全部解开而不删除任何一行。
// 指向已删除讲座的残留指针按未分配处理。
type PlanningService interface {
	Assign(ctx context.Context, req *dto.AssignRequest, callerID string) (*dto.AssignResponse, error)
	Unassign(ctx context.Context, slotID string, callerID string) (*dto.UnassignResponse, error)
}

type planningService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanningService 创建 PlanningService 实例
func NewPlanningService(repo *repository.Repository, logger *zap.Logger) PlanningService {
	return &planningService{repo: repo, logger: logger}
}

func (s *planningService) Assign(ctx context.Context, req *dto.AssignRequest, callerID string) (*dto.AssignResponse, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, req.SuggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", req.SuggestionID), zap.Error(err))
		return nil, err
	}

	slot, err := s.repo.SeminarSlot.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", req.SlotID), zap.Error(err))
		return nil, err
	}

	// 时段可能携带指向已删除讲座的残留指针，按未分配处理
	var existing *model.Seminar
	if slot.AssignedSeminarID != nil {
		existing, err = s.repo.Seminar.GetByID(ctx, *slot.AssignedSeminarID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询讲座失败", zap.String("id", *slot.AssignedSeminarID), zap.Error(err))
				return nil, err
			}
			existing = nil
		}
	}

	// 占用冲突：时段已绑定到一场仍然存在、且不属于本推荐的讲座。
	// 手工加场的讲座没有推荐指针，同样视为占用，不允许被覆盖；
	// 重复分配同一推荐是幂等的，只更新元数据。
	if existing != nil {
		ownedByRequester := (slot.AssignedSuggestionID != nil && *slot.AssignedSuggestionID == suggestion.SuggestionID) ||
			(existing.SuggestionID != nil && *existing.SuggestionID == suggestion.SuggestionID)
		if !ownedByRequester {
			return nil, fmt.Errorf("%w: %s", ErrSlotOccupied, existing.Title)
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	rollback := func(stage string, err error) error {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("分配时段失败", zap.String("slot_id", req.SlotID), zap.String("stage", stage), zap.Error(err))
		return err
	}

	speakerID, err := s.resolveSpeaker(ctx, txRepo, suggestion, callerID)
	if err != nil {
		return nil, rollback("resolve_speaker", err)
	}

	title := suggestion.SuggestedTopic
	if title == "" {
		title = fmt.Sprintf("%s（主题待定）", suggestion.SpeakerName)
	}

	created := false
	var seminar *model.Seminar
	if existing != nil {
		// 已有讲座：更新讲者与标题，不产生重复行
		existing.Title = title
		existing.SpeakerID = &speakerID
		existing.SuggestionID = &suggestion.SuggestionID
		existing.UpdatedBy = &callerID
		if err := txRepo.Seminar.Update(ctx, existing); err != nil {
			return nil, rollback("update_seminar", err)
		}
		seminar = existing
	} else {
		date := slot.Date
		seminar = &model.Seminar{
			Title:        title,
			Abstract:     suggestion.Notes,
			Date:         &date,
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
			RoomID:       slot.RoomID,
			SpeakerID:    &speakerID,
			SlotID:       &slot.SlotID,
			SuggestionID: &suggestion.SuggestionID,
			Status:       model.SeminarStatusConfirmed,
		}
		seminar.CreatedBy = &callerID
		seminar.UpdatedBy = &callerID
		if err := txRepo.Seminar.Create(ctx, seminar); err != nil {
			return nil, rollback("create_seminar", err)
		}
		created = true
	}

	// 对称指针一次性对齐
	slot.AssignedSeminarID = &seminar.SeminarID
	slot.AssignedSuggestionID = &suggestion.SuggestionID
	slot.Status = model.SlotStatusConfirmed
	slot.UpdatedBy = &callerID
	if err := txRepo.SeminarSlot.Update(ctx, slot); err != nil {
		return nil, rollback("update_slot", err)
	}

	// 分配成功即推进推荐到 confirmed，不校验中间状态是否走过
	suggestion.Status = model.SuggestionStatusConfirmed
	if suggestion.SpeakerID == nil {
		suggestion.SpeakerID = &speakerID
	}
	suggestion.UpdatedBy = &callerID
	if err := txRepo.Suggestion.Update(ctx, suggestion); err != nil {
		return nil, rollback("update_suggestion", err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:      model.EventSlotAssigned,
		Summary:        fmt.Sprintf("推荐 %q 分配到 %s 的时段", suggestion.SpeakerName, slot.Date.Format("2006-01-02")),
		EntityType:     "slot",
		EntityID:       &slot.SlotID,
		SemesterPlanID: &slot.SemesterPlanID,
		ActorID:        &callerID,
	})

	message := fmt.Sprintf("推荐 %q 已分配到 %s %s 的时段", suggestion.SpeakerName, slot.Date.Format("2006-01-02"), slot.StartTime)
	return &dto.AssignResponse{
		SeminarID: seminar.SeminarID,
		Created:   created,
		Message:   message,
	}, nil
}

func (s *planningService) Unassign(ctx context.Context, slotID string, callerID string) (*dto.UnassignResponse, error) {
	slot, err := s.repo.SeminarSlot.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", slotID), zap.Error(err))
		return nil, err
	}

	if slot.AssignedSeminarID == nil && slot.AssignedSuggestionID == nil {
		return nil, ErrSlotNotAssigned
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	rollback := func(stage string, err error) error {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("取消分配失败", zap.String("slot_id", slotID), zap.String("stage", stage), zap.Error(err))
		return err
	}

	// 讲座保留，只解除对时段的指针（可重新排期）
	if slot.AssignedSeminarID != nil {
		if err := txRepo.Seminar.ClearSlot(ctx, *slot.AssignedSeminarID); err != nil {
			return nil, rollback("clear_seminar", err)
		}
	}

	// 推荐退回 availability_received，可再次排期
	if slot.AssignedSuggestionID != nil {
		suggestion, err := txRepo.Suggestion.GetByID(ctx, *slot.AssignedSuggestionID)
		switch {
		case err == nil:
			if suggestion.Status == model.SuggestionStatusConfirmed {
				suggestion.Status = model.SuggestionStatusAvailabilityReceived
				suggestion.UpdatedBy = &callerID
				if err := txRepo.Suggestion.Update(ctx, suggestion); err != nil {
					return nil, rollback("update_suggestion", err)
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 残留指针，忽略
		default:
			return nil, rollback("get_suggestion", err)
		}
	}

	slot.AssignedSeminarID = nil
	slot.AssignedSuggestionID = nil
	slot.Status = model.SlotStatusAvailable
	slot.UpdatedBy = &callerID
	if err := txRepo.SeminarSlot.Update(ctx, slot); err != nil {
		return nil, rollback("update_slot", err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:      model.EventSlotUnassigned,
		Summary:        fmt.Sprintf("%s 的时段取消分配", slot.Date.Format("2006-01-02")),
		EntityType:     "slot",
		EntityID:       &slot.SlotID,
		SemesterPlanID: &slot.SemesterPlanID,
		ActorID:        &callerID,
	})

	return &dto.UnassignResponse{
		Message: fmt.Sprintf("%s %s 的时段已释放", slot.Date.Format("2006-01-02"), slot.StartTime),
	}, nil
}

// ── 内部辅助方法 ──

// resolveSpeaker 把推荐上的讲者快照落到真实 Speaker 记录：
// 已关联的直接复用；否则按邮箱查找，查不到就用快照新建。
func (s *planningService) resolveSpeaker(ctx context.Context, txRepo *repository.Repository, suggestion *model.SpeakerSuggestion, callerID string) (string, error) {
	if suggestion.SpeakerID != nil {
		return *suggestion.SpeakerID, nil
	}

	if suggestion.SpeakerEmail != "" {
		speaker, err := txRepo.Speaker.GetByEmail(ctx, suggestion.SpeakerEmail)
		if err == nil {
			return speaker.SpeakerID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}

	speaker := &model.Speaker{
		Name:        suggestion.SpeakerName,
		Email:       suggestion.SpeakerEmail,
		Affiliation: suggestion.SpeakerAffiliation,
	}
	speaker.CreatedBy = &callerID
	speaker.UpdatedBy = &callerID
	if err := txRepo.Speaker.Create(ctx, speaker); err != nil {
		return "", err
	}
	return speaker.SpeakerID, nil
}
