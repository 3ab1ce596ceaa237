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
	apperrors "github.com/inaciog/seminars-app-sub000/pkg/errors"
	"github.com/inaciog/seminars-app-sub000/pkg/storage"
)

// DeletionService 删除策略引擎
//
// 每个实体的删除策略固化在一个操作里：该阻止的阻止（返回 BlockedError），
// 该置空的引用置空，该级联的子实体级联删除。所有数据库写入在单个事务中完成，
// 磁盘文件在事务提交后清理，文件系统错误只产生警告，绝不中断删除。
type DeletionService interface {
	// DeleteSpeaker 讲者仍被讲座引用时阻止删除；引用它的推荐置空 speaker_id 后删除
	DeleteSpeaker(ctx context.Context, id string, callerID string) (*dto.DeleteSpeakerResult, error)

	// DeleteRoom 场地删除前置空所有讲座与时段对它的引用
	DeleteRoom(ctx context.Context, id string, callerID string) (*dto.DeleteRoomResult, error)

	// DeleteSeminar 释放占用的时段、级联删除附件与后勤详情，最后删除讲座
	DeleteSeminar(ctx context.Context, id string, callerID string) (*dto.DeleteSeminarResult, error)

	// DeletePlan 整计划级联：时段上的讲座走讲座删除逻辑，推荐连同令牌、
	// 可用时间、流程记录、附件一并删除，最后删除时段与计划本身
	DeletePlan(ctx context.Context, id string, callerID string) (*dto.DeletePlanResult, error)

	// DeleteSlot 时段删除前解除讲座对它的指针，讲座保留可重新排期
	DeleteSlot(ctx context.Context, id string, callerID string) (*dto.DeleteSlotResult, error)

	// DeleteSuggestion 推荐删除前回收其令牌并释放引用它的时段
	DeleteSuggestion(ctx context.Context, id string, callerID string) (*dto.DeleteSuggestionResult, error)
}

type deletionService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
}

// NewDeletionService 创建 DeletionService 实例
func NewDeletionService(repo *repository.Repository, store storage.Store, logger *zap.Logger) DeletionService {
	return &deletionService{repo: repo, store: store, logger: logger}
}

// maxBlockerTitles 阻止删除时最多向调用方展示的讲座标题数
const maxBlockerTitles = 3

func (s *deletionService) DeleteSpeaker(ctx context.Context, id string, callerID string) (*dto.DeleteSpeakerResult, error) {
	speaker, err := s.repo.Speaker.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpeakerNotFound
		}
		s.logger.Error("查询讲者失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 讲座对讲者是强引用：存在即阻止删除，标题交给调用方提示人工处理
	blocking, err := s.repo.Seminar.ListBySpeaker(ctx, id, maxBlockerTitles)
	if err != nil {
		s.logger.Error("查询关联讲座失败", zap.String("speaker_id", id), zap.Error(err))
		return nil, err
	}
	if len(blocking) > 0 {
		titles := make([]string, 0, len(blocking))
		for i := range blocking {
			titles = append(titles, blocking[i].Title)
		}
		return nil, apperrors.NewBlocked("讲者仍有关联讲座，无法删除", titles)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	cleared, err := txRepo.Suggestion.ClearSpeaker(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("置空推荐的讲者引用失败", zap.String("speaker_id", id), zap.Error(err))
		return nil, err
	}

	if err := txRepo.Speaker.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除讲者失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:  model.EventSpeakerDeleted,
		Summary:    fmt.Sprintf("删除讲者 %q，置空 %d 条推荐引用", speaker.Name, cleared),
		EntityType: "speaker",
		EntityID:   &id,
		ActorID:    &callerID,
	})

	return &dto.DeleteSpeakerResult{
		Message:            fmt.Sprintf("讲者 %q 已删除", speaker.Name),
		ClearedSuggestions: cleared,
	}, nil
}

func (s *deletionService) DeleteRoom(ctx context.Context, id string, callerID string) (*dto.DeleteRoomResult, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询场地失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	clearedSeminars, err := txRepo.Seminar.ClearRoom(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("置空讲座的场地引用失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}

	clearedSlots, err := txRepo.SeminarSlot.ClearRoom(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("置空时段的场地引用失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}

	if err := txRepo.Room.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除场地失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:  model.EventRoomDeleted,
		Summary:    fmt.Sprintf("删除场地 %q，置空 %d 场讲座、%d 个时段的引用", room.Name, clearedSeminars, clearedSlots),
		EntityType: "room",
		EntityID:   &id,
		ActorID:    &callerID,
	})

	return &dto.DeleteRoomResult{
		Message:         fmt.Sprintf("场地 %q 已删除", room.Name),
		ClearedSeminars: clearedSeminars,
		ClearedSlots:    clearedSlots,
	}, nil
}

func (s *deletionService) DeleteSeminar(ctx context.Context, id string, callerID string) (*dto.DeleteSeminarResult, error) {
	seminar, err := s.repo.Seminar.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		s.logger.Error("查询讲座失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	clearedSlots, fileNames, err := s.deleteSeminarTx(ctx, txRepo, seminar.SeminarID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	deletedFiles, warnings := s.removeFiles(fileNames)

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:  model.EventSeminarDeleted,
		Summary:    fmt.Sprintf("删除讲座 %q，释放 %d 个时段，清理 %d 个附件", seminar.Title, clearedSlots, deletedFiles),
		EntityType: "seminar",
		EntityID:   &id,
		ActorID:    &callerID,
	})

	return &dto.DeleteSeminarResult{
		Message:      fmt.Sprintf("讲座 %q 已删除", seminar.Title),
		ClearedSlots: clearedSlots,
		DeletedFiles: deletedFiles,
		Warnings:     warnings,
	}, nil
}

func (s *deletionService) DeletePlan(ctx context.Context, id string, callerID string) (*dto.DeletePlanResult, error) {
	plan, err := s.repo.SemesterPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
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
		s.logger.Error("删除学期计划失败", zap.String("plan_id", id), zap.String("stage", stage), zap.Error(err))
		return err
	}

	// 1. 收集计划下的所有时段与推荐
	slots, err := txRepo.SeminarSlot.ListByPlan(ctx, id)
	if err != nil {
		return nil, rollback("list_slots", err)
	}
	slotIDs := make([]string, 0, len(slots))
	for i := range slots {
		slotIDs = append(slotIDs, slots[i].SlotID)
	}

	suggestions, err := txRepo.Suggestion.ListByPlan(ctx, id)
	if err != nil {
		return nil, rollback("list_suggestions", err)
	}
	suggestionIDs := make([]string, 0, len(suggestions))
	for i := range suggestions {
		suggestionIDs = append(suggestionIDs, suggestions[i].SuggestionID)
	}

	// 2. 推荐的令牌先删，外键安全
	if _, err := txRepo.Token.DeleteBySuggestionIDs(ctx, suggestionIDs); err != nil {
		return nil, rollback("delete_tokens", err)
	}

	// 3. 绑定到这些时段的讲座走完整的讲座删除逻辑，
	//    其中的释放时段一步对即将删除的时段是冗余但安全的
	seminars, err := txRepo.Seminar.ListBySlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, rollback("list_seminars", err)
	}
	var fileNames []string
	for i := range seminars {
		_, names, err := s.deleteSeminarTx(ctx, txRepo, seminars[i].SeminarID)
		if err != nil {
			return nil, rollback("delete_seminar", err)
		}
		fileNames = append(fileNames, names...)
	}

	// 4. 计划作用域内的活动日志
	if err := txRepo.ActivityEvent.DeleteByPlan(ctx, id); err != nil {
		return nil, rollback("delete_activity", err)
	}

	// 5. 推荐的流程记录与可用时间
	if err := txRepo.Workflow.DeleteBySuggestionIDs(ctx, suggestionIDs); err != nil {
		return nil, rollback("delete_workflow", err)
	}
	if err := txRepo.Availability.DeleteBySuggestionIDs(ctx, suggestionIDs); err != nil {
		return nil, rollback("delete_availability", err)
	}

	// 6. 推荐上的附件：元数据在事务内删除，磁盘文件提交后清理
	for _, sid := range suggestionIDs {
		files, err := txRepo.UploadedFile.ListByOwner(ctx, model.FileOwnerSuggestion, sid)
		if err != nil {
			return nil, rollback("list_suggestion_files", err)
		}
		for i := range files {
			fileNames = append(fileNames, files[i].StorageFilename)
			if err := txRepo.UploadedFile.Delete(ctx, files[i].FileID); err != nil {
				return nil, rollback("delete_suggestion_files", err)
			}
		}
	}

	// 7. 时段
	if err := txRepo.SeminarSlot.DeleteByIDs(ctx, slotIDs); err != nil {
		return nil, rollback("delete_slots", err)
	}

	// 8. 推荐本体
	if err := txRepo.Suggestion.DeleteByIDs(ctx, suggestionIDs); err != nil {
		return nil, rollback("delete_suggestions", err)
	}

	// 9. 计划本体
	if err := txRepo.SemesterPlan.Delete(ctx, id); err != nil {
		return nil, rollback("delete_plan", err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	_, warnings := s.removeFiles(fileNames)

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:  model.EventPlanDeleted,
		Summary:    fmt.Sprintf("删除学期计划 %q：%d 个时段、%d 条推荐、%d 场讲座", plan.Name, len(slots), len(suggestions), len(seminars)),
		EntityType: "semester_plan",
		EntityID:   &id,
		ActorID:    &callerID,
	})

	return &dto.DeletePlanResult{
		Message:            fmt.Sprintf("学期计划 %q 已删除", plan.Name),
		DeletedSlots:       int64(len(slots)),
		DeletedSuggestions: int64(len(suggestions)),
		Warnings:           warnings,
	}, nil
}

func (s *deletionService) DeleteSlot(ctx context.Context, id string, callerID string) (*dto.DeleteSlotResult, error) {
	slot, err := s.repo.SeminarSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	// 讲座对时段的反向指针必须先解除，讲座保留可重新排期
	if slot.AssignedSeminarID != nil {
		if err := txRepo.Seminar.ClearSlot(ctx, *slot.AssignedSeminarID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("解除讲座的时段指针失败", zap.String("slot_id", id), zap.Error(err))
			return nil, err
		}
	}

	if err := txRepo.SeminarSlot.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:      model.EventSlotDeleted,
		Summary:        fmt.Sprintf("删除 %s 的时段", slot.Date.Format("2006-01-02")),
		EntityType:     "slot",
		EntityID:       &id,
		SemesterPlanID: &slot.SemesterPlanID,
		ActorID:        &callerID,
	})

	return &dto.DeleteSlotResult{
		Message: fmt.Sprintf("%s %s 的时段已删除", slot.Date.Format("2006-01-02"), slot.StartTime),
	}, nil
}

func (s *deletionService) DeleteSuggestion(ctx context.Context, id string, callerID string) (*dto.DeleteSuggestionResult, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, err
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
		s.logger.Error("删除推荐失败", zap.String("suggestion_id", id), zap.String("stage", stage), zap.Error(err))
		return err
	}

	// 令牌是推荐的能力凭证，随推荐一起回收
	deletedTokens, err := txRepo.Token.DeleteBySuggestion(ctx, id)
	if err != nil {
		return nil, rollback("delete_tokens", err)
	}

	// 引用该推荐的时段释放回 available
	clearedSlots, err := txRepo.SeminarSlot.ClearBySuggestion(ctx, id)
	if err != nil {
		return nil, rollback("clear_slots", err)
	}

	if err := txRepo.Availability.DeleteBySuggestionIDs(ctx, []string{id}); err != nil {
		return nil, rollback("delete_availability", err)
	}
	if err := txRepo.Workflow.DeleteBySuggestionIDs(ctx, []string{id}); err != nil {
		return nil, rollback("delete_workflow", err)
	}

	// 推荐上的附件元数据在事务内删除，磁盘文件提交后清理
	files, err := txRepo.UploadedFile.ListByOwner(ctx, model.FileOwnerSuggestion, id)
	if err != nil {
		return nil, rollback("list_files", err)
	}
	fileNames := make([]string, 0, len(files))
	for i := range files {
		fileNames = append(fileNames, files[i].StorageFilename)
		if err := txRepo.UploadedFile.Delete(ctx, files[i].FileID); err != nil {
			return nil, rollback("delete_files", err)
		}
	}

	if err := txRepo.Suggestion.Delete(ctx, id); err != nil {
		return nil, rollback("delete_suggestion", err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	_, warnings := s.removeFiles(fileNames)

	recordActivity(ctx, s.repo, s.logger, &model.ActivityEvent{
		EventType:      model.EventSuggestionDeleted,
		Summary:        fmt.Sprintf("删除推荐 %q，回收 %d 个令牌，释放 %d 个时段", suggestion.SpeakerName, deletedTokens, clearedSlots),
		EntityType:     "suggestion",
		EntityID:       &id,
		SemesterPlanID: suggestion.SemesterPlanID,
		ActorID:        &callerID,
	})

	return &dto.DeleteSuggestionResult{
		Message:       fmt.Sprintf("推荐 %q 已删除", suggestion.SpeakerName),
		DeletedTokens: deletedTokens,
		ClearedSlots:  clearedSlots,
		Warnings:      warnings,
	}, nil
}

// ── 内部辅助方法 ──

// deleteSeminarTx 在既有事务内执行讲座删除的数据库部分：
// 释放指向它的时段、删除附件元数据与后勤详情，最后删除讲座本体。
// 返回释放的时段数和待清理的磁盘文件名（在事务提交后移除）。
func (s *deletionService) deleteSeminarTx(ctx context.Context, txRepo *repository.Repository, seminarID string) (int64, []string, error) {
	clearedSlots, err := txRepo.SeminarSlot.ClearBySeminar(ctx, seminarID)
	if err != nil {
		s.logger.Error("释放时段失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return 0, nil, err
	}

	files, err := txRepo.UploadedFile.ListByOwner(ctx, model.FileOwnerSeminar, seminarID)
	if err != nil {
		s.logger.Error("列出附件失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return 0, nil, err
	}
	fileNames := make([]string, 0, len(files))
	for i := range files {
		fileNames = append(fileNames, files[i].StorageFilename)
		if err := txRepo.UploadedFile.Delete(ctx, files[i].FileID); err != nil {
			s.logger.Error("删除附件元数据失败", zap.String("file_id", files[i].FileID), zap.Error(err))
			return 0, nil, err
		}
	}

	if err := txRepo.Details.DeleteBySeminar(ctx, seminarID); err != nil {
		s.logger.Error("删除讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return 0, nil, err
	}

	if err := txRepo.Seminar.Delete(ctx, seminarID); err != nil {
		s.logger.Error("删除讲座失败", zap.String("id", seminarID), zap.Error(err))
		return 0, nil, err
	}

	return clearedSlots, fileNames, nil
}

// removeFiles 清理磁盘文件，返回实际删除的文件数。
// 文件本就不存在时容忍但不计数；其余 IO 错误产生警告并继续，
// 绝不让文件系统问题影响已提交的删除。
func (s *deletionService) removeFiles(fileNames []string) (int64, []string) {
	var deleted int64
	var warnings []string
	for _, name := range fileNames {
		err := s.store.Remove(name)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, storage.ErrNotExist):
			// 磁盘上已经没有，无事可做也无可报告
		default:
			s.logger.Warn("清理磁盘文件失败", zap.String("filename", name), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("文件 %s 清理失败: %v", name, err))
		}
	}
	return deleted, warnings
}
