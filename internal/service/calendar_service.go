package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 日历导出模块业务错误 ──

var ErrCalendarNoSeminars = errors.New("该计划暂无可导出的讲座")

// CalendarService 日历导出业务接口
//
// 设计说明：
//   - 将计划下已确认的讲座导出为标准 iCalendar (RFC 5545)
//   - 讲座缺少日期或时间时跳过该条，不中断导出
type CalendarService interface {
	// ExportPlanCalendar 导出学期计划的讲座日历 (.ics)
	ExportPlanCalendar(ctx context.Context, planID string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) ExportPlanCalendar(ctx context.Context, planID string) (*bytes.Buffer, string, error) {
	plan, err := s.repo.SemesterPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.Error(err))
		return nil, "", err
	}

	slots, err := s.repo.SeminarSlot.ListByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("查询时段失败", zap.Error(err))
		return nil, "", err
	}
	slotIDs := make([]string, 0, len(slots))
	for i := range slots {
		slotIDs = append(slotIDs, slots[i].SlotID)
	}

	seminars, err := s.repo.Seminar.ListBySlotIDs(ctx, slotIDs)
	if err != nil {
		s.logger.Error("查询讲座失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//seminar-hub//calendar//CN")
	cal.SetName(plan.Name)

	exported := 0
	now := time.Now()
	for i := range seminars {
		sem := &seminars[i]
		if sem.Status != model.SeminarStatusConfirmed && sem.Status != model.SeminarStatusCompleted {
			continue
		}
		if sem.Date == nil {
			continue
		}
		start, ok := combineDateTime(*sem.Date, sem.StartTime)
		if !ok {
			s.logger.Warn("讲座时间无法解析，跳过导出", zap.String("seminar_id", sem.SeminarID))
			continue
		}
		end, ok := combineDateTime(*sem.Date, sem.EndTime)
		if !ok {
			end = start.Add(time.Hour)
		}

		event := cal.AddEvent(sem.SeminarID + "@seminar-hub")
		event.SetCreatedTime(sem.CreatedAt)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(sem.Title)
		if sem.Abstract != "" {
			event.SetDescription(sem.Abstract)
		}
		if sem.Room != nil {
			location := sem.Room.Name
			if sem.Room.Building != "" {
				location = sem.Room.Building + " " + location
			}
			event.SetLocation(location)
		}
		if sem.Speaker != nil {
			event.SetOrganizer(sem.Speaker.Email, ics.WithCN(sem.Speaker.Name))
		}
		exported++
	}

	if exported == 0 {
		return nil, "", ErrCalendarNoSeminars
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s.ics", plan.Name)
	return buf, filename, nil
}

// ── 内部辅助方法 ──

// combineDateTime 把日期与 HH:MM(:SS) 时刻拼成完整时间
func combineDateTime(date time.Time, tod string) (time.Time, bool) {
	var t time.Time
	var err error
	if t, err = time.Parse("15:04:05", tod); err != nil {
		if t, err = time.Parse("15:04", tod); err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), true
}
