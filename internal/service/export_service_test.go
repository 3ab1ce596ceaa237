package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

func TestExportPlan(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	ctx := context.Background()

	repos.plan.plans["plan-1"] = &model.SemesterPlan{SemesterPlanID: "plan-1", Name: "2026 春季"}
	date := time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)
	repos.slot.slots["slot-1"] = &model.SeminarSlot{
		SlotID: "slot-1", SemesterPlanID: "plan-1", Date: date,
		StartTime: "14:00", EndTime: "15:30", Status: model.SlotStatusConfirmed,
		AssignedSeminarID: strPtr("sem-1"),
	}
	repos.seminar.seminars["sem-1"] = &model.Seminar{
		SeminarID: "sem-1", Title: "随机矩阵理论", SlotID: strPtr("slot-1"),
		Status:  model.SeminarStatusConfirmed,
		Speaker: &model.Speaker{SpeakerID: "spk-1", Name: "Dr. Chen"},
	}

	buf, filename, err := svc.ExportPlan(ctx, "plan-1")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if filename != "2026 春季-排期.xlsx" {
		t.Errorf("文件名不对: %q", filename)
	}
}

func TestExportPlanErrors(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	ctx := context.Background()

	if _, _, err := svc.ExportPlan(ctx, "missing"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("期望 ErrPlanNotFound，得到 %v", err)
	}

	repos.plan.plans["plan-empty"] = &model.SemesterPlan{SemesterPlanID: "plan-empty", Name: "空计划"}
	if _, _, err := svc.ExportPlan(ctx, "plan-empty"); !errors.Is(err, ErrExportNoSlots) {
		t.Errorf("期望 ErrExportNoSlots，得到 %v", err)
	}
}

func TestExportPlanCalendar(t *testing.T) {
	repos := newTestRepos()
	svc := NewCalendarService(repos.toRepository(), zap.NewNop())
	ctx := context.Background()

	repos.plan.plans["plan-1"] = &model.SemesterPlan{SemesterPlanID: "plan-1", Name: "2026 春季"}
	date := time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)
	repos.slot.slots["slot-1"] = &model.SeminarSlot{SlotID: "slot-1", SemesterPlanID: "plan-1", Date: date}
	repos.slot.slots["slot-2"] = &model.SeminarSlot{SlotID: "slot-2", SemesterPlanID: "plan-1", Date: date}

	repos.seminar.seminars["sem-1"] = &model.Seminar{
		SeminarID: "sem-1", Title: "随机矩阵理论", SlotID: strPtr("slot-1"),
		Date: &date, StartTime: "14:00", EndTime: "15:30",
		Status: model.SeminarStatusConfirmed,
	}
	// 未确认的讲座不导出
	repos.seminar.seminars["sem-2"] = &model.Seminar{
		SeminarID: "sem-2", Title: "还在计划中", SlotID: strPtr("slot-2"),
		Date: &date, StartTime: "10:00", EndTime: "11:00",
		Status: model.SeminarStatusPlanned,
	}

	buf, filename, err := svc.ExportPlanCalendar(ctx, "plan-1")
	if err != nil {
		t.Fatalf("导出日历失败: %v", err)
	}
	if filename != "2026 春季.ics" {
		t.Errorf("文件名不对: %q", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if !strings.Contains(content, "随机矩阵理论") {
		t.Error("已确认讲座应出现在日历中")
	}
	if strings.Contains(content, "还在计划中") {
		t.Error("未确认讲座不应出现在日历中")
	}
	if !strings.Contains(content, "sem-1@seminar-hub") {
		t.Error("事件 UID 应基于讲座 ID")
	}
}

func TestExportPlanCalendarNoConfirmedSeminars(t *testing.T) {
	repos := newTestRepos()
	svc := NewCalendarService(repos.toRepository(), zap.NewNop())
	ctx := context.Background()

	repos.plan.plans["plan-1"] = &model.SemesterPlan{SemesterPlanID: "plan-1", Name: "计划"}
	date := time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)
	repos.slot.slots["slot-1"] = &model.SeminarSlot{SlotID: "slot-1", SemesterPlanID: "plan-1", Date: date}

	if _, _, err := svc.ExportPlanCalendar(ctx, "plan-1"); !errors.Is(err, ErrCalendarNoSeminars) {
		t.Fatalf("期望 ErrCalendarNoSeminars，得到 %v", err)
	}
}
