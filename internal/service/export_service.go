package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSlots      = errors.New("该计划暂无时段")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出学期计划总览为 Excel (.xlsx)，一行一个时段
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportPlan 导出学期计划排期总览
	ExportPlan(ctx context.Context, planID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportPlan(ctx context.Context, planID string) (*bytes.Buffer, string, error) {
	// 1. 查询计划
	plan, err := s.repo.SemesterPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 查询计划下的时段
	slots, err := s.repo.SeminarSlot.ListByPlan(ctx, planID)
	if err != nil {
		s.logger.Error("查询时段失败", zap.Error(err))
		return nil, "", err
	}
	if len(slots) == 0 {
		return nil, "", ErrExportNoSlots
	}

	// 3. 批量取绑定到时段的讲座，建 slot_id → seminar 索引
	slotIDs := make([]string, 0, len(slots))
	for i := range slots {
		slotIDs = append(slotIDs, slots[i].SlotID)
	}
	seminars, err := s.repo.Seminar.ListBySlotIDs(ctx, slotIDs)
	if err != nil {
		s.logger.Error("查询讲座失败", zap.Error(err))
		return nil, "", err
	}
	bySlot := make(map[string]*model.Seminar, len(seminars))
	for i := range seminars {
		if seminars[i].SlotID != nil {
			bySlot[*seminars[i].SlotID] = &seminars[i]
		}
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheet := "排期总览"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"日期", "开始", "结束", "场地", "时段状态", "讲者", "讲座标题", "讲座状态"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, slot := range slots {
		roomName := ""
		if slot.Room != nil {
			roomName = slot.Room.Name
		}
		speakerName, title, seminarStatus := "", "", ""
		if sem, ok := bySlot[slot.SlotID]; ok {
			title = sem.Title
			seminarStatus = sem.Status
			if sem.Speaker != nil {
				speakerName = sem.Speaker.Name
			}
		}

		values := []interface{}{
			slot.Date.Format("2006-01-02"),
			slot.StartTime,
			slot.EndTime,
			roomName,
			slot.Status,
			speakerName,
			title,
			seminarStatus,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-排期.xlsx", plan.Name)
	return buf, filename, nil
}
