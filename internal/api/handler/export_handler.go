package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportPlan 导出学期计划排期总览 (.xlsx)
// GET /api/v1/plans/:id/export
func (h *ExportHandler) ExportPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportPlan(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportCalendar 导出学期计划讲座日历 (.ics)
// GET /api/v1/plans/:id/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "计划ID不能为空")
		return
	}

	buf, filename, err := h.calendarSvc.ExportPlanCalendar(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(200, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 14001, "学期计划不存在")
	case errors.Is(err, service.ErrExportNoSlots):
		response.NotFound(c, 21001, "该计划暂无时段")
	case errors.Is(err, service.ErrCalendarNoSeminars):
		response.NotFound(c, 21002, "该计划暂无可导出的讲座")
	default:
		response.InternalError(c)
	}
}
