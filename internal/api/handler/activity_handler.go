package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// ActivityHandler 活动日志 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// ListActivity 活动日志列表（按计划过滤）
// GET /api/v1/activity
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	events, total, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, req.GetPage(), req.GetPageSize())
}
