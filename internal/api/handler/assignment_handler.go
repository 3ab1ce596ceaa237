package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// AssignmentHandler 分配引擎 HTTP 处理器
type AssignmentHandler struct {
	planningSvc service.PlanningService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(planningSvc service.PlanningService) *AssignmentHandler {
	return &AssignmentHandler{planningSvc: planningSvc}
}

// Assign 将推荐分配到时段
// POST /api/v1/assignments
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.Assign(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Unassign 取消时段分配
// DELETE /api/v1/assignments/:slot_id
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	slotID := c.Param("slot_id")
	if slotID == "" {
		response.BadRequest(c, 10001, "时段ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.Unassign(c.Request.Context(), slotID, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAssignmentError 统一处理分配引擎业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSuggestionNotFound):
		response.NotFound(c, 16001, "讲者推荐不存在")
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 15001, "时段不存在")
	case errors.Is(err, service.ErrSlotOccupied):
		response.ConflictWithDetails(c, 18001, "时段已被占用", err.Error())
	case errors.Is(err, service.ErrSlotNotAssigned):
		response.BadRequest(c, 18002, "时段当前没有分配")
	default:
		response.InternalError(c)
	}
}
