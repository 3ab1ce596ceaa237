package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	apperrors "github.com/inaciog/seminars-app-sub000/pkg/errors"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// SpeakerHandler 讲者模块 HTTP 处理器
type SpeakerHandler struct {
	speakerSvc  service.SpeakerService
	deletionSvc service.DeletionService
}

// NewSpeakerHandler 创建 SpeakerHandler
func NewSpeakerHandler(speakerSvc service.SpeakerService, deletionSvc service.DeletionService) *SpeakerHandler {
	return &SpeakerHandler{speakerSvc: speakerSvc, deletionSvc: deletionSvc}
}

// ListSpeakers 讲者列表
// GET /api/v1/speakers
func (h *SpeakerHandler) ListSpeakers(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	speakers, total, err := h.speakerSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, speakers, total, page.GetPage(), page.GetPageSize())
}

// GetSpeaker 获取讲者详情
// GET /api/v1/speakers/:id
func (h *SpeakerHandler) GetSpeaker(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲者ID不能为空")
		return
	}

	speaker, err := h.speakerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSpeakerError(c, err)
		return
	}

	response.OK(c, speaker)
}

// CreateSpeaker 创建讲者
// POST /api/v1/speakers
func (h *SpeakerHandler) CreateSpeaker(c *gin.Context) {
	var req dto.CreateSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	speaker, err := h.speakerSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSpeakerError(c, err)
		return
	}

	response.Created(c, speaker)
}

// UpdateSpeaker 更新讲者
// PUT /api/v1/speakers/:id
func (h *SpeakerHandler) UpdateSpeaker(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲者ID不能为空")
		return
	}

	var req dto.UpdateSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	speaker, err := h.speakerSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSpeakerError(c, err)
		return
	}

	response.OK(c, speaker)
}

// DeleteSpeaker 删除讲者
// DELETE /api/v1/speakers/:id
// 讲者仍被讲座引用时返回 409，附带阻塞讲座标题
func (h *SpeakerHandler) DeleteSpeaker(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲者ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.deletionSvc.DeleteSpeaker(c.Request.Context(), id, callerID)
	if err != nil {
		var blocked *apperrors.BlockedError
		if errors.As(err, &blocked) {
			response.ConflictWithDetails(c, 12002, blocked.Reason, blocked.Error())
			return
		}
		h.handleSpeakerError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSpeakerError 统一处理讲者模块业务错误
func (h *SpeakerHandler) handleSpeakerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSpeakerNotFound):
		response.NotFound(c, 12001, "讲者不存在")
	default:
		response.InternalError(c)
	}
}
