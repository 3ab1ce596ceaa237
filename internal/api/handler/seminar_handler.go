package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// SeminarHandler 讲座模块 HTTP 处理器
type SeminarHandler struct {
	seminarSvc  service.SeminarService
	deletionSvc service.DeletionService
}

// NewSeminarHandler 创建 SeminarHandler
func NewSeminarHandler(seminarSvc service.SeminarService, deletionSvc service.DeletionService) *SeminarHandler {
	return &SeminarHandler{seminarSvc: seminarSvc, deletionSvc: deletionSvc}
}

// ListSeminars 讲座列表
// GET /api/v1/seminars
func (h *SeminarHandler) ListSeminars(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	seminars, total, err := h.seminarSvc.List(c.Request.Context(), c.Query("status"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, seminars, total, page.GetPage(), page.GetPageSize())
}

// GetSeminar 获取讲座详情
// GET /api/v1/seminars/:id
func (h *SeminarHandler) GetSeminar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲座ID不能为空")
		return
	}

	seminar, err := h.seminarSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.OK(c, seminar)
}

// CreateSeminar 创建讲座（临时加场）
// POST /api/v1/seminars
func (h *SeminarHandler) CreateSeminar(c *gin.Context) {
	var req dto.CreateSeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	seminar, err := h.seminarSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.Created(c, seminar)
}

// UpdateSeminar 更新讲座
// PUT /api/v1/seminars/:id
func (h *SeminarHandler) UpdateSeminar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲座ID不能为空")
		return
	}

	var req dto.UpdateSeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	seminar, err := h.seminarSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.OK(c, seminar)
}

// GetDetails 获取讲座后勤详情
// GET /api/v1/seminars/:id/details
func (h *SeminarHandler) GetDetails(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲座ID不能为空")
		return
	}

	details, err := h.seminarSvc.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.OK(c, details)
}

// UpsertDetails 创建/更新讲座后勤详情
// PUT /api/v1/seminars/:id/details
func (h *SeminarHandler) UpsertDetails(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲座ID不能为空")
		return
	}

	var req dto.UpsertSeminarDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	details, err := h.seminarSvc.UpsertDetails(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.OK(c, details)
}

// DeleteSeminar 删除讲座（释放时段、清理附件与详情）
// DELETE /api/v1/seminars/:id
func (h *SeminarHandler) DeleteSeminar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "讲座ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.deletionSvc.DeleteSeminar(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleSeminarError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSeminarError 统一处理讲座模块业务错误
func (h *SeminarHandler) handleSeminarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSeminarNotFound):
		response.NotFound(c, 17001, "讲座不存在")
	case errors.Is(err, service.ErrSpeakerNotFound):
		response.NotFound(c, 12001, "讲者不存在")
	case errors.Is(err, service.ErrSeminarDateInvalid):
		response.BadRequest(c, 17002, "讲座日期或时间格式无效")
	case errors.Is(err, service.ErrSeminarNeedsSpeaker):
		response.BadRequest(c, 17003, "讲座必须指定讲者")
	default:
		response.InternalError(c)
	}
}
