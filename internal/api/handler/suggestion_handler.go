package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// SuggestionHandler 讲者推荐模块 HTTP 处理器
type SuggestionHandler struct {
	suggestionSvc service.SuggestionService
	tokenSvc      service.TokenService
	deletionSvc   service.DeletionService
}

// NewSuggestionHandler 创建 SuggestionHandler
func NewSuggestionHandler(suggestionSvc service.SuggestionService, tokenSvc service.TokenService, deletionSvc service.DeletionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionSvc: suggestionSvc, tokenSvc: tokenSvc, deletionSvc: deletionSvc}
}

// ListSuggestions 推荐列表（按计划、状态过滤）
// GET /api/v1/suggestions
func (h *SuggestionHandler) ListSuggestions(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	planID := c.Query("semester_plan_id")
	status := c.Query("status")

	suggestions, total, err := h.suggestionSvc.List(c.Request.Context(), planID, status, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, suggestions, total, page.GetPage(), page.GetPageSize())
}

// GetSuggestion 获取推荐详情
// GET /api/v1/suggestions/:id
func (h *SuggestionHandler) GetSuggestion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	suggestion, err := h.suggestionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, suggestion)
}

// CreateSuggestion 创建推荐
// POST /api/v1/suggestions
func (h *SuggestionHandler) CreateSuggestion(c *gin.Context) {
	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	suggestion, err := h.suggestionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.Created(c, suggestion)
}

// UpdateSuggestion 更新推荐信息
// PUT /api/v1/suggestions/:id
func (h *SuggestionHandler) UpdateSuggestion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	var req dto.UpdateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	suggestion, err := h.suggestionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, suggestion)
}

// TransitionSuggestion 推进联系工作流状态
// PUT /api/v1/suggestions/:id/status
func (h *SuggestionHandler) TransitionSuggestion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	var req dto.TransitionSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	suggestion, err := h.suggestionSvc.Transition(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, suggestion)
}

// ListWorkflow 推荐的联系流程记录
// GET /api/v1/suggestions/:id/workflow
func (h *SuggestionHandler) ListWorkflow(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	entries, err := h.suggestionSvc.ListWorkflow(c.Request.Context(), id)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// ListAvailability 推荐的可用时间
// GET /api/v1/suggestions/:id/availability
func (h *SuggestionHandler) ListAvailability(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	ranges, err := h.suggestionSvc.ListAvailability(c.Request.Context(), id)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": ranges})
}

// IssueToken 为推荐签发讲者自助令牌
// POST /api/v1/suggestions/:id/tokens
func (h *SuggestionHandler) IssueToken(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	req.SuggestionID = id

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	token, err := h.tokenSvc.Issue(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.Created(c, token)
}

// DeleteSuggestion 删除推荐（回收令牌、释放时段）
// DELETE /api/v1/suggestions/:id
func (h *SuggestionHandler) DeleteSuggestion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "推荐ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.deletionSvc.DeleteSuggestion(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleSuggestionError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSuggestionError 统一处理推荐模块业务错误
func (h *SuggestionHandler) handleSuggestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSuggestionNotFound):
		response.NotFound(c, 16001, "讲者推荐不存在")
	case errors.Is(err, service.ErrSpeakerNotFound):
		response.NotFound(c, 12001, "讲者不存在")
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 14001, "学期计划不存在")
	case errors.Is(err, service.ErrSeminarNotFound):
		response.NotFound(c, 17001, "讲座不存在")
	case errors.Is(err, service.ErrInvalidTransition):
		response.BadRequest(c, 16002, "推荐状态迁移不合法")
	default:
		response.InternalError(c)
	}
}
