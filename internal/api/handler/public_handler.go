package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// PublicHandler 讲者公开表单 HTTP 处理器
// 这些端点凭 URL 中的不透明令牌鉴权，不走 JWT
type PublicHandler struct {
	tokenSvc service.TokenService
}

// NewPublicHandler 创建 PublicHandler
func NewPublicHandler(tokenSvc service.TokenService) *PublicHandler {
	return &PublicHandler{tokenSvc: tokenSvc}
}

// GetTokenInfo 校验令牌并返回表单上下文
// GET /public/tokens/:token
func (h *PublicHandler) GetTokenInfo(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 10001, "令牌不能为空")
		return
	}

	info, err := h.tokenSvc.Validate(c.Request.Context(), token)
	if err != nil {
		h.handleTokenError(c, err)
		return
	}

	response.OK(c, info)
}

// SubmitAvailability 讲者提交可用时间
// POST /public/tokens/:token/availability
func (h *PublicHandler) SubmitAvailability(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 10001, "令牌不能为空")
		return
	}

	var req dto.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.tokenSvc.SubmitAvailability(c.Request.Context(), token, &req); err != nil {
		h.handleTokenError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitDetails 讲者提交行程/报销信息
// POST /public/tokens/:token/details
func (h *PublicHandler) SubmitDetails(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, 10001, "令牌不能为空")
		return
	}

	var req dto.UpsertSeminarDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.tokenSvc.SubmitDetails(c.Request.Context(), token, &req); err != nil {
		h.handleTokenError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTokenError 统一处理令牌模块业务错误
// 令牌不存在与已过期对外同样表现为 404，避免泄露令牌有效性信息
func (h *PublicHandler) handleTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenHasExpired):
		response.NotFound(c, 19001, "令牌无效或已过期")
	case errors.Is(err, service.ErrTokenTypeMismatch):
		response.BadRequest(c, 19002, "令牌类型与表单不匹配")
	case errors.Is(err, service.ErrAvailabilityDates):
		response.BadRequest(c, 19003, "可用时间区间无效")
	case errors.Is(err, service.ErrSeminarNotFound):
		response.NotFound(c, 17001, "讲座不存在")
	default:
		response.InternalError(c)
	}
}
