package handler

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/service"
	"github.com/inaciog/seminars-app-sub000/pkg/response"
)

// UploadHandler 上传文件模块 HTTP 处理器
// 文件归属于讲座或推荐，路由形如 /:entity_type/:entity_id/files
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// ownerFromPath 解析归属实体参数
func ownerFromPath(c *gin.Context) (string, string, bool) {
	entityType := c.Param("entity_type")
	entityID := c.Param("entity_id")
	if entityType != model.FileOwnerSeminar && entityType != model.FileOwnerSuggestion {
		response.BadRequest(c, 10001, "不支持的归属实体类型")
		return "", "", false
	}
	if entityID == "" {
		response.BadRequest(c, 10001, "归属实体ID不能为空")
		return "", "", false
	}
	return entityType, entityID, true
}

// AttachFile 上传附件
// POST /api/v1/files/:entity_type/:entity_id
func (h *UploadHandler) AttachFile(c *gin.Context) {
	entityType, entityID, ok := ownerFromPath(c)
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	file, err := h.uploadSvc.Attach(c.Request.Context(), entityType, entityID,
		fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.Created(c, file)
}

// ListFiles 归属实体的附件列表
// GET /api/v1/files/:entity_type/:entity_id
func (h *UploadHandler) ListFiles(c *gin.Context) {
	entityType, entityID, ok := ownerFromPath(c)
	if !ok {
		return
	}

	files, err := h.uploadSvc.ListByOwner(c.Request.Context(), entityType, entityID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, gin.H{"list": files})
}

// DownloadFile 下载附件
// GET /api/v1/files/:id/download
func (h *UploadHandler) DownloadFile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "文件ID不能为空")
		return
	}

	file, rc, err := h.uploadSvc.Open(c.Request.Context(), id)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(file.OriginalName)))
	c.Header("Content-Type", contentType)
	c.Status(200)
	io.Copy(c.Writer, rc)
}

// DeleteFile 删除附件
// DELETE /api/v1/files/:id
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "文件ID不能为空")
		return
	}

	if err := h.uploadSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleUploadError 统一处理上传模块业务错误
func (h *UploadHandler) handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound):
		response.NotFound(c, 20001, "文件不存在")
	case errors.Is(err, service.ErrFileOwnerInvalid):
		response.NotFound(c, 20002, "文件归属实体不存在")
	default:
		response.InternalError(c)
	}
}
