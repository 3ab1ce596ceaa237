package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/config"
	"github.com/inaciog/seminars-app-sub000/internal/api/handler"
	"github.com/inaciog/seminars-app-sub000/internal/api/middleware"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/pkg/jwt"
	"github.com/inaciog/seminars-app-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	maxBody := int64(cfg.Storage.MaxUploadSizeMB) << 20

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBody))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 讲者公开表单（令牌鉴权，限速防枚举） ──
	public := r.Group("/public/tokens")
	public.Use(middleware.RateLimit(rdb, 30, time.Minute))
	{
		public.GET("/:token", h.Public.GetTokenInfo)
		public.POST("/:token/availability", h.Public.SubmitAvailability)
		public.POST("/:token/details", h.Public.SubmitDetails)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		v1.POST("/auth/login", h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户模块（仅 admin）
			users := authorized.Group("/users", middleware.RoleAuth(model.RoleAdmin))
			{
				users.GET("", h.Auth.ListUsers)
				users.POST("", h.Auth.CreateUser)
			}

			// 讲者模块
			speakers := authorized.Group("/speakers")
			{
				speakers.GET("", h.Speaker.ListSpeakers)
				speakers.GET("/:id", h.Speaker.GetSpeaker)
				speakers.POST("", h.Speaker.CreateSpeaker)
				speakers.PUT("/:id", h.Speaker.UpdateSpeaker)
				speakers.DELETE("/:id", h.Speaker.DeleteSpeaker)
			}

			// 场地模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", h.Room.CreateRoom)
				rooms.PUT("/:id", h.Room.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.DeleteRoom)
			}

			// 学期计划模块
			plans := authorized.Group("/plans")
			{
				plans.GET("", h.Plan.ListPlans)
				plans.GET("/:id", h.Plan.GetPlan)
				plans.POST("", h.Plan.CreatePlan)
				plans.PUT("/:id", h.Plan.UpdatePlan)
				plans.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Plan.DeletePlan)
				plans.GET("/:id/slots", h.Slot.ListSlots)
				plans.GET("/:id/export", h.Export.ExportPlan)
				plans.GET("/:id/calendar", h.Export.ExportCalendar)
			}

			// 时段模块
			slots := authorized.Group("/slots")
			{
				slots.GET("/:id", h.Slot.GetSlot)
				slots.POST("", h.Slot.CreateSlot)
				slots.PUT("/:id", h.Slot.UpdateSlot)
				slots.DELETE("/:id", h.Slot.DeleteSlot)
			}

			// 讲者推荐模块
			suggestions := authorized.Group("/suggestions")
			{
				suggestions.GET("", h.Suggestion.ListSuggestions)
				suggestions.GET("/:id", h.Suggestion.GetSuggestion)
				suggestions.POST("", h.Suggestion.CreateSuggestion)
				suggestions.PUT("/:id", h.Suggestion.UpdateSuggestion)
				suggestions.PUT("/:id/status", h.Suggestion.TransitionSuggestion)
				suggestions.GET("/:id/workflow", h.Suggestion.ListWorkflow)
				suggestions.GET("/:id/availability", h.Suggestion.ListAvailability)
				suggestions.POST("/:id/tokens", h.Suggestion.IssueToken)
				suggestions.DELETE("/:id", h.Suggestion.DeleteSuggestion)
			}

			// 讲座模块
			seminars := authorized.Group("/seminars")
			{
				seminars.GET("", h.Seminar.ListSeminars)
				seminars.GET("/:id", h.Seminar.GetSeminar)
				seminars.POST("", h.Seminar.CreateSeminar)
				seminars.PUT("/:id", h.Seminar.UpdateSeminar)
				seminars.GET("/:id/details", h.Seminar.GetDetails)
				seminars.PUT("/:id/details", h.Seminar.UpsertDetails)
				seminars.DELETE("/:id", h.Seminar.DeleteSeminar)
			}

			// 分配引擎
			assignments := authorized.Group("/assignments")
			{
				assignments.POST("", h.Assignment.Assign)
				assignments.DELETE("/:slot_id", h.Assignment.Unassign)
			}

			// 附件模块
			files := authorized.Group("/files")
			{
				files.POST("/:entity_type/:entity_id", h.Upload.AttachFile)
				files.GET("/:entity_type/:entity_id", h.Upload.ListFiles)
			}
			uploads := authorized.Group("/uploads")
			{
				uploads.GET("/:id/download", h.Upload.DownloadFile)
				uploads.DELETE("/:id", h.Upload.DeleteFile)
			}

			// 活动日志
			authorized.GET("/activity", h.Activity.ListActivity)
		}
	}

	return r
}
