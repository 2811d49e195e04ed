package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/config"
	"github.com/pharmaqualify/qms-gin/internal/container"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/websocket"
)

// SetupRoutes 配置路由
func SetupRoutes(c *container.Container, cfg *config.Config) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	router.Use(ErrorHandlerMiddleware())

	// 健康检查
	healthController := NewHealthController(c.DB())
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 通知推送
	router.GET("/ws/notifications", websocket.NotificationHandler(c.Hub(), c.Sessions()))

	// 登录
	authController := NewAuthController(c.Sessions())
	router.POST("/api/v1/auth/login", authController.Login)

	// API v1 路由组（会话认证）
	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(c.Sessions()))
	{
		verifier := c.Verifier()

		NewDeviationController(c.Deviations(), verifier, c.Advisor()).RegisterRoutes(v1)
		NewRiskController(c.Risks(), verifier, c.Advisor()).RegisterRoutes(v1)
		NewChangeController(c.Changes(), verifier).RegisterRoutes(v1)
		NewIPQCController(c.IPQC()).RegisterRoutes(v1)
		NewBatchController(c.MFRs(), c.BMRs(), c.Batch(), verifier).RegisterRoutes(v1)

		NewRecordsController(c.CAPAs().Repository, verifier, nil).
			Register(v1, "/capas", func() *model.CAPA { return &model.CAPA{} })
		NewRecordsController(c.Audits(), verifier, nil).
			Register(v1, "/audits", func() *model.AuditRecord { return &model.AuditRecord{} })
		NewRecordsController(c.OOS(), verifier, nil).
			Register(v1, "/oos", func() *model.OOSRecord { return &model.OOSRecord{} })
		NewRecordsController(c.Recalls(), verifier, nil).
			Register(v1, "/recalls", func() *model.Recall { return &model.Recall{} })
		NewRecordsController(c.Stability(), verifier, nil).
			Register(v1, "/stability", func() *model.StabilityStudy { return &model.StabilityStudy{} })
		NewRecordsController(c.Inventory(), verifier, nil).
			Register(v1, "/inventory", func() *model.InventoryItem { return &model.InventoryItem{} })
		NewRecordsController(c.LIMS(), verifier, map[statemachine.Action]signature.Meaning{
			repository.ActionRelease: signature.MeaningTechnicalRelease,
		}).Register(v1, "/samples", func() *model.LIMSSample { return &model.LIMSSample{} })
		NewRecordsController(c.COAs(), verifier, map[statemachine.Action]signature.Meaning{
			repository.ActionRelease: signature.MeaningTechnicalRelease,
		}).Register(v1, "/coas", func() *model.COARecord { return &model.COARecord{} })

		NewTrailController(c.Trail()).RegisterRoutes(v1)
		NewNotificationController(c.Notifier()).RegisterRoutes(v1)
		NewArchiveController(c.Archive()).RegisterRoutes(v1)
		NewAssistController(c.Advisor()).RegisterRoutes(v1)
	}

	return router
}
