package payslip

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	payslips.Use(middleware.ContextLogger(logger))
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetAll)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetByID)
		payslips.GET("/:id/pdf", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.DownloadPDF)
		payslips.GET("/:id/email-history", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.EmailHistory)
		payslips.POST("/generate",
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			middleware.Idempotency(rdb),
			h.Generate,
		)
		payslips.POST("/generate-bulk",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			middleware.Idempotency(rdb),
			h.GenerateBulk,
		)
		payslips.POST("/:id/send-email", middleware.RBACAuthorize(rbacService, "payslip", "send"), h.SendEmail)
		payslips.POST("/send-bulk-emails",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "payslip", "send"),
			h.SendBulkEmails,
		)
	}
}
