package payment

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
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	payments.Use(middleware.ContextLogger(logger))
	{
		payments.POST("",
			middleware.RBACAuthorize(rbacService, "payment", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		payments.GET("", middleware.RBACAuthorize(rbacService, "payment", "read"), h.GetAll)
		payments.GET("/stats", middleware.RBACAuthorize(rbacService, "payment", "stats"), h.Stats)
		payments.GET("/:id", middleware.RBACAuthorize(rbacService, "payment", "read"), h.GetByID)
		payments.PATCH("/:id/finance-approve", middleware.RBACAuthorize(rbacService, "payment", "finance_approve"), h.FinanceApprove)
		payments.PATCH("/:id/md-approve", middleware.RBACAuthorize(rbacService, "payment", "md_approve"), h.MDApprove)
		payments.PATCH("/:id/process", middleware.RBACAuthorize(rbacService, "payment", "process"), h.Process)
		payments.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, "payment", "reject"), h.Reject)
	}
}
