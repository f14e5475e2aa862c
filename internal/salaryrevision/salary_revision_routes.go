package salaryrevision

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
	revisions := r.Group("/salary-revisions")
	revisions.Use(middleware.AuthMiddleware())
	revisions.Use(middleware.ContextLogger(logger))
	{
		revisions.POST("",
			middleware.RBACAuthorize(rbacService, "salary_revision", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		revisions.GET("", middleware.RBACAuthorize(rbacService, "salary_revision", "read"), h.GetAll)
		revisions.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_revision", "read"), h.GetByID)
		revisions.PATCH("/:id/hr-approve", middleware.RBACAuthorize(rbacService, "salary_revision", "hr_approve"), h.HRApprove)
		revisions.PATCH("/:id/finance-approve", middleware.RBACAuthorize(rbacService, "salary_revision", "finance_approve"), h.FinanceApprove)
		revisions.PATCH("/:id/md-approve", middleware.RBACAuthorize(rbacService, "salary_revision", "md_approve"), h.MDApprove)
		revisions.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, "salary_revision", "reject"), h.Reject)
	}
}
