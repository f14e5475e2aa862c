package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.GET("/moved", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListMoved)
		payroll.GET("/processed", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListProcessed)
		payroll.GET("/report",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.Report,
		)
		payroll.POST("/move", middleware.RBACAuthorize(rbacService, "payroll", "move"), h.Move)
		payroll.POST("/revert", middleware.RBACAuthorize(rbacService, "payroll", "revert"), h.Revert)
		payroll.POST("/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), h.MarkProcessed)
		payroll.POST("/revert-processed", middleware.RBACAuthorize(rbacService, "payroll", "revert_processed"), h.RevertProcessed)
	}
}
