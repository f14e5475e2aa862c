package importer

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
	imports := r.Group("/attendance")
	imports.Use(middleware.AuthMiddleware())
	imports.Use(middleware.ContextLogger(logger))
	{
		imports.POST("/import",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.ImportAttendance,
		)
	}
}
