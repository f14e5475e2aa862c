package attendance

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
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendance.GET("/stats", middleware.RBACAuthorize(rbacService, "attendance", "stats"), h.Stats)
		attendance.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetByID)
		attendance.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.Upsert,
		)
		attendance.POST("/bulk", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.BulkCreate)
		attendance.PATCH("/:id/submit", middleware.RBACAuthorize(rbacService, "attendance", "submit"), h.Submit)
		attendance.PATCH("/:id/approve", middleware.RBACAuthorize(rbacService, "attendance", "approve"), h.Approve)
		attendance.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, "attendance", "reject"), h.Reject)
	}
}
