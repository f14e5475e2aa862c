package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)
		employees.POST("/calculate-salary",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.CalculateSalary,
		)
		employees.GET("/:id",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetByID,
		)
		employees.GET("/:id/salary-breakdown",
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetSalaryBreakdown,
		)
		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			handler.Deactivate,
		)
	}
}
